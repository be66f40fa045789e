package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// PublishAPI is the part of the SNS client the publisher uses.
type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Message struct {
	Subject    string
	Body       string
	Attributes map[string]string
}

type SNSPublisher struct {
	client   PublishAPI
	topicArn string
}

func NewSNSPublisher(ctx context.Context, region, topicArn string) (*SNSPublisher, error) {
	if topicArn == "" {
		return nil, errors.New("sns topic arn is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewSNSPublisherWithClient(sns.NewFromConfig(cfg), topicArn), nil
}

func NewSNSPublisherWithClient(client PublishAPI, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

// Publish sends msg to the configured topic and returns the SNS message id.
// Attributes are sent as String message attributes for subscription filters.
func (p *SNSPublisher) Publish(ctx context.Context, msg *Message) (string, error) {
	input := &sns.PublishInput{
		TopicArn: aws.String(p.topicArn),
		Message:  aws.String(msg.Body),
	}

	if msg.Subject != "" {
		input.Subject = aws.String(msg.Subject)
	}

	if len(msg.Attributes) > 0 {
		input.MessageAttributes = make(map[string]snsTypes.MessageAttributeValue, len(msg.Attributes))
		for k, v := range msg.Attributes {
			input.MessageAttributes[k] = snsTypes.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
	}

	resp, err := p.client.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to publish to sns: %w", err)
	}

	return aws.ToString(resp.MessageId), nil
}
