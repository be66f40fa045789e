package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"neighborhub/internal/models"
	"neighborhub/pkg/events"
	"neighborhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePublisher struct {
	channel string
	message interface{}
	err     error
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	p.channel = channel
	p.message = message
	return p.err
}

type fakeTopic struct {
	messages []*events.Message
}

func (p *fakeTopic) Publish(ctx context.Context, msg *events.Message) (string, error) {
	p.messages = append(p.messages, msg)
	return "msg-1", nil
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	first := &recordingSink{err: errors.New("first down")}
	second := &recordingSink{}
	third := &recordingSink{err: errors.New("third down")}

	err := MultiSink{first, second, third}.Emit(context.Background(), &models.NotificationEvent{Kind: models.EventNewRating})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first down")
	assert.Contains(t, err.Error(), "third down")
	assert.Len(t, second.Kinds(), 1)
	assert.NoError(t, MultiSink{second}.Emit(context.Background(), &models.NotificationEvent{}))
}

func TestNotificationServiceIsBestEffort(t *testing.T) {
	sink := &recordingSink{err: errors.New("offline")}
	svc := NewNotificationService(sink, logger.NewNopLogger())

	requester := &models.User{ID: primitive.NewObjectID(), Name: "alice"}
	request := &models.Request{
		ID:          primitive.NewObjectID(),
		RequesterID: requester.ID,
		Category:    models.CategoryCook,
		Urgency:     models.UrgencyLow,
	}

	assert.NotPanics(t, func() {
		svc.NotifyNewHelpRequest(context.Background(), request, requester)
		svc.NotifyHelpOffered(context.Background(), request, nil)
	})

	require.Len(t, sink.events, 2)
	for _, e := range sink.events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.OccurredAt.IsZero())
		assert.Equal(t, request.ID, e.EntityID)
	}
}

func TestNewRatingEventHidesAnonymousRater(t *testing.T) {
	sink := &recordingSink{}
	svc := NewNotificationService(sink, logger.NewNopLogger())

	rating := &models.Rating{
		ID:          primitive.NewObjectID(),
		RequestID:   primitive.NewObjectID(),
		RatedUserID: primitive.NewObjectID(),
		Stars:       4,
		IsAnonymous: true,
	}
	svc.NotifyNewRating(context.Background(), rating, &models.User{Name: "alice"})

	event := sink.Last()
	require.NotNil(t, event)
	assert.Equal(t, "", event.Data["rater_name"])
	assert.Equal(t, rating.RatedUserID, *event.Target)
}

func TestRedisSinkPublishesOnChannel(t *testing.T) {
	publisher := &fakePublisher{}
	sink := NewRedisSink(publisher, "neighborhub:events")

	event := &models.NotificationEvent{Kind: models.EventNewHelpRequest}
	require.NoError(t, sink.Emit(context.Background(), event))
	assert.Equal(t, "neighborhub:events", publisher.channel)
	assert.Same(t, event, publisher.message)

	publisher.err = errors.New("redis gone")
	assert.Error(t, sink.Emit(context.Background(), event))
}

func TestSNSSinkEncodesEvent(t *testing.T) {
	topic := &fakeTopic{}
	sink := NewSNSSink(topic)

	target := primitive.NewObjectID()
	event := &models.NotificationEvent{
		ID:         "evt-1",
		Kind:       models.EventNewRating,
		Target:     &target,
		Summary:    "You received a 5-star rating",
		OccurredAt: time.Now(),
	}
	require.NoError(t, sink.Emit(context.Background(), event))

	require.Len(t, topic.messages, 1)
	msg := topic.messages[0]
	assert.Equal(t, "new-rating", msg.Subject)
	assert.Equal(t, map[string]string{"kind": "new-rating", "target": target.Hex()}, msg.Attributes)

	var decoded models.NotificationEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Body), &decoded))
	assert.Equal(t, "evt-1", decoded.ID)
	assert.Equal(t, target, *decoded.Target)

	broadcast := &models.NotificationEvent{Kind: models.EventNewHelpRequest}
	require.NoError(t, sink.Emit(context.Background(), broadcast))
	assert.NotContains(t, topic.messages[1].Attributes, "target")
}

func TestEventRelayForward(t *testing.T) {
	sink := &recordingSink{}
	relay := NewEventRelay(nil, "neighborhub:events", sink, logger.NewNopLogger())

	target := primitive.NewObjectID()
	payload, err := json.Marshal(&models.NotificationEvent{
		ID:     "evt-2",
		Kind:   models.EventRequestHelp,
		Target: &target,
	})
	require.NoError(t, err)

	relay.Forward(context.Background(), payload)
	relay.Forward(context.Background(), []byte("{not json"))

	require.Len(t, sink.events, 1)
	assert.Equal(t, models.EventRequestHelp, sink.events[0].Kind)
	assert.Equal(t, target, *sink.events[0].Target)
}
