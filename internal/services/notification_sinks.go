package services

import (
	"context"
	"encoding/json"
	"fmt"

	"neighborhub/internal/models"
	"neighborhub/pkg/events"
	"neighborhub/pkg/websocket"
)

// websocketSink pushes events to connected clients on this process.
type websocketSink struct {
	hub *websocket.Hub
}

func NewWebsocketSink(hub *websocket.Hub) NotificationSink {
	return &websocketSink{hub: hub}
}

func (s *websocketSink) Emit(ctx context.Context, event *models.NotificationEvent) error {
	data := make(map[string]interface{}, len(event.Data)+3)
	for k, v := range event.Data {
		data[k] = v
	}
	data["event_id"] = event.ID
	data["summary"] = event.Summary
	data["entity_id"] = event.EntityID.Hex()

	message := websocket.Message{
		Type:      string(event.Kind),
		UserID:    event.Target,
		Timestamp: event.OccurredAt.Unix(),
		Data:      data,
	}

	if event.IsBroadcast() {
		s.hub.Broadcast(message)
		return nil
	}

	// An offline target is not an error; delivery is fire and forget.
	s.hub.SendToUser(*event.Target, message)
	return nil
}

// Publisher is implemented by cache.RedisCache.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// redisSink publishes events on a redis channel so that every API instance
// can relay them to its own websocket clients.
type redisSink struct {
	publisher Publisher
	channel   string
}

func NewRedisSink(publisher Publisher, channel string) NotificationSink {
	return &redisSink{publisher: publisher, channel: channel}
}

func (s *redisSink) Emit(ctx context.Context, event *models.NotificationEvent) error {
	if err := s.publisher.Publish(ctx, s.channel, event); err != nil {
		return fmt.Errorf("failed to publish event to redis: %w", err)
	}
	return nil
}

// TopicPublisher is implemented by events.SNSPublisher.
type TopicPublisher interface {
	Publish(ctx context.Context, msg *events.Message) (string, error)
}

// snsSink forwards events to an SNS topic for out-of-process consumers such
// as push or e-mail delivery.
type snsSink struct {
	publisher TopicPublisher
}

func NewSNSSink(publisher TopicPublisher) NotificationSink {
	return &snsSink{publisher: publisher}
}

func (s *snsSink) Emit(ctx context.Context, event *models.NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	attributes := map[string]string{"kind": string(event.Kind)}
	if target := targetHex(event.Target); target != "" {
		attributes["target"] = target
	}

	_, err = s.publisher.Publish(ctx, &events.Message{
		Subject:    string(event.Kind),
		Body:       string(body),
		Attributes: attributes,
	})
	return err
}
