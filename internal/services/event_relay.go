package services

import (
	"context"
	"encoding/json"

	"neighborhub/internal/models"
	"neighborhub/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Subscriber is implemented by cache.RedisCache.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// EventRelay forwards events published on the shared redis channel to a
// process-local sink, normally the websocket hub.
type EventRelay struct {
	subscriber Subscriber
	channel    string
	sink       NotificationSink
	logger     *logger.Logger
}

func NewEventRelay(subscriber Subscriber, channel string, sink NotificationSink, log *logger.Logger) *EventRelay {
	return &EventRelay{
		subscriber: subscriber,
		channel:    channel,
		sink:       sink,
		logger:     log,
	}
}

// Run blocks until ctx is cancelled.
func (r *EventRelay) Run(ctx context.Context) {
	pubsub := r.subscriber.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	r.logger.WithField("channel", r.channel).Info("Event relay subscribed")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			r.Forward(ctx, []byte(msg.Payload))
		}
	}
}

// Forward decodes one published payload and hands it to the local sink.
func (r *EventRelay) Forward(ctx context.Context, payload []byte) {
	var event models.NotificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		r.logger.WithError(err).Warn("Dropping malformed event")
		return
	}

	if err := r.sink.Emit(ctx, &event); err != nil {
		r.logger.WithError(err).WithField("event_kind", event.Kind).Warn("Failed to relay event")
	}
}
