package services

import (
	"context"
	"time"

	"etalase/pkg/logger"
)

// EventPublisher sends catalog change events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Event is the body of every catalog event.
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

// events publishes best effort: a broker failure is logged and never fails
// the request that triggered it.
type events struct {
	publisher EventPublisher
	log       *logger.Logger
}

func (e events) emit(ctx context.Context, entity, action, id string, data any) {
	if e.publisher == nil {
		return
	}
	key := entity + "." + action
	err := e.publisher.Publish(ctx, key, Event{Type: key, ID: id, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		e.log.Warn().Err(err).Str("event", key).Str("id", id).Msg("failed to publish catalog event")
		return
	}
	e.log.Debug().Str("event", key).Str("id", id).Msg("published catalog event")
}
