package services

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Scheduler decides when fn runs for the request bound to ctx.
type Scheduler func(ctx context.Context, fn func())

// EventPublisher publishes lifecycle events to Kafka.
type EventPublisher struct {
	writer    KafkaWriter
	scheduler Scheduler
}

// PublisherOpt configures an EventPublisher.
type PublisherOpt func(*EventPublisher)

// WithScheduler delays writes until the scheduler runs them, e.g. after the
// request transaction commits.
func WithScheduler(s Scheduler) PublisherOpt {
	return func(p *EventPublisher) {
		p.scheduler = s
	}
}

// NewEventPublisher creates a publisher. A nil writer disables publishing.
func NewEventPublisher(writer KafkaWriter, opts ...PublisherOpt) *EventPublisher {
	p := &EventPublisher{writer: writer}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewEvent builds an event stamped with a fresh id and the current time.
func NewEvent(eventType string, userID, resourceID uuid.UUID) models.Event {
	return models.Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     userID.String(),
		ResourceID: resourceID.String(),
		Timestamp:  time.Now().Unix(),
	}
}

// Publish writes the event keyed by user id, through the scheduler when one
// is set. Failures are logged, not returned.
func (p *EventPublisher) Publish(ctx context.Context, event models.Event) {
	if p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", event.Type)
		return
	}
	if p.scheduler != nil {
		p.scheduler(ctx, func() { p.write(ctx, event) })
		return
	}
	p.write(ctx, event)
}

func (p *EventPublisher) write(ctx context.Context, event models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", event.Type, "error", err)
		return
	}
	logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", event.Type)
}

// Close closes the underlying writer.
func (p *EventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
