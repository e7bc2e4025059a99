// Package events publishes booking lifecycle changes to Kafka.
package events

import (
	"context"
	"roombook/pkg/kafka"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"time"
)

const (
	BookingCreated  = "booking.created"
	BookingCanceled = "booking.canceled"

	SchemaVersion = "1"
)

// BookingEvent is the payload of every booking message.
type BookingEvent struct {
	Type       string         `json:"type"`
	Booking    *model.Booking `json:"booking"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messagePublisher
	source   string
}

// NewKafkaPublisher keys messages by room id so events for one room stay
// ordered within a partition.
func NewKafkaPublisher(producer messagePublisher, source string) Publisher {
	return &kafkaPublisher{producer: producer, source: source}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	now := time.Now().UTC()
	msg := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(BookingEvent{Type: eventType, Booking: booking, OccurredAt: now}).
		WithEventID("").
		WithEventType(eventType).
		WithCorrelationID(logger.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithTimestamp(now).
		Build()

	return p.producer.Publish(ctx, msg)
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *model.Booking) error {
	return nil
}
