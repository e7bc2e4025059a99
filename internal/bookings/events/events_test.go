package events

import (
	"context"
	"roombook/pkg/kafka"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"testing"
	"time"
)

type mockProducer struct {
	published []kafka.Message
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := NewKafkaPublisher(producer, "roombook")

	booking := &model.Booking{
		ID:        "b1",
		RoomID:    "101",
		StartTime: time.Date(2025, 1, 15, 4, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 1, 15, 5, 30, 0, 0, time.UTC),
		Status:    model.BookingStatusConfirmed,
	}
	ctx := logger.ContextWithRequestID(context.Background(), "req-1")

	if err := pub.Publish(ctx, BookingCreated, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(producer.published) != 1 {
		t.Fatalf("published = %d, want 1", len(producer.published))
	}

	msg := producer.published[0]
	if msg.Key != "101" {
		t.Errorf("key = %q, want room id", msg.Key)
	}
	if msg.GetEventType() != BookingCreated {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-1" {
		t.Errorf("correlation id = %q, want req-1", msg.GetCorrelationID())
	}
	if msg.Headers[kafka.HeaderSource] != "roombook" {
		t.Errorf("source = %q", msg.Headers[kafka.HeaderSource])
	}

	var event BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatal(err)
	}
	if event.Type != BookingCreated || event.Booking.ID != "b1" {
		t.Errorf("payload = %+v", event)
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (NopPublisher{}).Publish(context.Background(), BookingCanceled, &model.Booking{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
