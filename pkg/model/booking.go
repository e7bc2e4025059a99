package model

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
)

// CanTransitionTo reports whether the lifecycle allows moving to next.
// CONFIRMED -> CANCELED is the only transition.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusConfirmed && next == BookingStatusCanceled
}

// Booking instants are stored in UTC. TotalPrice is fixed at creation.
type Booking struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" db:"id"`
	RoomID        string        `json:"room_id" bson:"room_id" db:"room_id"`
	RequesterName string        `json:"requester_name" bson:"requester_name" db:"requester_name"`
	StartTime     time.Time     `json:"start_time" bson:"start_time" db:"start_time"`
	EndTime       time.Time     `json:"end_time" bson:"end_time" db:"end_time"`
	TotalPrice    float64       `json:"total_price" bson:"total_price" db:"total_price"`
	Status        BookingStatus `json:"status" bson:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at" db:"created_at"`
}

func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// BookingRequest is the create input. Pointer times distinguish a missing
// field from the zero instant.
type BookingRequest struct {
	RoomID        string     `json:"room_id" validate:"required,max=64,roomid"`
	RequesterName string     `json:"requester_name" validate:"required,max=100"`
	StartTime     *time.Time `json:"start_time" validate:"required"`
	EndTime       *time.Time `json:"end_time" validate:"required"`
}

type CancelResult struct {
	ID     string        `json:"id"`
	Status BookingStatus `json:"status"`
}
