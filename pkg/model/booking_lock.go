package model

import "time"

// BookingLock is the per-room guard document. Every booking transaction for a
// room bumps Version, so two concurrent transactions on the same room
// write-conflict and one of them is retried.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Version   int64     `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
