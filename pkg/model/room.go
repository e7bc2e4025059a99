package model

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// RoomIDTag is the validator tag for room business keys.
const RoomIDTag = "roomid"

var roomIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

// IsValidRoomID reports whether id is a well-formed room business key.
func IsValidRoomID(id string) bool {
	return roomIDPattern.MatchString(id)
}

// RegisterValidations adds the model's custom tags to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(RoomIDTag, func(fl validator.FieldLevel) bool {
		return IsValidRoomID(fl.Field().String())
	})
}

type Room struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" db:"id"`
	RoomID         string    `json:"room_id" bson:"room_id" db:"room_id" validate:"required,max=64,roomid"`
	Name           string    `json:"name" bson:"name" db:"name" validate:"required,max=100"`
	BaseHourlyRate float64   `json:"base_hourly_rate" bson:"base_hourly_rate" db:"base_hourly_rate" validate:"gte=0"`
	Capacity       int       `json:"capacity" bson:"capacity" db:"capacity" validate:"required,min=1"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// DefaultRooms is the catalogue written by the seed operation.
func DefaultRooms() []*Room {
	return []*Room{
		{RoomID: "101", Name: "Cabin 1", BaseHourlyRate: 150, Capacity: 4},
		{RoomID: "102", Name: "Cabin 2", BaseHourlyRate: 200, Capacity: 6},
		{RoomID: "201", Name: "Board Room", BaseHourlyRate: 300, Capacity: 12},
		{RoomID: "301", Name: "Open Collab", BaseHourlyRate: 120, Capacity: 8},
	}
}

// SeedResult counts what a seed run changed.
type SeedResult struct {
	Inserted int64 `json:"inserted"`
	Updated  int64 `json:"updated"`
	Total    int   `json:"total"`
}
