package model

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestRoom_RequiredFields(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name        string
		room        *Room
		expectValid bool
	}{
		{
			name:        "valid room",
			room:        &Room{RoomID: "101", Name: "Cabin 1", BaseHourlyRate: 150, Capacity: 4},
			expectValid: true,
		},
		{
			name:        "free room",
			room:        &Room{RoomID: "999", Name: "Lobby", BaseHourlyRate: 0, Capacity: 1},
			expectValid: true,
		},
		{
			name:        "missing room id",
			room:        &Room{Name: "Cabin 1", BaseHourlyRate: 150, Capacity: 4},
			expectValid: false,
		},
		{
			name:        "missing name",
			room:        &Room{RoomID: "101", BaseHourlyRate: 150, Capacity: 4},
			expectValid: false,
		},
		{
			name:        "negative rate",
			room:        &Room{RoomID: "101", Name: "Cabin 1", BaseHourlyRate: -1, Capacity: 4},
			expectValid: false,
		},
		{
			name:        "room id with punctuation",
			room:        &Room{RoomID: "10.1", Name: "Cabin 1", BaseHourlyRate: 150, Capacity: 4},
			expectValid: false,
		},
		{
			name:        "zero capacity",
			room:        &Room{RoomID: "101", Name: "Cabin 1", BaseHourlyRate: 150},
			expectValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.room)
			if tt.expectValid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.expectValid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefaultRooms_AreValid(t *testing.T) {
	v := newValidator(t)
	seen := map[string]bool{}
	for _, room := range DefaultRooms() {
		if err := v.Struct(room); err != nil {
			t.Errorf("default room %s invalid: %v", room.RoomID, err)
		}
		if seen[room.RoomID] {
			t.Errorf("duplicate default room id %s", room.RoomID)
		}
		seen[room.RoomID] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 default rooms, got %d", len(seen))
	}
}

func TestBookingRequest_RequiredFields(t *testing.T) {
	v := newValidator(t)
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name        string
		req         BookingRequest
		expectValid bool
	}{
		{"complete", BookingRequest{RoomID: "101", RequesterName: "Asha", StartTime: &start, EndTime: &end}, true},
		{"missing room", BookingRequest{RequesterName: "Asha", StartTime: &start, EndTime: &end}, false},
		{"missing requester", BookingRequest{RoomID: "101", StartTime: &start, EndTime: &end}, false},
		{"missing start", BookingRequest{RoomID: "101", RequesterName: "Asha", EndTime: &end}, false},
		{"missing end", BookingRequest{RoomID: "101", RequesterName: "Asha", StartTime: &start}, false},
		{"room id with space", BookingRequest{RoomID: "1 0 1", RequesterName: "Asha", StartTime: &start, EndTime: &end}, false},
		{"room id with slash", BookingRequest{RoomID: "1/01", RequesterName: "Asha", StartTime: &start, EndTime: &end}, false},
		{"room id with dash and underscore", BookingRequest{RoomID: "board-room_2", RequesterName: "Asha", StartTime: &start, EndTime: &end}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.expectValid != (err == nil) {
				t.Errorf("Struct() error = %v, expectValid %v", err, tt.expectValid)
			}
		})
	}
}

func TestIsValidRoomID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"101", true},
		{"board-room_2", true},
		{"", false},
		{"10.1", false},
		{"<101>", false},
		{"1 0 1", false},
	}
	for _, tt := range tests {
		if got := IsValidRoomID(tt.id); got != tt.want {
			t.Errorf("IsValidRoomID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusConfirmed, BookingStatusCanceled, true},
		{BookingStatusCanceled, BookingStatusConfirmed, false},
		{BookingStatusCanceled, BookingStatusCanceled, false},
		{BookingStatusConfirmed, BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s allowed = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}
