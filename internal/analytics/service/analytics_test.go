package service

import (
	"context"
	"errors"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"
	"testing"
	"time"
)

type mockBookingLister struct {
	listFunc func(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
}

func (m *mockBookingLister) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	return m.listFunc(ctx, from, to)
}

type mockRoomLister struct {
	rooms []*model.Room
	err   error
}

func (m *mockRoomLister) List(ctx context.Context) ([]*model.Room, error) {
	return m.rooms, m.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	return &config.Config{Log: logger.Discard(), Location: loc}
}

func booking(roomID string, start time.Time, d time.Duration, price float64) *model.Booking {
	return &model.Booking{RoomID: roomID, StartTime: start, EndTime: start.Add(d), TotalPrice: price, Status: model.BookingStatusConfirmed}
}

func TestUsage_AggregatesPerRoom(t *testing.T) {
	base := time.Date(2025, 1, 15, 4, 30, 0, 0, time.UTC)
	var gotFrom, gotTo time.Time
	bookings := &mockBookingLister{listFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
		gotFrom, gotTo = from, to
		return []*model.Booking{
			booking("102", base, time.Hour, 300),
			booking("101", base, 90*time.Minute, 337.5),
			booking("102", base.Add(3*time.Hour), 20*time.Minute, 66.67),
			booking("999", base, time.Hour, 10.005),
		}, nil
	}}
	rooms := &mockRoomLister{rooms: model.DefaultRooms()}

	got, err := NewAnalyticsService(bookings, rooms, testConfig(t)).Usage(context.Background(), "2025-01-15", "2025-01-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC); !gotFrom.Equal(want) {
		t.Errorf("from bound = %s, want %s", gotFrom, want)
	}
	if want := time.Date(2025, 1, 16, 18, 29, 59, int(999*time.Millisecond), time.UTC); !gotTo.Equal(want) {
		t.Errorf("to bound = %s, want %s", gotTo, want)
	}

	want := []model.RoomUsage{
		{RoomID: "102", RoomName: "Cabin 2", TotalHours: 1.33, TotalRevenue: 366.67},
		{RoomID: "101", RoomName: "Cabin 1", TotalHours: 1.5, TotalRevenue: 337.5},
		{RoomID: "999", RoomName: "999", TotalHours: 1, TotalRevenue: 10.01},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if *got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, *got[i], want[i])
		}
	}
}

func TestUsage_Empty(t *testing.T) {
	bookings := &mockBookingLister{listFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
		return nil, nil
	}}
	got, err := NewAnalyticsService(bookings, &mockRoomLister{}, testConfig(t)).Usage(context.Background(), "2025-01-15", "2025-01-15")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty slice", got)
	}
}

func TestUsage_Errors(t *testing.T) {
	ok := &mockBookingLister{listFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
		return nil, nil
	}}
	failing := &mockBookingLister{listFunc: func(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
		return nil, errors.New("cursor closed")
	}}

	tests := []struct {
		name     string
		bookings BookingLister
		rooms    RoomLister
		from, to string
		wantCode string
	}{
		{"missing from", ok, &mockRoomLister{}, "", "2025-01-15", apperrors.CodeValidation},
		{"missing to", ok, &mockRoomLister{}, "2025-01-15", "", apperrors.CodeValidation},
		{"malformed date", ok, &mockRoomLister{}, "15/01/2025", "2025-01-15", apperrors.CodeValidation},
		{"impossible date", ok, &mockRoomLister{}, "2025-01-15", "2025-02-30", apperrors.CodeValidation},
		{"reversed range", ok, &mockRoomLister{}, "2025-01-16", "2025-01-15", apperrors.CodeValidation},
		{"store failure", failing, &mockRoomLister{}, "2025-01-15", "2025-01-15", apperrors.CodeInternal},
		{"room failure passes through", ok, &mockRoomLister{err: apperrors.Internal("Failed to retrieve rooms", nil)}, "2025-01-15", "2025-01-15", apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyticsService(tt.bookings, tt.rooms, testConfig(t)).Usage(context.Background(), tt.from, tt.to)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}
