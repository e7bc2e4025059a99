package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// 2025-01-15 is a Wednesday, 2025-01-18 a Saturday.
	wednesday = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestIsPeak(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		want    bool
	}{
		{"before morning window", at(wednesday, 9, 59), false},
		{"morning window opens", at(wednesday, 10, 0), true},
		{"last morning minute", at(wednesday, 12, 59), true},
		{"morning window closes", at(wednesday, 13, 0), false},
		{"lunch gap", at(wednesday, 15, 30), false},
		{"evening window opens", at(wednesday, 16, 0), true},
		{"last evening minute", at(wednesday, 18, 59), true},
		{"evening window closes", at(wednesday, 19, 0), false},
		{"saturday morning", at(saturday, 11, 0), false},
		{"sunday evening", at(saturday.AddDate(0, 0, 1), 17, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPeak(tt.instant, time.UTC); got != tt.want {
				t.Errorf("IsPeak(%s) = %v, want %v", tt.instant, got, tt.want)
			}
		})
	}
}

func TestIsPeak_UsesLocalClock(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	// 04:30 UTC is 10:00 in Kolkata.
	if !IsPeak(at(wednesday, 4, 30), kolkata) {
		t.Error("expected 10:00 local to be peak")
	}
	// 07:00 UTC is off-peak in UTC but 12:30 in Kolkata.
	if IsPeak(at(wednesday, 7, 0), time.UTC) || !IsPeak(at(wednesday, 7, 0), kolkata) {
		t.Error("expected 07:00 UTC to be off-peak in UTC and peak in Kolkata")
	}
	// Friday 19:00 UTC is already Saturday 00:30 in Kolkata.
	friday := wednesday.AddDate(0, 0, 2)
	if IsPeak(at(friday, 18, 59), kolkata) {
		t.Error("expected Saturday local time to be off-peak")
	}
}

func TestPrice_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		start, end  time.Time
		rate        float64
		wantTotal   string
		wantPeak    int64
		wantOffPeak int64
	}{
		{
			name:  "all off-peak two hours",
			start: at(saturday, 9, 0), end: at(saturday, 11, 0),
			rate: 150, wantTotal: "300", wantPeak: 0, wantOffPeak: 120,
		},
		{
			name:  "fully inside morning peak",
			start: at(wednesday, 10, 0), end: at(wednesday, 11, 0),
			rate: 150, wantTotal: "225", wantPeak: 60, wantOffPeak: 0,
		},
		{
			name:  "straddles morning window opening",
			start: at(wednesday, 9, 30), end: at(wednesday, 12, 30),
			rate: 150, wantTotal: "637.5", wantPeak: 150, wantOffPeak: 30,
		},
		{
			name:  "weekday nine to eleven",
			start: at(wednesday, 9, 0), end: at(wednesday, 11, 0),
			rate: 150, wantTotal: "375", wantPeak: 60, wantOffPeak: 60,
		},
		{
			name:  "spans both windows",
			start: at(wednesday, 12, 0), end: at(wednesday, 17, 0),
			rate: 120, wantTotal: "720", wantPeak: 120, wantOffPeak: 180,
		},
		{
			name:  "one minute rounds to cents",
			start: at(saturday, 9, 0), end: at(saturday, 9, 1),
			rate: 100, wantTotal: "1.67", wantPeak: 0, wantOffPeak: 1,
		},
		{
			name:  "trailing partial minute billed in full",
			start: at(saturday, 9, 0), end: at(saturday, 9, 0).Add(90 * time.Second),
			rate: 60, wantTotal: "2", wantPeak: 0, wantOffPeak: 2,
		},
		{
			name:  "zero rate",
			start: at(wednesday, 10, 0), end: at(wednesday, 12, 0),
			rate: 0, wantTotal: "0", wantPeak: 120, wantOffPeak: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(tt.start, tt.end, tt.rate, time.UTC)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := decimal.RequireFromString(tt.wantTotal)
			if !q.Total.Equal(want) {
				t.Errorf("total = %s, want %s", q.Total, want)
			}
			if q.Peak != tt.wantPeak || q.OffPeak != tt.wantOffPeak {
				t.Errorf("minutes = %d peak / %d off-peak, want %d / %d", q.Peak, q.OffPeak, tt.wantPeak, tt.wantOffPeak)
			}
		})
	}
}

func TestPrice_FormatsToTwoPlaces(t *testing.T) {
	q, err := Price(at(wednesday, 9, 30), at(wednesday, 12, 30), 150, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Total.StringFixed(2); got != "637.50" {
		t.Errorf("StringFixed(2) = %s, want 637.50", got)
	}
}

func TestPrice_HalfRoundsAwayFromZero(t *testing.T) {
	// 1 peak minute at 1.00/h is 0.025, which must round up to 0.03.
	q, err := Price(at(wednesday, 10, 0), at(wednesday, 10, 1), 1, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !q.Total.Equal(decimal.RequireFromString("0.03")) {
		t.Errorf("total = %s, want 0.03", q.Total)
	}
}

func TestPrice_Monotonic(t *testing.T) {
	start := at(wednesday, 8, 0)
	prev := decimal.Zero
	for minutes := 1; minutes <= 12*60; minutes += 7 {
		q, err := Price(start, start.Add(time.Duration(minutes)*time.Minute), 150, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if q.Total.IsNegative() {
			t.Fatalf("negative price %s", q.Total)
		}
		if q.Total.LessThan(prev) {
			t.Fatalf("price decreased at %d minutes: %s < %s", minutes, q.Total, prev)
		}
		prev = q.Total
	}
}

func TestPrice_AcrossDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// Sunday 2025-03-09 01:00 EST to 04:00 EDT is two real hours.
	start := time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)

	q, err := Price(start, end, 60, ny)
	if err != nil {
		t.Fatal(err)
	}
	if q.Billable() != 120 {
		t.Errorf("billed minutes = %d, want 120", q.Billable())
	}
	if !q.Total.Equal(decimal.NewFromInt(120)) {
		t.Errorf("total = %s, want 120", q.Total)
	}
}

func TestPrice_Errors(t *testing.T) {
	start := at(wednesday, 10, 0)

	if _, err := Price(start, start, 150, time.UTC); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("empty interval error = %v, want ErrInvalidInterval", err)
	}
	if _, err := Price(start, start.Add(-time.Hour), 150, time.UTC); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("reversed interval error = %v, want ErrInvalidInterval", err)
	}
	if _, err := Price(start, start.Add(time.Hour), -1, time.UTC); !errors.Is(err, ErrNegativeRate) {
		t.Errorf("negative rate error = %v, want ErrNegativeRate", err)
	}
}
