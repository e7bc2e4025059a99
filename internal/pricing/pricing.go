// Package pricing classifies instants into peak and off-peak windows and
// prices reservations minute by minute.
package pricing

import (
	"errors"
	"roombook/internal/civiltime"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInterval = errors.New("start must be before end")
	ErrNegativeRate    = errors.New("hourly rate cannot be negative")
)

// Window is a half-open range of local hours [StartHour, EndHour).
type Window struct {
	StartHour int
	EndHour   int
}

func (w Window) contains(hour int) bool {
	return hour >= w.StartHour && hour < w.EndHour
}

var (
	PeakWindows = []Window{
		{StartHour: 10, EndHour: 13},
		{StartHour: 16, EndHour: 19},
	}

	PeakMultiplier = decimal.RequireFromString("1.5")

	minutesPerHour = decimal.NewFromInt(60)
)

// IsPeak reports whether instant falls in a peak window on a weekday in loc.
func IsPeak(instant time.Time, loc *time.Location) bool {
	c := civiltime.Decompose(instant, loc)
	if c.Weekday == time.Saturday || c.Weekday == time.Sunday {
		return false
	}
	for _, w := range PeakWindows {
		if w.contains(c.Hour) {
			return true
		}
	}
	return false
}

// Minutes counts billable minutes by class.
type Minutes struct {
	Peak    int64
	OffPeak int64
}

func (m Minutes) Billable() int64 {
	return m.Peak + m.OffPeak
}

// Breakdown steps through [start, end) one minute at a time starting at start
// and classifies each step by its starting instant. A trailing partial minute
// is billed as a full minute.
func Breakdown(start, end time.Time, loc *time.Location) (Minutes, error) {
	if !start.Before(end) {
		return Minutes{}, ErrInvalidInterval
	}

	var m Minutes
	for t := start; t.Before(end); t = t.Add(time.Minute) {
		if IsPeak(t, loc) {
			m.Peak++
		} else {
			m.OffPeak++
		}
	}
	return m, nil
}

// Quote is a priced interval.
type Quote struct {
	Minutes
	HourlyRate decimal.Decimal
	Total      decimal.Decimal
}

// Price computes rate x (offPeak + 1.5 x peak) / 60 exactly and rounds the
// result to cents, half away from zero.
func Price(start, end time.Time, hourlyRate float64, loc *time.Location) (Quote, error) {
	rate := decimal.NewFromFloat(hourlyRate)
	if rate.IsNegative() {
		return Quote{}, ErrNegativeRate
	}

	m, err := Breakdown(start, end, loc)
	if err != nil {
		return Quote{}, err
	}

	weighted := decimal.NewFromInt(m.OffPeak).
		Add(decimal.NewFromInt(m.Peak).Mul(PeakMultiplier))

	return Quote{
		Minutes:    m,
		HourlyRate: rate,
		Total:      rate.Mul(weighted).Div(minutesPerHour).Round(2),
	}, nil
}
