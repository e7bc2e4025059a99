// Package civiltime converts between absolute instants and calendar dates in
// an IANA time zone. Offsets are always resolved for the specific date asked
// about, so day boundaries stay correct across DST transitions.
package civiltime

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "3:04 PM"

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTimeZone = errors.New("invalid time zone")
)

// Date is a calendar date with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// UTCMidnight is 00:00 UTC on d.
func (d Date) UTCMidnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after d, normalizing overflow.
func (d Date) AddDays(n int) Date {
	return DateOf(d.UTCMidnight().AddDate(0, 0, n))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}
}

// Civil is an instant decomposed into local wall-clock fields.
type Civil struct {
	Date
	Hour    int
	Minute  int
	Weekday time.Weekday
}

// LoadZone resolves an IANA zone name. An empty name is rejected rather than
// silently treated as UTC.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTimeZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeZone, name)
	}
	return loc, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 instant. An instant yields its
// UTC calendar date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t.UTC()), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Decompose returns the wall-clock fields of instant in loc.
func Decompose(instant time.Time, loc *time.Location) Civil {
	local := instant.In(loc)
	return Civil{
		Date:    DateOf(local),
		Hour:    local.Hour(),
		Minute:  local.Minute(),
		Weekday: local.Weekday(),
	}
}

// OffsetMinutes is the zone offset in effect at UTC midnight of d, derived
// from the local wall clock at that instant. A local date one day behind or
// ahead of d contributes -1440 or +1440.
func OffsetMinutes(d Date, loc *time.Location) int {
	utcMidnight := d.UTCMidnight()
	local := Decompose(utcMidnight, loc)

	dayShift := int(local.Date.UTCMidnight().Sub(utcMidnight) / (24 * time.Hour))
	return dayShift*minutesPerDay + local.Hour*60 + local.Minute
}

// LocalOffsetMinutes parses date and returns OffsetMinutes for it.
func LocalOffsetMinutes(date string, loc *time.Location) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return OffsetMinutes(d, loc), nil
}

// DayStart is the UTC instant of local midnight beginning d in loc.
func DayStart(d Date, loc *time.Location) time.Time {
	offset := time.Duration(OffsetMinutes(d, loc)) * time.Minute
	return d.UTCMidnight().Add(-offset)
}

// DayEnd is the last millisecond of d in loc, one millisecond before the next
// day's start.
func DayEnd(d Date, loc *time.Location) time.Time {
	return DayStart(d.AddDays(1), loc).Add(-time.Millisecond)
}

// StartOfDay parses date and returns DayStart.
func StartOfDay(date string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return DayStart(d, loc), nil
}

// EndOfDay parses date and returns DayEnd.
func EndOfDay(date string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return DayEnd(d, loc), nil
}

// FormatClock renders instant as a 12-hour local clock time, e.g. "3:04 PM".
func FormatClock(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(ClockLayout)
}
