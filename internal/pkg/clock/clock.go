// Package clock is the only place the application reads the wall clock.
// Every reading is taken in an explicit IANA timezone; there is no
// server-local default.
package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

var ErrInvalidTimezone = errors.New("invalid timezone")

type Clock interface {
	// LocalNow returns the current instant expressed in timezone.
	LocalNow(timezone string) (time.Time, error)
	// LocalToday returns the calendar day in timezone as a midnight-UTC date.
	LocalToday(timezone string) (time.Time, error)
}

type systemClock struct {
	now func() time.Time
}

// New returns a Clock backed by time.Now.
func New() Clock {
	return &systemClock{now: time.Now}
}

// NewFixed returns a Clock frozen at t. Used by tests and replay tooling.
func NewFixed(t time.Time) Clock {
	return &systemClock{now: func() time.Time { return t }}
}

func (c *systemClock) LocalNow(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return c.now().In(loc), nil
}

func (c *systemClock) LocalToday(timezone string) (time.Time, error) {
	now, err := c.LocalNow(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(now), nil
}

// LoadLocation rejects empty names, which time.LoadLocation would treat as UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	if strings.TrimSpace(timezone) == "" {
		return nil, fmt.Errorf("%w: timezone is required", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	return loc, nil
}

// DateOf drops the time of day of t, keeping the calendar day as seen in t's
// own location, and returns it as midnight UTC (the shape pgx uses for DATE).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a day as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// SameDay reports whether a and b name the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
