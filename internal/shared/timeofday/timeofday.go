// Package timeofday models wall-clock times without a date, as used for shop hours.
package timeofday

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is returned when a value cannot be parsed as HH:MM or HH:MM:SS.
var ErrInvalid = errors.New("time of day must be HH:MM or HH:MM:SS")

// TimeOfDay is the offset from midnight, with nanosecond precision.
type TimeOfDay time.Duration

const day = 24 * time.Hour

// New builds a TimeOfDay from clock components.
func New(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, ErrInvalid
	}
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second), nil
}

// MustParse is Parse for literals in tests and defaults.
func MustParse(raw string) TimeOfDay {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse reads "15:04" or "15:04:05".
func Parse(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return Of(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalid, raw)
}

// Of extracts the wall-clock part of t in its own location.
func Of(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond()))
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

// String renders HH:MM:SS, dropping sub-second precision.
func (t TimeOfDay) String() string {
	d := time.Duration(t) % day
	return fmt.Sprintf("%02d:%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second))
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Window is an opening period that may wrap past midnight.
type Window struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Contains uses strict bounds: a time equal to Open or Close is outside the window.
// When Open is after Close the window spans midnight.
func (w Window) Contains(now TimeOfDay) bool {
	if w.Open <= w.Close {
		return now.After(w.Open) && now.Before(w.Close)
	}
	return now.After(w.Open) || now.Before(w.Close)
}
