// Package clock supplies the current instant to code that derives calendar
// days from it, so the day boundary can be pinned in tests.
package clock

import "time"

// DateLayout is the calendar-day format used for attendance keys.
const DateLayout = time.DateOnly

type Clock interface {
	Now() time.Time
}

type system struct{}

// System reads the wall clock.
func System() Clock { return system{} }

func (system) Now() time.Time { return time.Now() }

// Fixed always returns t. Set moves it.
type Fixed struct {
	T time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{T: t} }

func (f *Fixed) Now() time.Time { return f.T }

func (f *Fixed) Set(t time.Time) { f.T = t }

// Date formats t as YYYY-MM-DD in loc. A nil loc means time.Local.
func Date(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// LoadLocation resolves an IANA zone name; empty selects the process-local zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
