package clock

import "time"

// Clock is where storage and the game controller read the current time
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// New returns the system clock
func New() Clock {
	return System{}
}

// Now returns the current time in UTC, so stored timestamps compare equal after a JSON round trip
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed reports the same instant on every call
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
