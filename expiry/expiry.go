// Package expiry converts between relative durations, absolute unix-second
// expiry instants and human readable countdowns. The wall clock is injected
// so callers and tests control "now"; every operation re-samples the clock,
// results must not be cached across calls.
package expiry

import "time"

// Unit of a duration or of a countdown bucket
type Unit string

// Duration units accepted by FromDuration are Hours, Days and Months.
// Countdown buckets produced by Countdown are Minutes, Hours and Days.
const (
	Minutes Unit = "Minutes"
	Hours   Unit = "Hours"
	Days    Unit = "Days"
	Months  Unit = "Months"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * 60
	secondsPerDay    = 24 * 60 * 60
	// A month is a fixed 30 days. Calendar arithmetic is deliberately not
	// used: generated links and their round-trip tests depend on this
	// constant.
	secondsPerMonth = 30 * secondsPerDay
)

// TimeLeft is the countdown state of an expiry instant. When Expired is
// true, Value is 0 and Unit is Days. A non-expired countdown below one
// minute reports {0, Minutes}, read as "less than a minute left".
type TimeLeft struct {
	Value   int64 `json:"value"`
	Unit    Unit  `json:"unit"`
	Expired bool  `json:"expired"`
}

// Clock supplies the current wall-clock time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// Now returns the current system time
func (RealClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now returns the result of calling the underlying function
func (f ClockFunc) Now() time.Time { return f() }

// Calculator performs time computations against an injected clock
type Calculator struct {
	clock Clock
}

// NewCalculator creates a Calculator. A nil clock falls back to RealClock.
func NewCalculator(clock Clock) *Calculator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Calculator{clock: clock}
}

// FromDuration converts a relative duration into an absolute unix-second
// expiry instant. Value is expected to be positive; the caller validates.
func (c *Calculator) FromDuration(value int64, unit Unit) int64 {
	var seconds int64
	switch unit {
	case Hours:
		seconds = value * secondsPerHour
	case Days:
		seconds = value * secondsPerDay
	case Months:
		seconds = value * secondsPerMonth
	}

	return (c.clock.Now().UnixMilli() + seconds*1000) / 1000
}

// Countdown converts an expiry instant into the coarsest non-zero time-left
// bucket. Buckets are checked in Days, Hours, Minutes order and never
// combined.
func (c *Calculator) Countdown(expiryUnix int64) TimeLeft {
	diff := expiryUnix - c.clock.Now().Unix()

	if diff <= 0 {
		return TimeLeft{Value: 0, Unit: Days, Expired: true}
	}

	if days := diff / secondsPerDay; days > 0 {
		return TimeLeft{Value: days, Unit: Days}
	}
	if hours := (diff % secondsPerDay) / secondsPerHour; hours > 0 {
		return TimeLeft{Value: hours, Unit: Hours}
	}

	return TimeLeft{Value: (diff % secondsPerHour) / secondsPerMinute, Unit: Minutes}
}

// FormatAbsolute renders an expiry instant as a calendar string with year,
// abbreviated month, day, hour and minute, e.g. "Jan 5, 2026, 03:04 PM".
func (c *Calculator) FormatAbsolute(expiryUnix int64) string {
	return time.Unix(expiryUnix, 0).UTC().Format("Jan 2, 2006, 03:04 PM")
}
