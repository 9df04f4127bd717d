package clock

import (
	"fmt"
	"math"
	"time"
)

// A Duration is a non-negative span of time with one-second resolution.
// Its canonical form is a total number of seconds; the hour, minute and
// second components are derived from it. The zero value is 0:00:00.
type Duration struct {
	total int64
}

// maxHours is the largest hour component whose total still fits an int64.
const maxHours = math.MaxInt64 / secondsPerHour

// Common durations.
var (
	Second = Duration{1}
	Minute = Duration{secondsPerMin}
	Hour   = Duration{secondsPerHour}
)

// NewDuration returns the duration hours:minutes:seconds. The minutes
// and seconds are optional and default to zero. Hours are unbounded.
//
// Minutes and seconds must already be normalised: 0:90:00 is rejected
// rather than read as 1:30:00, so that every accepted duration formats
// back to the components it was built from. Use DurationOf to build a
// duration from a raw count of seconds.
//
// It returns an error wrapping ErrOutOfRange if any component is
// negative, minutes or seconds exceed 59, the total does not fit in an
// int64, or more than three components are given.
func NewDuration(hours int64, rest ...int64) (Duration, error) {
	if len(rest) > 2 {
		return Duration{}, fmt.Errorf("clock: %d components given, want at most 3: %w", len(rest)+1, ErrOutOfRange)
	}
	var m, s int64
	if len(rest) > 0 {
		m = rest[0]
	}
	if len(rest) > 1 {
		s = rest[1]
	}
	switch {
	case hours < 0 || m < 0 || s < 0:
		return Duration{}, fmt.Errorf("clock: negative duration component: %w", ErrOutOfRange)
	case m >= minutesPerHour:
		return Duration{}, outOfRange("clock: minutes", m, minutesPerHour-1)
	case s >= secondsPerMin:
		return Duration{}, outOfRange("clock: seconds", s, secondsPerMin-1)
	}
	return fromComponents(hours, m, s)
}

// MustDuration is like NewDuration but panics on error.
func MustDuration(hours int64, rest ...int64) Duration {
	d, err := NewDuration(hours, rest...)
	if err != nil {
		panic(err)
	}
	return d
}

// DurationOf returns the duration of total seconds.
// A negative total yields an error wrapping ErrOutOfRange.
func DurationOf(total int64) (Duration, error) {
	if total < 0 {
		return Duration{}, fmt.Errorf("clock: %d seconds: %w", total, ErrOutOfRange)
	}
	return Duration{total}, nil
}

// Between returns the distance between two clock times: the later one
// minus the earlier one, using ClockTime subtraction. The result lies
// in [0, 24h) and Between(a, b) == Between(b, a).
func Between(a, b ClockTime) Duration {
	var diff ClockTime
	if a.After(b) {
		diff = a.Sub(b)
	} else {
		diff = b.Sub(a)
	}
	return Duration{int64(diff.hour)*secondsPerHour + int64(diff.min)*secondsPerMin + int64(diff.sec)}
}

// ParseDuration parses a string of the form H:MM:SS, where the hour
// field may have any number of digits. Malformed input yields an error
// matching ErrParse, out-of-range fields one matching ErrOutOfRange.
func ParseDuration(s string) (Duration, error) {
	f, err := splitFields("duration", s)
	if err != nil {
		return Duration{}, err
	}
	if f[0] > maxHours {
		return Duration{}, fieldOutOfRange(0, f[0])
	}
	for i, v := range f[1:] {
		if v > 0xff {
			return Duration{}, fieldOutOfRange(i+1, v)
		}
	}
	return NewDuration(int64(f[0]), int64(f[1]), int64(f[2]))
}

func fromComponents(h, m, s int64) (Duration, error) {
	if h > maxHours || h*secondsPerHour > math.MaxInt64-(m*secondsPerMin+s) {
		return Duration{}, fmt.Errorf("clock: %d hours overflow: %w", h, ErrOutOfRange)
	}
	return Duration{h*secondsPerHour + m*secondsPerMin + s}, nil
}

// TotalSeconds returns the canonical length of d in seconds.
func (d Duration) TotalSeconds() int64 { return d.total }

// Hours returns the whole hours in d. It is not reduced modulo 24.
func (d Duration) Hours() int64 { return d.total / secondsPerHour }

// Minutes returns the minute component of d, in [0, 59].
func (d Duration) Minutes() uint8 { return uint8(d.total % secondsPerHour / secondsPerMin) }

// Seconds returns the second component of d, in [0, 59].
func (d Duration) Seconds() uint8 { return uint8(d.total % secondsPerMin) }

// Std converts d to a time.Duration. Durations longer than about 292
// years saturate at math.MaxInt64 nanoseconds.
func (d Duration) Std() time.Duration {
	if d.total > math.MaxInt64/int64(time.Second) {
		return math.MaxInt64
	}
	return time.Duration(d.total) * time.Second
}

// String returns d in the form H:MM:SS.
func (d Duration) String() string {
	return fmt.Sprintf("%d:%02d:%02d", d.Hours(), d.Minutes(), d.Seconds())
}

// Compare returns -1, 0 or +1 depending on whether d is shorter than,
// equal to, or longer than e. Durations are ordered by their hour,
// minute and second components, which agrees with ordering by total.
func (d Duration) Compare(e Duration) int {
	return compare3(d.Hours(), int64(d.Minutes()), int64(d.Seconds()), e.Hours(), int64(e.Minutes()), int64(e.Seconds()))
}

// Equal reports whether d and e have the same components.
func (d Duration) Equal(e Duration) bool { return d.Compare(e) == 0 }

// Before reports whether d is shorter than e.
func (d Duration) Before(e Duration) bool { return d.Compare(e) < 0 }

// After reports whether d is longer than e.
func (d Duration) After(e Duration) bool { return d.Compare(e) > 0 }

// IsZero reports whether d is 0:00:00.
func (d Duration) IsZero() bool { return d.total == 0 }

// Add returns d+e. Overflow of the canonical counter is not checked.
func (d Duration) Add(e Duration) Duration { return Duration{d.total + e.total} }

// Sub returns d-e. Durations are never negative, so if e is longer
// than d it returns an error wrapping ErrOutOfRange.
func (d Duration) Sub(e Duration) (Duration, error) {
	if e.After(d) {
		return Duration{}, fmt.Errorf("clock: %v - %v is negative: %w", d, e, ErrOutOfRange)
	}
	return Duration{d.total - e.total}, nil
}

// Plus returns the component-wise sum of d and e, carrying seconds into
// minutes and minutes into hours. The result always equals d.Add(e);
// Plus mirrors ClockTime.Plus.
func (d Duration) Plus(e Duration) Duration {
	s := int64(d.Seconds()) + int64(e.Seconds())
	m := int64(d.Minutes()) + int64(e.Minutes()) + s/secondsPerMin
	h := d.Hours() + e.Hours() + m/minutesPerHour
	return Duration{h*secondsPerHour + m%minutesPerHour*secondsPerMin + s%secondsPerMin}
}

// PlusDurations returns d.Plus(e).
func PlusDurations(d, e Duration) Duration { return d.Plus(e) }
