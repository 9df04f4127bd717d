package clock

import "fmt"

const (
	hoursPerDay    = 24
	minutesPerHour = 60
	secondsPerMin  = 60
	secondsPerHour = minutesPerHour * secondsPerMin
)

// A ClockTime is a time of day between 00:00:00 and 23:59:59.
// The zero value is midnight.
type ClockTime struct {
	hour, min, sec uint8
}

// Midnight is the ClockTime 00:00:00.
var Midnight = ClockTime{}

// NewClockTime returns the clock time hours:minutes:seconds. The minutes
// and seconds are optional and default to zero, so NewClockTime(7) is
// 07:00:00 and NewClockTime(7, 30) is 07:30:00.
//
// It returns an error wrapping ErrOutOfRange if hours exceeds 23, a
// later component exceeds 59, or more than three components are given.
func NewClockTime(hours uint8, rest ...uint8) (ClockTime, error) {
	if len(rest) > 2 {
		return ClockTime{}, fmt.Errorf("clock: %d components given, want at most 3: %w", len(rest)+1, ErrOutOfRange)
	}
	t := ClockTime{hour: hours}
	if len(rest) > 0 {
		t.min = rest[0]
	}
	if len(rest) > 1 {
		t.sec = rest[1]
	}
	if err := t.check(); err != nil {
		return ClockTime{}, err
	}
	return t, nil
}

// MustClockTime is like NewClockTime but panics on error.
func MustClockTime(hours uint8, rest ...uint8) ClockTime {
	t, err := NewClockTime(hours, rest...)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseClockTime parses a string of the form HH:MM:SS. Fields need not
// be zero-padded. Malformed input yields an error matching ErrParse,
// out-of-range fields one matching ErrOutOfRange.
func ParseClockTime(s string) (ClockTime, error) {
	f, err := splitFields("time", s)
	if err != nil {
		return ClockTime{}, err
	}
	for i, v := range f {
		if v > 0xff {
			return ClockTime{}, fieldOutOfRange(i, v)
		}
	}
	t := ClockTime{hour: uint8(f[0]), min: uint8(f[1]), sec: uint8(f[2])}
	if err := t.check(); err != nil {
		return ClockTime{}, err
	}
	return t, nil
}

// The components are unsigned, so only upper bounds need checking.
func (t ClockTime) check() error {
	switch {
	case t.hour >= hoursPerDay:
		return outOfRange("clock: hours", int64(t.hour), hoursPerDay-1)
	case t.min >= minutesPerHour:
		return outOfRange("clock: minutes", int64(t.min), minutesPerHour-1)
	case t.sec >= secondsPerMin:
		return outOfRange("clock: seconds", int64(t.sec), secondsPerMin-1)
	}
	return nil
}

// Hour returns the hour of t, in [0, 23].
func (t ClockTime) Hour() uint8 { return t.hour }

// Minute returns the minute within the hour of t, in [0, 59].
func (t ClockTime) Minute() uint8 { return t.min }

// Second returns the second within the minute of t, in [0, 59].
func (t ClockTime) Second() uint8 { return t.sec }

// String returns t in the form HH:MM:SS.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.min, t.sec)
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal
// to, or after u, ordering by hours, then minutes, then seconds.
func (t ClockTime) Compare(u ClockTime) int {
	return compare3(int64(t.hour), int64(t.min), int64(t.sec), int64(u.hour), int64(u.min), int64(u.sec))
}

// Equal reports whether t and u have the same hours, minutes and seconds.
func (t ClockTime) Equal(u ClockTime) bool { return t == u }

// Before reports whether t is earlier in the day than u.
func (t ClockTime) Before(u ClockTime) bool { return t.Compare(u) < 0 }

// After reports whether t is later in the day than u.
func (t ClockTime) After(u ClockTime) bool { return t.Compare(u) > 0 }

// Add returns the component-wise sum t+u, carrying seconds into minutes
// and minutes into hours, and wrapping hours modulo 24.
//
// This is modular arithmetic on the dial of a clock: 23:00:00 plus
// 02:00:00 is 01:00:00. To advance a clock time by an elapsed span,
// use Plus.
func (t ClockTime) Add(u ClockTime) ClockTime {
	return wrapAdd(t, int64(u.hour), int64(u.min), int64(u.sec))
}

// Sub returns the component-wise difference t-u, borrowing from the
// next larger component whenever one goes negative. The result is
// always a valid clock time: if u is after t it wraps backwards past
// midnight, so 00:00:00 minus 00:00:01 is 23:59:59.
func (t ClockTime) Sub(u ClockTime) ClockTime {
	s := int(t.sec) - int(u.sec)
	m := int(t.min) - int(u.min)
	h := int(t.hour) - int(u.hour)
	if s < 0 {
		s += secondsPerMin
		m--
	}
	if m < 0 {
		m += minutesPerHour
		h--
	}
	if h < 0 {
		h += hoursPerDay
	}
	return ClockTime{hour: uint8(h), min: uint8(m), sec: uint8(s)}
}

// Plus returns t advanced by d, wrapping around midnight as often as
// needed.
func (t ClockTime) Plus(d Duration) ClockTime {
	return wrapAdd(t, d.Hours(), int64(d.Minutes()), int64(d.Seconds()))
}

// PlusDuration returns t advanced by d. It is equivalent to t.Plus(d).
func PlusDuration(t ClockTime, d Duration) ClockTime { return t.Plus(d) }

// Since returns the distance between t and u; see Between.
func (t ClockTime) Since(u ClockTime) Duration { return Between(t, u) }

// wrapAdd adds non-negative components to t with carry, reducing the
// hours modulo 24.
func wrapAdd(t ClockTime, h, m, s int64) ClockTime {
	s += int64(t.sec)
	m += int64(t.min) + s/secondsPerMin
	h = h%hoursPerDay + int64(t.hour) + m/minutesPerHour
	return ClockTime{
		hour: uint8(h % hoursPerDay),
		min:  uint8(m % minutesPerHour),
		sec:  uint8(s % secondsPerMin),
	}
}

func compare3(a1, a2, a3, b1, b2, b3 int64) int {
	switch {
	case a1 != b1:
		return sign(a1 - b1)
	case a2 != b2:
		return sign(a2 - b2)
	}
	return sign(a3 - b3)
}

func sign(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
