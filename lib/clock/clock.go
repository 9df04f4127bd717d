package clock

import (
	"fmt"
	"math"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"go.wallclock.dev/clock"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "clock"

// Module clock is a Starlark module of time-of-day and duration values.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"time":           starlark.NewBuiltin("time", newTime),
		"duration":       starlark.NewBuiltin("duration", newDuration),
		"parse_time":     starlark.NewBuiltin("parse_time", parseTime),
		"parse_duration": starlark.NewBuiltin("parse_duration", parseDuration),
		"from_seconds":   starlark.NewBuiltin("from_seconds", fromSeconds),
		"between":        starlark.NewBuiltin("between", between),

		"midnight": Time(clock.Midnight),

		"zero":   Duration{},
		"second": Duration(clock.Second),
		"minute": Duration(clock.Minute),
		"hour":   Duration(clock.Hour),
	},
}

// LoadModule loads the clock module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

func newTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var h, m, s int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "hours", &h, "minutes?", &m, "seconds?", &s); err != nil {
		return nil, err
	}
	for _, v := range [...]int{h, m, s} {
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("%s: component %d: %w", b.Name(), v, clock.ErrOutOfRange)
		}
	}
	t, err := clock.NewClockTime(uint8(h), uint8(m), uint8(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Time(t), nil
}

func newDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		h    = starlark.MakeInt(0)
		m, s int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "hours?", &h, "minutes?", &m, "seconds?", &s); err != nil {
		return nil, err
	}
	hours, ok := h.Int64()
	if !ok {
		return nil, fmt.Errorf("%s: hours %v: %w", b.Name(), h, clock.ErrOutOfRange)
	}
	d, err := clock.NewDuration(hours, int64(m), int64(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Duration(d), nil
}

func parseTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	t, err := clock.ParseClockTime(x)
	if err != nil {
		return nil, err
	}
	return Time(t), nil
}

func parseDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	d, err := clock.ParseDuration(x)
	if err != nil {
		return nil, err
	}
	return Duration(d), nil
}

func fromSeconds(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	d, err := durationOfInt(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return d, nil
}

func between(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y Time
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "a", &x, "b", &y); err != nil {
		return nil, err
	}
	return Duration(clock.Between(clock.ClockTime(x), clock.ClockTime(y))), nil
}

func durationOfInt(x starlark.Int) (Duration, error) {
	i, ok := x.Int64()
	if !ok {
		return Duration{}, fmt.Errorf("int value out of range (want signed 64-bit value)")
	}
	d, err := clock.DurationOf(i)
	return Duration(d), err
}

// Time is a Starlark representation of a time of day.
type Time clock.ClockTime

var (
	_ starlark.Unpacker   = (*Time)(nil)
	_ starlark.HasAttrs   = Time{}
	_ starlark.HasBinary  = Time{}
	_ starlark.Comparable = Time{}
)

// Unpack accepts a clock.time or an HH:MM:SS string.
func (t *Time) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Time:
		*t = x
		return nil
	case starlark.String:
		ct, err := clock.ParseClockTime(string(x))
		if err != nil {
			return err
		}
		*t = Time(ct)
		return nil
	}
	return fmt.Errorf("cannot convert %s to %s", v.Type(), t.Type())
}

// String implements the Stringer interface.
func (t Time) String() string { return clock.ClockTime(t).String() }

// Type returns "clock.time".
func (t Time) Type() string { return "clock.time" }

// Freeze is a no-op; times are immutable.
func (t Time) Freeze() {}

// Hash returns the second of the day.
func (t Time) Hash() (uint32, error) {
	ct := clock.ClockTime(t)
	return uint32(ct.Hour())*3600 + uint32(ct.Minute())*60 + uint32(ct.Second()), nil
}

// Truth reports whether t is not midnight.
func (t Time) Truth() starlark.Bool { return clock.ClockTime(t) != clock.Midnight }

// Attr gets a value for a string attribute, implementing dot expression support
// in starlark. required by starlark.HasAttrs interface.
func (t Time) Attr(name string) (starlark.Value, error) {
	ct := clock.ClockTime(t)
	switch name {
	case "hour":
		return starlark.MakeInt(int(ct.Hour())), nil
	case "minute":
		return starlark.MakeInt(int(ct.Minute())), nil
	case "second":
		return starlark.MakeInt(int(ct.Second())), nil
	}
	return builtinAttr(t, name, timeMethods)
}

// AttrNames lists available dot expression strings for time. required by
// starlark.HasAttrs interface.
func (t Time) AttrNames() []string {
	return append(builtinAttrNames(timeMethods),
		"hour",
		"minute",
		"second",
	)
}

// CompareSameType implements comparison of two Time values. required by
// starlark.Comparable interface.
func (t Time) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	cp := clock.ClockTime(t).Compare(clock.ClockTime(yV.(Time)))
	return threeway(op, cp), nil
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface
//
//	time + time = time
//	time + duration = time
//	time - time = duration
func (t Time) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := clock.ClockTime(t)

	switch op {
	case syntax.PLUS:
		switch y := yV.(type) {
		case Time:
			return Time(x.Add(clock.ClockTime(y))), nil
		case Duration:
			return Time(x.Plus(clock.Duration(y))), nil
		}
	case syntax.MINUS:
		switch y := yV.(type) {
		case Time:
			// Between is symmetric, so the side does not matter.
			return Duration(clock.Between(x, clock.ClockTime(y))), nil
		case Duration:
			// time - duration is not defined
		}
	}

	return nil, nil
}

var timeMethods = map[string]builtinMethod{
	"format": format,
	"plus":   timePlus,
	"minus":  timeMinus,
}

func format(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(recV.String()), nil
}

func timePlus(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y Time
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return Time(clock.ClockTime(recV.(Time)).Add(clock.ClockTime(y))), nil
}

func timeMinus(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y Time
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return Time(clock.ClockTime(recV.(Time)).Sub(clock.ClockTime(y))), nil
}

// Duration is a Starlark representation of a non-negative duration.
type Duration clock.Duration

var (
	_ starlark.Unpacker   = (*Duration)(nil)
	_ starlark.HasAttrs   = Duration{}
	_ starlark.HasBinary  = Duration{}
	_ starlark.Comparable = Duration{}
)

// Unpack accepts a clock.duration, a number of seconds, or an H:MM:SS
// string.
func (d *Duration) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Duration:
		*d = x
		return nil
	case starlark.Int:
		dur, err := durationOfInt(x)
		if err != nil {
			return err
		}
		*d = dur
		return nil
	case starlark.String:
		dur, err := clock.ParseDuration(string(x))
		if err != nil {
			return err
		}
		*d = Duration(dur)
		return nil
	}
	return fmt.Errorf("cannot convert %s to %s", v.Type(), d.Type())
}

// String implements the Stringer interface.
func (d Duration) String() string { return clock.Duration(d).String() }

// Type returns "clock.duration".
func (d Duration) Type() string { return "clock.duration" }

// Freeze is a no-op; durations are immutable.
func (d Duration) Freeze() {}

// Hash returns a function of x such that Equals(x, y) => Hash(x) == Hash(y)
// required by starlark.Value interface.
func (d Duration) Hash() (uint32, error) {
	n := clock.Duration(d).TotalSeconds()
	return uint32(n) ^ uint32(n>>32), nil
}

// Truth reports whether d is non-zero.
func (d Duration) Truth() starlark.Bool { return starlark.Bool(!clock.Duration(d).IsZero()) }

// Attr gets a value for a string attribute, implementing dot expression support
// in starlark. required by starlark.HasAttrs interface.
func (d Duration) Attr(name string) (starlark.Value, error) {
	x := clock.Duration(d)
	switch name {
	case "hours":
		return starlark.MakeInt64(x.Hours()), nil
	case "minutes":
		return starlark.MakeInt(int(x.Minutes())), nil
	case "seconds":
		return starlark.MakeInt(int(x.Seconds())), nil
	case "total_seconds":
		return starlark.MakeInt64(x.TotalSeconds()), nil
	}
	return builtinAttr(d, name, durationMethods)
}

// AttrNames lists available dot expression strings. required by
// starlark.HasAttrs interface.
func (d Duration) AttrNames() []string {
	return append(builtinAttrNames(durationMethods),
		"hours",
		"minutes",
		"seconds",
		"total_seconds",
	)
}

// CompareSameType implements comparison of two Duration values. required by
// starlark.Comparable interface.
func (d Duration) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	cp := clock.Duration(d).Compare(clock.Duration(yV.(Duration)))
	return threeway(op, cp), nil
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface. operators:
//
//	duration + duration = duration
//	duration + int = duration
//	duration + time = time
//	duration - duration = duration
//	duration - int = duration
//	duration * int = duration
//
// Integers count seconds. A result below zero, or one too long to count
// in an int64, is an error.
func (d Duration) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := clock.Duration(d)

	switch op {
	case syntax.PLUS:
		switch y := yV.(type) {
		case Duration:
			return addSeconds(x.TotalSeconds(), clock.Duration(y).TotalSeconds())
		case starlark.Int:
			i, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("int value out of range (want signed 64-bit value)")
			}
			return addSeconds(x.TotalSeconds(), i)
		case Time:
			return Time(clock.ClockTime(y).Plus(x)), nil
		}

	case syntax.MINUS:
		switch y := yV.(type) {
		case Duration:
			l, r := x, clock.Duration(y)
			if side == starlark.Right {
				l, r = r, l
			}
			diff, err := l.Sub(r)
			if err != nil {
				return nil, err
			}
			return Duration(diff), nil
		case starlark.Int:
			i, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("int value out of range (want signed 64-bit value)")
			}
			if side == starlark.Right {
				// int - duration is not defined
				return nil, nil
			}
			if i == math.MinInt64 {
				return nil, fmt.Errorf("clock: %v - %d seconds overflows: %w", x, i, clock.ErrOutOfRange)
			}
			return addSeconds(x.TotalSeconds(), -i)
		}

	case syntax.STAR:
		switch y := yV.(type) {
		case starlark.Int:
			i, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("int value out of range (want signed 64-bit value)")
			}
			return scaleSeconds(x.TotalSeconds(), i)
		}
	}

	return nil, nil
}

// addSeconds returns the duration of n+i seconds for n >= 0. Unlike
// clock.Duration.Add it rejects sums that overflow an int64.
func addSeconds(n, i int64) (starlark.Value, error) {
	if i > 0 && n > math.MaxInt64-i {
		return nil, fmt.Errorf("clock: %d + %d seconds overflows: %w", n, i, clock.ErrOutOfRange)
	}
	return fromTotal(n + i)
}

// scaleSeconds returns the duration of n*i seconds for n >= 0.
func scaleSeconds(n, i int64) (starlark.Value, error) {
	switch {
	case n == 0 || i == 0:
		return Duration{}, nil
	case i < 0:
		return nil, fmt.Errorf("clock: %d * %d seconds is negative: %w", n, i, clock.ErrOutOfRange)
	case n > math.MaxInt64/i:
		return nil, fmt.Errorf("clock: %d * %d seconds overflows: %w", n, i, clock.ErrOutOfRange)
	}
	return fromTotal(n * i)
}

func fromTotal(n int64) (starlark.Value, error) {
	d, err := clock.DurationOf(n)
	if err != nil {
		return nil, err
	}
	return Duration(d), nil
}

var durationMethods = map[string]builtinMethod{
	"format": format,
}

type builtinMethod func(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}
