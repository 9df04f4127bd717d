/*
Package clock defines two small value types for wall-clock arithmetic.

A ClockTime is a point within a single 24-hour cycle, 00:00:00 through
23:59:59. Its arithmetic is modular: adding or subtracting clock times
wraps around midnight rather than overflowing.

A Duration is a non-negative span of elapsed time. It is held as a
total number of seconds and exposes hours (unbounded), minutes and
seconds as derived components. Duration subtraction never wraps; a
result below zero is an error.

Both types are immutable, comparable with ==, and safe for concurrent
use. Their text forms are

	ClockTime  HH:MM:SS   e.g. 07:05:00
	Duration   H:MM:SS    e.g. 31:05:00

Clock times and durations meet in two places: a Duration can be added
to a ClockTime (Plus), and the distance between two clock times is a
Duration (Between).

	t, _ := clock.ParseClockTime("10:30:00")
	d, _ := clock.ParseDuration("2:45:10")
	fmt.Println(t.Plus(d)) // 13:15:10
*/
package clock
