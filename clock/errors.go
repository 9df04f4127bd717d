package clock

import (
	"errors"
	"fmt"
	"strconv"
)

// Errors returned by constructors and parsers. Callers should test for
// them with errors.Is, as the returned errors carry additional context.
var (
	ErrOutOfRange = errors.New("clock: value out of range")
	ErrParse      = errors.New("clock: malformed time string")
)

// A ParseError records a failed conversion of a string to a ClockTime
// or Duration.
type ParseError struct {
	Type  string // "time" or "duration"
	Input string
	Err   error // underlying cause, possibly from strconv
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("clock: parsing %s %q: %v", e.Type, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse, so that every ParseError
// matches errors.Is(err, ErrParse) regardless of its cause.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func outOfRange(what string, v, max int64) error {
	return fmt.Errorf("%s %d exceeds %d: %w", what, v, max, ErrOutOfRange)
}

var fieldNames = [...]string{"hours", "minutes", "seconds"}

// fieldOutOfRange reports a parsed field too large for any component.
func fieldOutOfRange(i int, v uint64) error {
	return fmt.Errorf("clock: %s %d: %w", fieldNames[i], v, ErrOutOfRange)
}

// splitFields parses the three colon-separated unsigned decimal fields
// shared by both text forms. Range checks are left to the caller, except
// that a field too large for uint64 reports ErrOutOfRange.
func splitFields(typ, s string) (f [3]uint64, err error) {
	var (
		n     int
		start int
	)
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ':' {
			continue
		}
		if n == len(f) {
			return f, &ParseError{typ, s, errors.New("too many fields")}
		}
		v, err := strconv.ParseUint(s[start:i], 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return f, fmt.Errorf("clock: parsing %s %q: %w", typ, s, ErrOutOfRange)
			}
			return f, &ParseError{typ, s, err}
		}
		f[n] = v
		n++
		start = i + 1
	}
	if n != len(f) {
		return f, &ParseError{typ, s, errors.New("want three colon-separated fields")}
	}
	return f, nil
}
