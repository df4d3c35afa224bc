// Package expires parses compact human-readable expiration expressions and
// resolves them to absolute timestamps.
//
// The grammar is an optional non-negative integer magnitude (defaulting to 1)
// immediately followed by a single unit letter, or the literal "never"
// (case-insensitive). Unit letters are case-sensitive so that minutes and
// months stay unambiguous:
//
//	m  minute
//	h  hour
//	d  day
//	w  week
//	M  month
//	y  year
//
// Note this is the library's own grammar for preparing payloads; the fixed
// token set the PasteMyst API itself accepts (where "1m" means one month) is
// published separately as the ExpiresIn* constants in the root package.
package expires

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse failure causes, matchable with errors.Is.
var (
	// ErrInvalidFormat is returned when an expression matches neither the
	// magnitude+unit pattern nor the literal "never".
	ErrInvalidFormat = errors.New("invalid expiration format")
	// ErrInvalidMagnitude is returned when the numeric part of an expression
	// is not a valid non-negative integer.
	ErrInvalidMagnitude = errors.New("invalid expiration magnitude")
)

// ParseError describes why an expiration expression failed to parse.
type ParseError struct {
	Expr string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expires: parsing %q: %v", e.Expr, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Unit is a calendar unit of an expiration duration.
type Unit int

const (
	Minute Unit = iota + 1
	Hour
	Day
	Week
	Month
	Year
)

var unitLetters = map[byte]Unit{
	'm': Minute,
	'h': Hour,
	'd': Day,
	'w': Week,
	'M': Month,
	'y': Year,
}

func (u Unit) String() string {
	for letter, unit := range unitLetters {
		if unit == u {
			return string(letter)
		}
	}
	return "?"
}

// Spec is a parsed expiration: either Never, or a magnitude of a unit.
// The zero value is not valid; construct via Parse.
type Spec struct {
	Never     bool
	Magnitude int
	Unit      Unit
}

// String renders the spec in the package's canonical grammar.
func (s Spec) String() string {
	if s.Never {
		return "never"
	}
	return strconv.Itoa(s.Magnitude) + s.Unit.String()
}

// Parse parses an expiration expression.
func Parse(expr string) (Spec, error) {
	if strings.EqualFold(expr, "never") {
		return Spec{Never: true}, nil
	}
	if expr == "" {
		return Spec{}, &ParseError{Expr: expr, Err: ErrInvalidFormat}
	}

	unit, ok := unitLetters[expr[len(expr)-1]]
	if !ok {
		return Spec{}, &ParseError{Expr: expr, Err: ErrInvalidFormat}
	}

	digits := expr[:len(expr)-1]
	if digits == "" {
		return Spec{Magnitude: 1, Unit: unit}, nil
	}
	// Plain digits only: Atoi alone would let a sign through.
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Spec{}, &ParseError{Expr: expr, Err: ErrInvalidMagnitude}
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Out of range for int.
		return Spec{}, &ParseError{Expr: expr, Err: ErrInvalidMagnitude}
	}
	return Spec{Magnitude: n, Unit: unit}, nil
}

// Resolve computes the absolute expiration timestamp relative to now.
// It reports false for a Never spec. Month and year arithmetic is
// calendar-correct: the day of month is clamped to the last valid day of
// the target month, so one month after January 31 is the end of February.
// Resolve is pure; it never reads the system clock.
func (s Spec) Resolve(now time.Time) (time.Time, bool) {
	if s.Never {
		return time.Time{}, false
	}
	switch s.Unit {
	case Minute:
		return now.Add(time.Duration(s.Magnitude) * time.Minute), true
	case Hour:
		return now.Add(time.Duration(s.Magnitude) * time.Hour), true
	case Day:
		return now.AddDate(0, 0, s.Magnitude), true
	case Week:
		return now.AddDate(0, 0, 7*s.Magnitude), true
	case Month:
		return addMonthsClamped(now, s.Magnitude), true
	case Year:
		return addMonthsClamped(now, 12*s.Magnitude), true
	}
	return time.Time{}, false
}

// addMonthsClamped adds n months, clamping the day of month instead of
// letting time.AddDate normalize an overflow into the following month.
func addMonthsClamped(t time.Time, n int) time.Time {
	day := t.Day()
	// Anchor on the first of the month so the month addition itself can
	// never overflow, then clamp the day.
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	first = first.AddDate(0, n, 0)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
