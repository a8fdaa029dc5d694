// Package timeparse converts between human-readable duration expressions and
// millisecond counts.
//
// Parsing accepts loose input such as "2d 3h", "1.5 hours" or "90 mins" and
// tolerates misspelled unit names unless strict mode is requested. Formatting
// breaks a millisecond count into a fixed hierarchy of units and renders the
// most significant ones:
//
//	d := timeparse.Format(90061000, nil)
//	d.String() // "1 day and 1 hour"
package timeparse

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnsupportedInput is returned for inputs that are neither numbers nor strings.
	ErrUnsupportedInput = errors.New("unsupported input type")
	// ErrNoTokens is returned when the input has no magnitude or unit runs.
	ErrNoTokens = errors.New("no magnitude or unit found")
	// ErrUnpairedToken is returned in strict mode for a magnitude without a unit
	// or a unit without a magnitude.
	ErrUnpairedToken = errors.New("unpaired magnitude or unit")
	// ErrMalformedToken is returned in strict mode when a unit contains digits
	// or a magnitude contains letters.
	ErrMalformedToken = errors.New("malformed magnitude or unit")
	// ErrUnknownUnit is returned when no unit matches a token.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrNothingParsed is returned when the input adds up to zero milliseconds.
	ErrNothingParsed = errors.New("no duration parsed")
	// ErrIterationLimit is returned when input is left over after the maximum
	// number of tokenizer cycles.
	ErrIterationLimit = errors.New("too many tokens")
)

// Options controls parsing and rendering. The zero value of each field is its
// default, so partially filled Options behave like DefaultOptions for the
// fields left out.
type Options struct {
	Short    bool // terse unit suffixes instead of full names joined with "and"
	Relevant int  // number of unit tiers rendered from the first non-zero one
	Strict   bool // disable fuzzy unit matching and implicit magnitudes or units
}

const defaultRelevant = 2

// DefaultOptions returns verbose rendering of two relevant tiers with lenient
// parsing.
func DefaultOptions() Options {
	return Options{Relevant: defaultRelevant}
}

// normalize returns a copy of opts with defaults filled in. A nil opts yields
// DefaultOptions.
func normalize(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}
	o := *opts
	if o.Relevant < 1 {
		o.Relevant = defaultRelevant
	}
	return o
}

// FormatOrParse decomposes input into a Duration. Numbers of any Go numeric
// kind are millisecond counts, a time.Duration is converted to milliseconds,
// and strings are parsed as duration expressions.
func FormatOrParse(input any, opts *Options) (Duration, error) {
	var ms float64
	switch v := input.(type) {
	case string:
		return Parse(v, opts)
	case time.Duration:
		ms = float64(v) / float64(time.Millisecond)
	case float64:
		ms = v
	case float32:
		ms = float64(v)
	case int:
		ms = float64(v)
	case int8:
		ms = float64(v)
	case int16:
		ms = float64(v)
	case int32:
		ms = float64(v)
	case int64:
		ms = float64(v)
	case uint:
		ms = float64(v)
	case uint8:
		ms = float64(v)
	case uint16:
		ms = float64(v)
	case uint32:
		ms = float64(v)
	case uint64:
		ms = float64(v)
	default:
		return Duration{}, fmt.Errorf("%T: %w", input, ErrUnsupportedInput)
	}
	return Format(ms, opts), nil
}

// Format decomposes a millisecond count. Positive infinity is an eternity.
func Format(ms float64, opts *Options) Duration {
	return decompose(ms, normalize(opts))
}
