package timeparse

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxCycles bounds the tokenizer. Malformed input may never be consumed.
const maxCycles = 10

// implicitUnit is assumed for a lone magnitude in lenient mode.
const implicitUnit = "m"

var (
	discardPattern = regexp.MustCompile(`[^a-z0-9.\-]+`)
	runPattern     = regexp.MustCompile(`[a-zæ]+|[0-9.\-]+`)
)

// Parse parses a duration expression such as "2d 3h", "1.5 hours" or
// "90mins". Whitespace, punctuation and case are ignored.
//
// In lenient mode a lone unit ("hour") means one of that unit, a lone number
// means minutes, and misspelled units resolve to the closest known spelling.
// Strict mode rejects all three.
func Parse(s string, opts *Options) (Duration, error) {
	o := normalize(opts)
	ms, err := parseMilliseconds(s, o.Strict)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return decompose(ms, o), nil
}

func parseMilliseconds(s string, strict bool) (float64, error) {
	// Lowercase before discarding so "1H" reads as an hour.
	rest := discardPattern.ReplaceAllString(strings.ToLower(s), "")
	if rest == "" {
		return 0, ErrNoTokens
	}

	var total float64
	for cycle := 0; rest != ""; cycle++ {
		if cycle == maxCycles {
			return 0, fmt.Errorf("%q left after %d cycles: %w", rest, maxCycles, ErrIterationLimit)
		}

		runs := runPattern.FindAllString(rest, 2)
		if len(runs) == 0 {
			return 0, ErrNoTokens
		}

		var magnitude, unit string
		switch {
		case len(runs) == 2:
			magnitude, unit = runs[0], runs[1]
		case strict:
			return 0, fmt.Errorf("%q: %w", runs[0], ErrUnpairedToken)
		case isLetters(runs[0]):
			magnitude, unit = "1", runs[0]
		default:
			magnitude, unit = runs[0], implicitUnit
		}

		// A remainder that starts with letters pairs them with the following
		// number. Nothing is consumed, so lenient parsing spins until maxCycles.
		if !isLetters(unit) || !isNumeric(magnitude) {
			if strict {
				return 0, fmt.Errorf("%q followed by %q: %w", magnitude, unit, ErrMalformedToken)
			}
			continue
		}

		u, err := resolve(unit, strict)
		if err != nil {
			if strict {
				return 0, err
			}
			continue
		}

		total += leadingFloat(magnitude) * u.Milliseconds
		rest = rest[min(len(magnitude)+len(unit), len(rest)):]
	}

	if total == 0 || math.IsNaN(total) {
		return 0, ErrNothingParsed
	}
	return total, nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && r != 'æ' {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) && s[i] != '.' && s[i] != '-' {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// leadingFloat reads the longest decimal number at the start of s, so
// "1.5.2" is 1.5 and "3-4" is 3. It returns NaN if s does not start with a
// number.
func leadingFloat(s string) float64 {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 {
			i = j
		} else if intDigits == 0 {
			return math.NaN()
		}
	} else if intDigits == 0 {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}
