package convert

import (
	"fmt"
	"time"

	"github.com/jparise/howlong/internal/timeparse"
)

// Mode selects how inputs are interpreted.
type Mode string

const (
	// ModeExpression parses inputs as duration expressions ("2d 3h").
	ModeExpression Mode = "expression"
	// ModeMilliseconds reads inputs as millisecond counts.
	ModeMilliseconds Mode = "milliseconds"
	// ModeSince reads inputs as timestamps and reports the time elapsed since.
	ModeSince Mode = "since"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("must be one of %q, %q, or %q", FormatText, FormatJSON, FormatYAML)
	}
}

// Options contains all conversion parameters.
type Options struct {
	Inputs   []string
	Mode     Mode
	Format   Format
	Duration timeparse.Options
	Now      time.Time // reference time for ModeSince (zero = time.Now())
	Jobs     int       // Maximum concurrent conversions
}
