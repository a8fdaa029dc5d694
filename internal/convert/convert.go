// Package convert runs batches of inputs through timeparse and writes the
// results.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jparise/howlong/internal/timeparse"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Converter orchestrates the conversion of a batch of inputs.
type Converter struct {
	output *Output
	logger *zap.Logger
}

// New creates a new Converter. A nil logger disables logging.
func New(stdout, stderr io.Writer, colorize bool, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		output: NewOutput(stdout, stderr, colorize),
		logger: logger,
	}
}

type result struct {
	input    string
	duration timeparse.Duration
	err      error
}

// Convert converts every input and writes the results in input order. Inputs
// that fail are reported as warnings; Convert only fails when all of them do.
func (c *Converter) Convert(ctx context.Context, opts *Options) error {
	if len(opts.Inputs) == 0 {
		c.output.Warningf("No inputs to convert")
		return nil
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	// Convert inputs concurrently with bounded parallelism
	results := make([]result, len(opts.Inputs))
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(max(opts.Jobs, 1)))

	for i, input := range opts.Inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer sem.Release(1)

			start := time.Now()
			d, err := convertOne(input, opts.Mode, &opts.Duration, now)
			if err == nil {
				err = checkFinite(d)
			}
			results[i] = result{input: input, duration: d, err: err}

			c.logger.Debug("converted input",
				zap.String("input", input),
				zap.Float64("milliseconds", d.Milliseconds()),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
		}(i, input)
	}

	wg.Wait()

	return c.write(results, opts)
}

func (c *Converter) write(results []result, opts *Options) error {
	var failed int
	records := make([]Record, 0, len(results))
	labeled := len(results) > 1

	for _, r := range results {
		if r.err != nil {
			failed++
			c.output.Warningf("%s: %v", r.input, r.err)
			continue
		}

		if opts.Format == FormatText || opts.Format == "" {
			c.output.Result(r.input, display(r.duration, opts.Duration.Short), labeled)
			continue
		}
		records = append(records, newRecord(r.input, r.duration))
	}

	if failed == len(results) {
		return fmt.Errorf("failed to convert all %d inputs", len(results))
	}
	if failed > 0 {
		c.output.Infof("%d of %d inputs could not be converted", failed, len(results))
	}

	switch opts.Format {
	case FormatJSON:
		return c.output.JSON(records)
	case FormatYAML:
		return c.output.YAML(records)
	}
	return nil
}

func convertOne(input string, mode Mode, opts *timeparse.Options, now time.Time) (timeparse.Duration, error) {
	switch mode {
	case ModeMilliseconds:
		ms, err := parseMilliseconds(input)
		if err != nil {
			return timeparse.Duration{}, err
		}
		return timeparse.Format(ms, opts), nil
	case ModeSince:
		return timeparse.Since(strings.TrimSpace(input), now, opts)
	default:
		return timeparse.Parse(input, opts)
	}
}

// checkFinite rejects totals that cannot be rendered or encoded. Positive
// infinity is an eternity and is allowed.
func checkFinite(d timeparse.Duration) error {
	if ms := d.Milliseconds(); math.IsNaN(ms) || math.IsInf(ms, -1) {
		return fmt.Errorf("duration %v is not finite", ms)
	}
	return nil
}

// parseMilliseconds reads a millisecond count. "inf" is accepted as an
// eternity; NaN and negative infinity are rejected.
func parseMilliseconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("invalid millisecond count %q", s)
	}
	if math.IsNaN(ms) || math.IsInf(ms, -1) {
		return 0, fmt.Errorf("invalid millisecond count %q: must be a number or +Inf", s)
	}
	return ms, nil
}

// display returns the rendered duration, spelling out zero rather than
// printing nothing.
func display(d timeparse.Duration, short bool) string {
	if s := d.String(); s != "" {
		return s
	}
	if short {
		return "0ms"
	}
	return "0 milliseconds"
}
