package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/howlong/internal/convert"
	"github.com/jparise/howlong/internal/timeparse"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

// outputFormat adapts convert.Format to a flag value.
type outputFormat convert.Format

func (f *outputFormat) String() string {
	return string(*f)
}

func (f *outputFormat) Set(v string) error {
	format, err := convert.ParseFormat(v)
	if err != nil {
		return err
	}
	*f = outputFormat(format)
	return nil
}

func (f *outputFormat) Type() string {
	return "format"
}

var (
	version = "dev"

	// Flags.
	color    = colorAuto
	output   = outputFormat(convert.FormatText)
	short    bool
	relevant int
	strict   bool
	millis   bool
	since    bool
	jobs     int
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "howlong [<expression>...]",
	Short: "Convert between duration expressions and milliseconds",
	Long: `howlong reads human-readable durations and prints them broken down into
units, from nanoseconds up to aeons.

<expression> is a duration such as "2d 3h", "1.5 hours" or "90mins". Spaces,
punctuation and case are ignored. A lone number is a count of minutes and a
lone unit means one of it. Misspelled units resolve to the closest known unit
unless --strict is given.

With no expressions, or a single "-", expressions are read from standard
input, one per line.

Examples:
  howlong 2d3h
  howlong --relevant 4 "1 day 1 hour 1 minute 1 second"
  howlong --short 5400000 --ms
  howlong --since 2018-10-27
  howlong -o json "90 mins" "1 fortnight"
  echo "3 weeks" | howlong --strict`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if jobs < 1 || jobs > 100 {
			return fmt.Errorf("--jobs must be between 1 and 100, got %d", jobs)
		}
		if relevant < 1 {
			return fmt.Errorf("--relevant must be at least 1, got %d", relevant)
		}
		return nil
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&short, "short", "s", false,
		"use unit abbreviations instead of full names")
	rootCmd.Flags().IntVarP(&relevant, "relevant", "r", 2,
		"number of units to show, counted from the largest non-zero unit")
	rootCmd.Flags().BoolVar(&strict, "strict", false,
		"reject misspelled units and missing numbers or units")
	rootCmd.Flags().BoolVar(&millis, "ms", false,
		"treat inputs as millisecond counts")
	rootCmd.Flags().BoolVar(&since, "since", false,
		"treat inputs as timestamps (YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, RFC3339) and show the time elapsed")
	rootCmd.Flags().VarP(&output, "output", "o",
		"output format: text, json, yaml")
	rootCmd.Flags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 10,
		"maximum concurrent conversions")
	rootCmd.Flags().BoolVar(&debug, "debug", false,
		"log debug information to stderr")
	rootCmd.MarkFlagsMutuallyExclusive("ms", "since")

	rootCmd.AddCommand(unitsCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// readInputs returns the expressions to convert. Without arguments, or with a
// single "-", non-blank lines are read from r.
func readInputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return args, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read standard input: %w", err)
	}

	return inputs, nil
}

// newLogger builds a debug logger, or a no-op logger when debug is false.
// Terminals get zap's human-oriented development encoding.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	var conf zap.Config
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		conf = zap.NewDevelopmentConfig()
	} else {
		conf = zap.NewProductionConfig()
	}
	conf.Level.SetLevel(zap.DebugLevel)

	logger, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func inputMode() convert.Mode {
	switch {
	case millis:
		return convert.ModeMilliseconds
	case since:
		return convert.ModeSince
	default:
		return convert.ModeExpression
	}
}

func colorEnabled() bool {
	switch color {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return term.FromEnv().IsColorEnabled()
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	logger, err := newLogger(debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := &convert.Options{
		Inputs: inputs,
		Mode:   inputMode(),
		Format: convert.Format(output),
		Duration: timeparse.Options{
			Short:    short,
			Relevant: relevant,
			Strict:   strict,
		},
		Jobs: jobs,
	}

	logger.Debug("starting conversion",
		zap.Int("inputs", len(inputs)),
		zap.String("mode", string(opts.Mode)),
		zap.String("format", string(opts.Format)),
		zap.Int("jobs", opts.Jobs))

	c := convert.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorEnabled(), logger)
	return c.Convert(ctx, opts)
}
