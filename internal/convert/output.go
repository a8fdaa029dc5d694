package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/mgutz/ansi"
	"gopkg.in/yaml.v3"
)

// Output handles all output formatting with optional color support.
type Output struct {
	mu       sync.Mutex
	stdout   io.Writer
	stderr   io.Writer
	colorize bool

	cyan   func(string) string
	green  func(string) string
	yellow func(string) string
}

// NewOutput creates a new Output with optional color support.
func NewOutput(stdout, stderr io.Writer, colorize bool) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:   stdout,
		stderr:   stderr,
		colorize: colorize,
		cyan:     color("cyan"),
		green:    color("green+b"),
		yellow:   color("yellow"),
	}
}

// Result writes a converted duration. When labeled, the line is prefixed with
// the input it came from: "input: duration".
func (o *Output) Result(input, duration string, labeled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if labeled {
		fmt.Fprintf(o.stdout, "%s: %s\n", o.cyan(input), o.green(duration))
		return
	}
	fmt.Fprintf(o.stdout, "%s\n", o.green(duration))
}

// JSON writes v as indented JSON, colorized when color is enabled.
func (o *Output) JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return jsonpretty.Format(o.stdout, bytes.NewReader(data), "  ", o.colorize)
}

// YAML writes v as a YAML document.
func (o *Output) YAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	_, err = o.stdout.Write(data)
	return err
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}
