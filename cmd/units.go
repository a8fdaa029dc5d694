package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/howlong/internal/timeparse"
	"github.com/spf13/cobra"
)

const defaultTableWidth = 80

var unitsCmd = &cobra.Command{
	Use:   "units [<pattern>]",
	Short: "List the known duration units",
	Long: `List every unit howlong understands, longest first, with its length in
milliseconds and its aliases. The first alias is the one used by --short.

<pattern> is a glob matched against unit names and aliases (e.g., "m*",
"*second*").`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnits,
}

// matchUnits returns the units whose name or any alias matches pattern.
func matchUnits(pattern string) ([]timeparse.Unit, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var matched []timeparse.Unit
	for _, u := range timeparse.Units() {
		for _, s := range append([]string{u.Name}, u.Aliases...) {
			ok, err := doublestar.Match(pattern, s)
			if err != nil {
				return nil, fmt.Errorf("pattern %q failed to match unit %q: %w", pattern, s, err)
			}
			if ok {
				matched = append(matched, u)
				break
			}
		}
	}
	return matched, nil
}

func printUnits(w io.Writer, units []timeparse.Unit, isTTY bool, width int) error {
	tp := tableprinter.New(w, isTTY, width)
	tp.AddHeader([]string{"NAME", "MILLISECONDS", "ALIASES"})
	for _, u := range units {
		tp.AddField(u.Name)
		tp.AddField(strconv.FormatFloat(u.Milliseconds, 'f', -1, 64))
		tp.AddField(strings.Join(u.Aliases, ", "))
		tp.EndRow()
	}
	return tp.Render()
}

func runUnits(cmd *cobra.Command, args []string) error {
	pattern := "*"
	if len(args) == 1 {
		pattern = args[0]
	}

	units, err := matchUnits(pattern)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return fmt.Errorf("no units match %q", pattern)
	}

	terminal := term.FromEnv()
	width, _, err := terminal.Size()
	if err != nil {
		width = defaultTableWidth
	}

	return printUnits(cmd.OutOrStdout(), units, terminal.IsTerminalOutput(), width)
}
