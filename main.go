// howlong converts between human-readable durations and milliseconds.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/howlong/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
