package timeparse

import (
	"math"
	"strconv"
	"strings"
)

// render joins the non-zero components that fall within opts.Relevant
// positions of the first non-zero one. Positions count every tier, including
// zero ones in between.
func render(components []Component, opts Options) string {
	var segments []string
	first := -1
	for i, c := range components {
		if c.Count == 0 || math.IsNaN(c.Count) {
			continue
		}
		if first >= 0 && i >= first+opts.Relevant {
			break
		}
		if first < 0 {
			first = i
		}
		segments = append(segments, c.format(opts.Short))
	}

	if len(segments) < 2 {
		return strings.Join(segments, "")
	}

	last := len(segments) - 1
	sep := ", "
	if !opts.Short {
		sep = " and "
	}
	return strings.Join(segments[:last], ", ") + sep + segments[last]
}

func (c Component) format(short bool) string {
	n := strconv.FormatFloat(c.Count, 'f', -1, 64)
	if short {
		return n + c.Unit.Suffix()
	}
	return n + " " + plural(c.Unit.Name, c.Count)
}

func plural(s string, count float64) string {
	if count == 1 {
		return s
	}
	return s + "s"
}
