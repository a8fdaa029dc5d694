package convert

import (
	"math"

	"github.com/jparise/howlong/internal/timeparse"
)

// Record is the structured (JSON or YAML) form of a converted input.
type Record struct {
	Input        string      `json:"input" yaml:"input"`
	Duration     string      `json:"duration" yaml:"duration"`
	Milliseconds *float64    `json:"milliseconds,omitempty" yaml:"milliseconds,omitempty"` // nil for an eternity
	Eternity     bool        `json:"eternity,omitempty" yaml:"eternity,omitempty"`
	Components   []Component `json:"components" yaml:"components"`
}

// Component is one non-zero unit count of a Record.
type Component struct {
	Unit  string  `json:"unit" yaml:"unit"`
	Count float64 `json:"count" yaml:"count"`
}

func newRecord(input string, d timeparse.Duration) Record {
	r := Record{
		Input:      input,
		Duration:   d.String(),
		Eternity:   d.Eternity(),
		Components: []Component{},
	}

	// JSON cannot represent infinity.
	if ms := d.Milliseconds(); !math.IsInf(ms, 0) {
		r.Milliseconds = &ms
	}

	for _, c := range d.Components() {
		if c.Count != 0 && !math.IsNaN(c.Count) && !math.IsInf(c.Count, 0) {
			r.Components = append(r.Components, Component{Unit: c.Unit.Name, Count: c.Count})
		}
	}
	return r
}
