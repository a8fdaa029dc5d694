package timeparse

import (
	"math"
	"slices"
	"time"
)

// tier is one field of a decomposed duration.
type tier struct {
	unit *Unit

	// modulus bounds the field by the next coarser field; zero leaves the
	// field unbounded.
	modulus float64

	// modBeforeRound applies the modulus to the unrounded quotient.
	modBeforeRound bool
}

// tiers lists the decomposition fields, longest first. Eternity is set
// separately and is not computed from the quotient.
var tiers = []tier{
	{unit: mustUnit("eternity")},
	{unit: mustUnit("aeon")},
	{unit: mustUnit("millenium"), modulus: 1000000},
	{unit: mustUnit("century"), modulus: 10, modBeforeRound: true},
	{unit: mustUnit("decade"), modulus: 10},
	{unit: mustUnit("year"), modulus: 10},
	{unit: mustUnit("day"), modulus: 365},
	{unit: mustUnit("hour"), modulus: 24},
	{unit: mustUnit("minute"), modulus: 60},
	{unit: mustUnit("second"), modulus: 60},
	{unit: mustUnit("millisecond"), modulus: 1000},
	{unit: mustUnit("microsecond"), modulus: 1000},
	{unit: mustUnit("nanosecond"), modulus: 1000},
}

func (t tier) count(ms float64, round func(float64) float64) float64 {
	q := t.unit.in(ms)
	switch {
	case t.modulus == 0:
		return round(q)
	case t.modBeforeRound:
		return round(math.Mod(q, t.modulus))
	default:
		return math.Mod(round(q), t.modulus)
	}
}

// Component is the count of one unit in a decomposed Duration.
type Component struct {
	Unit  Unit
	Count float64
}

// Duration is a millisecond count broken down into unit tiers. It is
// immutable once built.
type Duration struct {
	ms         float64
	components []Component
	str        string
}

func decompose(ms float64, opts Options) Duration {
	round := math.Ceil
	if ms > 0 {
		round = math.Floor
	}

	eternity := math.IsInf(ms, 1)
	work := ms
	if eternity {
		work = 0
	}

	components := make([]Component, len(tiers))
	for i, t := range tiers {
		components[i].Unit = *t.unit
		if i == 0 {
			if eternity {
				components[i].Count = 1
			}
			continue
		}
		components[i].Count = t.count(work, round)
	}

	return Duration{
		ms:         ms,
		components: components,
		str:        render(components, opts),
	}
}

// Milliseconds returns the total the Duration was built from.
func (d Duration) Milliseconds() float64 {
	return d.ms
}

// String returns the rendered form, such as "2 days and 3 hours".
func (d Duration) String() string {
	return d.str
}

// Components returns every tier, longest first, including zero counts.
func (d Duration) Components() []Component {
	return slices.Clone(d.components)
}

// Count returns the count for the named tier, or zero if the name is not a
// decomposition tier.
func (d Duration) Count(name string) float64 {
	for _, c := range d.components {
		if c.Unit.Name == name {
			return c.Count
		}
	}
	return 0
}

// Eternity reports whether the Duration is infinite.
func (d Duration) Eternity() bool {
	return d.Count("eternity") == 1
}

// Std converts the Duration to a time.Duration. It reports false when the
// total is not finite or does not fit.
func (d Duration) Std() (time.Duration, bool) {
	ns := d.ms * float64(time.Millisecond)
	if math.IsNaN(ns) || ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, false
	}
	return time.Duration(ns), true
}
