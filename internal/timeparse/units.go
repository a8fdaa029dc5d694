package timeparse

import (
	"math"
	"slices"
)

// Unit is a named duration granularity.
type Unit struct {
	Name         string
	Milliseconds float64  // length of one unit; +Inf for eternity
	Aliases      []string // first alias is the terse rendering suffix
}

// units is ordered from the longest unit to the shortest. Several entries
// (generation, season, moment, ...) are only parse targets and never appear
// in a decomposed Duration.
var units = []*Unit{
	{"eternity", math.Inf(1), []string{"eternity", "eternities"}},
	{"aeon", 3.1536e+19, []string{"ae", "æ", "aeons", "eon", "eons"}},
	{"millenium", 3.1536e+13, []string{"ml", "milleniums", "millennia"}},
	{"century", 3.1536e+12, []string{"l", "cent", "centurys", "centuries"}},
	{"generation", 1103760000000, []string{"generations"}},
	{"decade", 3.1536e+11, []string{"dc", "decades"}},
	{"megaminute", 60000000000, []string{"megaminutes"}},
	{"year", 3.1536e+10, []string{"y", "yr", "yrs", "years"}},
	{"season", 7884086400, []string{"quarter", "trimonth"}},
	{"month", 2628028800, []string{"mo", "mon", "months"}},
	{"lunar month", 2449440000, []string{"lunarmonth", "lunarmonths"}},
	{"fortnight", 1209600000, []string{"biweek", "fortnights", "biweeks"}},
	{"week", 604800000, []string{"w", "weeks"}},
	{"day", 86400000, []string{"d", "days"}},
	{"hour", 3600000, []string{"h", "hr", "hrs", "hours"}},
	{"moment", 90000, []string{"moments"}},
	{"minute", 60000, []string{"m", "mn", "min", "mins", "minutes"}},
	{"instant", 8000, []string{"in", "instants"}},
	{"second", 1000, []string{"s", "sec", "secs", "seconds"}},
	{"millisecond", 1, []string{"ms", "msec", "msecs", "milliseconds"}},
	{"microsecond", 0.001, []string{"µs", "micro", "micros", "microsec", "microsecs", "microseconds"}},
	{"nanosecond", 0.000001, []string{"ns", "nano", "nanos", "nanosec", "nenosecs", "nanoseconds"}},
}

// unitIndex maps every name and alias to its unit. The first unit in table
// order claims a spelling.
var unitIndex = buildIndex(units)

// candidates holds every name and alias in table order.
var candidates = buildCandidates(units)

func buildIndex(table []*Unit) map[string]*Unit {
	index := make(map[string]*Unit)
	for _, u := range table {
		for _, s := range u.spellings() {
			if _, ok := index[s]; !ok {
				index[s] = u
			}
		}
	}
	return index
}

func buildCandidates(table []*Unit) []string {
	var pool []string
	for _, u := range table {
		pool = append(pool, u.spellings()...)
	}
	return pool
}

func (u Unit) spellings() []string {
	return append([]string{u.Name}, u.Aliases...)
}

// Suffix returns the terse rendering suffix.
func (u Unit) Suffix() string {
	return u.Aliases[0]
}

// in converts ms to a (fractional) count of this unit. Sub-millisecond units
// multiply by the integral inverse so that 1.5ms yields exactly 1500µs.
func (u Unit) in(ms float64) float64 {
	if u.Milliseconds < 1 {
		return ms * math.Round(1/u.Milliseconds)
	}
	return ms / u.Milliseconds
}

// Units returns a copy of the unit table, longest unit first.
func Units() []Unit {
	out := make([]Unit, len(units))
	for i, u := range units {
		out[i] = Unit{
			Name:         u.Name,
			Milliseconds: u.Milliseconds,
			Aliases:      slices.Clone(u.Aliases),
		}
	}
	return out
}

// LookupUnit returns the unit whose name or alias is exactly token.
func LookupUnit(token string) (Unit, bool) {
	u, ok := unitIndex[token]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

func mustUnit(name string) *Unit {
	u, ok := unitIndex[name]
	if !ok {
		panic("timeparse: unknown unit " + name)
	}
	return u
}
