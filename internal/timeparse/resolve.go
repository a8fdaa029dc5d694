package timeparse

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// matchTier orders the ways a candidate can approximate a token. Lower is
// better.
type matchTier int

const (
	tierPrefix matchTier = iota + 1
	tierContains
	tierSubsequence
	tierTypo
)

type rankedCandidate struct {
	value    string
	tier     matchTier
	distance int
	position int
}

// resolve finds the unit for token. An exact name or alias always wins. In
// non-strict mode an unknown token falls back to the best approximate
// spelling.
func resolve(token string, strict bool) (*Unit, error) {
	if u, ok := unitIndex[token]; ok {
		return u, nil
	}
	if strict {
		return nil, fmt.Errorf("%q: %w", token, ErrUnknownUnit)
	}

	ranked := rankCandidates(token, candidates)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("nothing resembles %q: %w", token, ErrUnknownUnit)
	}
	return unitIndex[ranked[0]], nil
}

// rankCandidates returns the candidates that approximate token, best first.
//
// Candidates are ordered by tier (prefix, contains, in-order subsequence,
// typo), then by Levenshtein distance to token, then by length, and finally by
// their position in pool. The typo tier only admits candidates whose distance
// is less than half the token length.
func rankCandidates(token string, pool []string) []string {
	if token == "" {
		return nil
	}
	tokenLen := utf8.RuneCountInString(token)

	var ranked []rankedCandidate
	for i, c := range pool {
		distance := fuzzy.LevenshteinDistance(token, c)

		var tier matchTier
		switch {
		case strings.HasPrefix(c, token):
			tier = tierPrefix
		case strings.Contains(c, token):
			tier = tierContains
		case fuzzy.Match(token, c):
			tier = tierSubsequence
		case 2*distance < tokenLen:
			tier = tierTypo
		default:
			continue
		}

		ranked = append(ranked, rankedCandidate{
			value:    c,
			tier:     tier,
			distance: distance,
			position: i,
		})
	}

	slices.SortFunc(ranked, func(a, b rankedCandidate) int {
		return cmp.Or(
			cmp.Compare(a.tier, b.tier),
			cmp.Compare(a.distance, b.distance),
			cmp.Compare(utf8.RuneCountInString(a.value), utf8.RuneCountInString(b.value)),
			cmp.Compare(a.position, b.position),
		)
	})

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.value
	}
	return out
}
