// Package match resolves recognized text candidates to catalog items.
//
// Matching is a fixed-precedence ladder: exact key lookup, then substring
// containment, then word-set overlap. Each tier returns its first
// qualifying hit rather than scanning for a best match - recognition runs
// on every pointer movement and latency matters more than optimality.
package match

import (
	"strings"

	"eft-overlay/internal/catalog"
)

// Thresholds holds the tunable acceptance parameters of the ladder. The
// defaults are empirically chosen; they are kept as parameters rather
// than constants so they can be tuned without touching the algorithm.
type Thresholds struct {
	// SubstringMinLen is the minimum candidate and key length for the
	// substring tier.
	SubstringMinLen int
	// SubstringRatio is the length-overlap ratio a containment hit must
	// exceed (strictly) to be accepted.
	SubstringRatio float64
	// FuzzyMinWords is the minimum word count for both sides of the
	// word-overlap tier.
	FuzzyMinWords int
	// FuzzyRatio is the fraction of catalog-key words that must be
	// covered (strictly exceeded) by the intersection.
	FuzzyRatio float64
}

// DefaultThresholds returns the tuning the matcher ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SubstringMinLen: 4,
		SubstringRatio:  0.4,
		FuzzyMinWords:   2,
		FuzzyRatio:      0.5,
	}
}

// Matcher resolves candidate sets against catalog snapshots. It is
// stateless apart from its thresholds and safe for concurrent use.
type Matcher struct {
	t Thresholds
}

// New creates a matcher with the given thresholds.
func New(t Thresholds) *Matcher {
	return &Matcher{t: t}
}

// Match returns the first item any tier accepts, or false if none does.
// Tiers are evaluated in strict order; a later tier runs only when every
// earlier one came up empty across all candidates.
func (m *Matcher) Match(snap *catalog.Snapshot, candidates []string) (catalog.Item, bool) {
	if it, ok := m.exact(snap, candidates); ok {
		return it, true
	}
	if it, ok := m.substring(snap, candidates); ok {
		return it, true
	}
	return m.fuzzy(snap, candidates)
}

// exact looks each candidate up verbatim in the alternate-key index.
func (m *Matcher) exact(snap *catalog.Snapshot, candidates []string) (catalog.Item, bool) {
	for _, cand := range candidates {
		if it, ok := snap.LookupByLine(cand); ok {
			return it, true
		}
	}
	return catalog.Item{}, false
}

// substring tests containment in either direction between candidate and
// key, accepting when the shorter covers enough of the longer.
func (m *Matcher) substring(snap *catalog.Snapshot, candidates []string) (catalog.Item, bool) {
	var (
		found catalog.Item
		ok    bool
	)
	for _, cand := range candidates {
		cand := strings.ToLower(cand)
		if len(cand) < m.t.SubstringMinLen {
			continue
		}

		snap.ForEachLine(func(key, name string) bool {
			if len(key) < m.t.SubstringMinLen {
				return true
			}
			if !strings.Contains(cand, key) && !strings.Contains(key, cand) {
				return true
			}
			ratio := float64(min(len(cand), len(key))) / float64(max(len(cand), len(key)))
			if ratio > m.t.SubstringRatio {
				found, ok = snap.LookupByName(name)
				return !ok
			}
			return true
		})
		if ok {
			return found, true
		}
	}
	return catalog.Item{}, false
}

// fuzzy splits both sides into word sets and accepts on sufficient
// intersection relative to the catalog key's word count.
func (m *Matcher) fuzzy(snap *catalog.Snapshot, candidates []string) (catalog.Item, bool) {
	var (
		found catalog.Item
		ok    bool
	)
	for _, cand := range candidates {
		candWords := wordSet(strings.ToLower(cand))
		if len(candWords) < m.t.FuzzyMinWords {
			continue
		}

		snap.ForEachLine(func(key, name string) bool {
			keyWords := wordSet(key)
			if len(keyWords) < m.t.FuzzyMinWords {
				return true
			}

			common := 0
			for w := range candWords {
				if _, shared := keyWords[w]; shared {
					common++
				}
			}
			if common >= m.t.FuzzyMinWords &&
				float64(common)/float64(len(keyWords)) > m.t.FuzzyRatio {
				found, ok = snap.LookupByName(name)
				return !ok
			}
			return true
		})
		if ok {
			return found, true
		}
	}
	return catalog.Item{}, false
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
