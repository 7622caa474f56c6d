// Package recommendation scores catalog candidates against a preference profile,
// ranks them and derives contrastive alternatives. Everything here is pure and
// deterministic: identical inputs always produce identical output.
package recommendation

import "sort"

const (
	TopSize = 3

	FresherReason = "Option plus fraîche que tes choix principaux."
	DarkerReason  = "Option plus profonde et présente."

	// alternatives keep this many of their own reasons after the lead sentence
	alternativeKeptReasons = 2
)

// DarkVibes are the signature vibes that qualify a candidate as a darker alternative.
var DarkVibes = []string{"Noir Velours", "Rouge Épicé"}

// Result is the outcome of one recommendation pass.
type Result struct {
	Top          []ScoredCandidate `json:"top"`
	Alternatives []ScoredCandidate `json:"alternatives"`
}

// Matched reports whether at least one candidate survived scoring.
func (r Result) Matched() bool {
	return len(r.Top) > 0
}

// All returns the top picks followed by the alternatives.
func (r Result) All() []ScoredCandidate {
	all := make([]ScoredCandidate, 0, len(r.Top)+len(r.Alternatives))
	all = append(all, r.Top...)
	return append(all, r.Alternatives...)
}

// Recommend scores every candidate, drops vetoed ones and returns the top picks
// plus up to two alternatives (fresher, then darker) taken from the remainder.
// An empty Top is the normal "no match" outcome.
func Recommend(candidates []ProductCandidate, p UserProfile) Result {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		s, ok := Score(c, p)
		if !ok {
			continue
		}
		scored = append(scored, ScoredCandidate{
			ProductCandidate: c,
			Score:            s,
			Reasons:          Reasons(c, p),
		})
	}

	// stable: equal scores keep catalog order
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	result := Result{
		Top:          []ScoredCandidate{},
		Alternatives: []ScoredCandidate{},
	}
	if len(scored) <= TopSize {
		result.Top = scored
		return result
	}
	result.Top = scored[:TopSize]
	remainder := scored[TopSize:]

	if fresher, ok := pickFresher(remainder, p); ok {
		result.Alternatives = append(result.Alternatives, withLeadReason(fresher, FresherReason))
	}
	if darker, ok := pickDarker(remainder); ok {
		result.Alternatives = append(result.Alternatives, withLeadReason(darker, DarkerReason))
	}
	return result
}

func pickFresher(remainder []ScoredCandidate, p UserProfile) (ScoredCandidate, bool) {
	pool := make([]ScoredCandidate, 0, len(remainder))
	for _, c := range remainder {
		if c.Intensity < p.Intensity || c.Sillage < p.Sillage {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return ScoredCandidate{}, false
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Intensity+pool[i].Sillage < pool[j].Intensity+pool[j].Sillage
	})
	return pool[0], true
}

func pickDarker(remainder []ScoredCandidate) (ScoredCandidate, bool) {
	pool := make([]ScoredCandidate, 0, len(remainder))
	for _, c := range remainder {
		if c.hasAnyVibe(DarkVibes) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return ScoredCandidate{}, false
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Intensity > pool[j].Intensity })
	return pool[0], true
}

// withLeadReason copies the candidate so the ranked entry keeps its own reasons.
func withLeadReason(c ScoredCandidate, lead string) ScoredCandidate {
	kept := c.Reasons
	if len(kept) > alternativeKeptReasons {
		kept = kept[:alternativeKeptReasons]
	}
	reasons := make([]string, 0, len(kept)+1)
	reasons = append(reasons, lead)
	c.Reasons = append(reasons, kept...)
	return c
}
