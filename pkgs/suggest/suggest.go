// Package suggest offers "did you mean" hints for a missed symbol
// lookup, built on github.com/lithammer/fuzzysearch.
package suggest

import "github.com/lithammer/fuzzysearch/fuzzy"

// Best returns the closest match to miss among candidates, or "" if
// nothing is close enough to be worth suggesting. candidates may contain
// duplicates; order does not matter.
func Best(miss string, candidates []string) string {
	if miss == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(miss, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	// A large edit distance relative to the miss's own length means the
	// "closest" candidate still isn't a plausible typo; don't suggest.
	if best.Distance > len(miss) {
		return ""
	}
	return best.Target
}
