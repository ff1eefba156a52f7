package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest ranks candidates against query for the header search box. Prefix
// matches come first, then substring matches, then close misspellings by edit
// distance. At most limit results are returned; limit <= 0 means no limit.
func Suggest(query string, candidates []string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	type scored struct {
		name  string
		tier  int
		score int
	}
	// short queries get no typo tolerance
	maxDist := (len(q) + 1) / 3
	var hits []scored
	for _, c := range candidates {
		lc := strings.ToLower(c)
		switch {
		case strings.HasPrefix(lc, q):
			hits = append(hits, scored{c, 0, len(lc) - len(q)})
		case strings.Contains(lc, q):
			hits = append(hits, scored{c, 1, strings.Index(lc, q)})
		default:
			// compare against the same-length head so long names are not penalised
			head := lc
			if len(head) > len(q) {
				head = head[:len(q)]
			}
			if d := levenshtein.ComputeDistance(q, head); maxDist > 0 && d <= maxDist {
				hits = append(hits, scored{c, 2, d})
			}
		}
	}
	slices.SortFunc(hits, func(a, b scored) int {
		return cmp.Or(
			cmp.Compare(a.tier, b.tier),
			cmp.Compare(a.score, b.score),
			strings.Compare(a.name, b.name),
		)
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}
