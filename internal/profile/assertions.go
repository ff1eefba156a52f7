package profile

import (
	"slices"
	"strings"
)

// serviceRank orders proof services; higher ranks are listed first.
var serviceRank = map[string]int{
	"pgp":        110,
	"twitter":    100,
	"facebook":   90,
	"github":     80,
	"reddit":     75,
	"hackernews": 70,
	"https":      60,
	"http":       50,
	"dns":        40,
	"stellar":    30,
	"btc":        20,
	"zcash":      10,
}

// AssertionService returns the service part of a "service:value" key.
func AssertionService(key string) string {
	service, _, ok := strings.Cut(key, ":")
	if !ok {
		return ""
	}
	return service
}

// AssertionValue returns the value part of a "service:value" key, or the key
// itself when it has no service prefix.
func AssertionValue(key string) string {
	_, value, ok := strings.Cut(key, ":")
	if !ok {
		return key
	}
	return value
}

func assertionScore(key string) int {
	if r, ok := serviceRank[AssertionService(key)]; ok {
		return r
	}
	return 1
}

// CompareAssertionKeys is a total order over assertion keys: by service rank,
// then by the full key.
func CompareAssertionKeys(a, b string) int {
	if sa, sb := assertionScore(a), assertionScore(b); sa != sb {
		if sa > sb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// SortAssertionKeys returns a sorted copy of keys.
func SortAssertionKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	out := slices.Clone(keys)
	slices.SortFunc(out, CompareAssertionKeys)
	return out
}
