package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// closestKey returns the candidate nearest to input, if any is close enough
// to be a plausible typo
func closestKey(input string, candidates []string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(input))
	if token == "" {
		return "", false
	}

	best := ""
	bestDist := -1
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	for _, cand := range sorted {
		compare := strings.ToLower(cand)
		if compare == token {
			continue
		}
		dist := levenshtein.ComputeDistance(token, compare)
		if strings.HasPrefix(compare, token) && len(token) >= 3 {
			dist = 1
		}
		if dist > levenshteinLimit(len(compare)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

// didYouMean formats a hint suffix, or "" when nothing is close
func didYouMean(input string, candidates []string) string {
	if match, ok := closestKey(input, candidates); ok {
		return fmt.Sprintf(" (did you mean %q?)", match)
	}
	return ""
}

// withHint appends a "did you mean" hint to unknown-key errors
func withHint(err error, candidates []string) error {
	var unknown *shared.UnknownKeyError
	if !errors.As(err, &unknown) {
		return err
	}
	if hint := didYouMean(unknown.Key, candidates); hint != "" {
		return fmt.Errorf("%w%s", err, hint)
	}
	return err
}

func moduleCandidates() []string {
	ids := processing.ModuleIDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func crewCandidates() []string {
	out := make([]string, 0, len(mission.Roster))
	for _, id := range mission.Roster {
		out = append(out, string(id))
	}
	return out
}

// materialCandidates lists catalog keys plus any extra keys held in stock or
// the waste pool
func materialCandidates(stocks []material.Stock, pool []material.PoolEntry) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(key material.Key) {
		if !seen[key.String()] {
			seen[key.String()] = true
			out = append(out, key.String())
		}
	}
	for _, key := range material.CatalogKeys() {
		add(key)
	}
	for _, s := range stocks {
		add(s.Key)
	}
	for _, e := range pool {
		add(e.Key)
	}
	return out
}
