// ABOUTME: Thin wrapper over sahilm/fuzzy for fuzzy string matching
// ABOUTME: Ranks matches and filters file paths by their base name

package fuzzy

import (
	"path/filepath"
	"slices"

	"github.com/sahilm/fuzzy"
)

// Match represents a single fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	return convert(fuzzy.Find(pattern, items))
}

// FindFrom performs fuzzy matching using a custom string source.
func FindFrom(pattern string, data fuzzy.Source) []Match {
	return convert(fuzzy.FindFrom(pattern, data))
}

func convert(results fuzzy.Matches) []Match {
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

// baseNames exposes the base name of each path to the matcher so directory
// components do not produce spurious matches.
type baseNames []string

func (b baseNames) String(i int) string { return filepath.Base(b[i]) }
func (b baseNames) Len() int            { return len(b) }

// Filter returns the paths whose base name fuzzy-matches pattern, keeping
// their original order. An empty pattern returns paths unchanged.
func Filter(pattern string, paths []string) []string {
	if pattern == "" {
		return paths
	}
	matches := FindFrom(pattern, baseNames(paths))
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)

	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = paths[j]
	}
	return out
}
