package gridstate

import (
	"crossgen/internal/patternindex"
)

const quickEnumerationMax = 3
const wordfulEnumerationMax = 2

// RowColumnLinerCompletable reports whether s, a length-N line state of
// letters and Unassigned cells, can be extended to a stored liner by
// replacing each unassigned cell with '_' or '@'.
func RowColumnLinerCompletable(s string, idx *patternindex.Index) bool {
	positions := unassignedPositions(s)
	if len(positions) == 0 {
		return idx.IsLiner(s) || (idx.IsPlaceableWord(s) && len([]rune(s)) == idx.Config().N)
	}
	if len(positions) == len([]rune(s)) {
		return true
	}
	return anyCompletionSatisfies(s, positions, quickEnumerationMax, idx.IsLiner)
}

// WordfulLinerCompletable reports whether s can be extended to a
// stored liner with at least one intermediary mapping to a non-empty
// word set.
func WordfulLinerCompletable(s string, idx *patternindex.Index) bool {
	positions := unassignedPositions(s)
	if len(positions) == 0 {
		if idx.IsPlaceableWord(s) {
			return true
		}
		return isWordfulLiner(s, idx)
	}
	if len(positions) == len([]rune(s)) {
		return true
	}
	return anyCompletionSatisfies(s, positions, wordfulEnumerationMax, func(candidate string) bool {
		return isWordfulLiner(candidate, idx)
	})
}

func isWordfulLiner(liner string, idx *patternindex.Index) bool {
	return idx.IsWordfulLiner(liner)
}

func unassignedPositions(s string) []int {
	var out []int
	for i, r := range []rune(s) {
		if r == Unassigned {
			out = append(out, i)
		}
	}
	return out
}

// anyCompletionSatisfies tries the all-underscore and all-block
// completions of s first; if neither satisfies accept, and the number
// of unassigned positions is within threshold, it enumerates every
// remaining '_'/'@' assignment.
func anyCompletionSatisfies(s string, positions []int, threshold int, accept func(string) bool) bool {
	letters := []rune(s)

	fill := func(r rune) string {
		out := append([]rune(nil), letters...)
		for _, p := range positions {
			out[p] = r
		}
		return string(out)
	}

	if accept(fill(patternindex.UnderscoreRune)) {
		return true
	}
	if accept(fill(patternindex.BlockRune)) {
		return true
	}

	if len(positions) > threshold {
		return false
	}

	total := 1 << uint(len(positions))
	for mask := 0; mask < total; mask++ {
		out := append([]rune(nil), letters...)
		for i, p := range positions {
			if mask&(1<<uint(i)) != 0 {
				out[p] = patternindex.BlockRune
			} else {
				out[p] = patternindex.UnderscoreRune
			}
		}
		if accept(string(out)) {
			return true
		}
	}
	return false
}

// GenerateLinerPatterns enumerates the candidate liner patterns
// consistent with line state s, filtered to those stored in idx. Used
// by candidate-placement generation, which needs the actual stored
// liners rather than a yes/no answer.
func GenerateLinerPatterns(s string, idx *patternindex.Index) []string {
	return generateLinerPatterns(s, idx)
}

func generateLinerPatterns(s string, idx *patternindex.Index) []string {
	positions := unassignedPositions(s)
	if len(positions) == 0 {
		if idx.IsLiner(s) {
			return []string{s}
		}
		return nil
	}

	letters := []rune(s)
	var patterns []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	fillWith := func(assign func(i int) rune) string {
		out := append([]rune(nil), letters...)
		for i, p := range positions {
			out[p] = assign(i)
		}
		return string(out)
	}

	add(fillWith(func(int) rune { return patternindex.UnderscoreRune }))
	add(fillWith(func(int) rune { return patternindex.BlockRune }))

	if len(positions) <= quickEnumerationMax {
		total := 1 << uint(len(positions))
		for mask := 0; mask < total; mask++ {
			add(fillWith(func(i int) rune {
				if mask&(1<<uint(i)) != 0 {
					return patternindex.BlockRune
				}
				return patternindex.UnderscoreRune
			}))
		}
	} else if len(positions) >= 2 {
		mid := len(positions) / 2
		add(fillWith(func(i int) rune {
			if i < mid {
				return patternindex.UnderscoreRune
			}
			return patternindex.BlockRune
		}))
		add(fillWith(func(i int) rune {
			if i < mid {
				return patternindex.BlockRune
			}
			return patternindex.UnderscoreRune
		}))
	}

	var out []string
	for _, p := range patterns {
		if idx.IsLiner(p) {
			out = append(out, p)
		}
	}
	return out
}
