package search

import (
	"crossgen/internal/gridstate"
	"crossgen/internal/patternindex"
)

// Candidate is one untried (word, position, direction) the searcher
// may attempt next.
type Candidate struct {
	Word string
	Row  int
	Col  int
	Dir  gridstate.Direction
}

// generateCandidates inspects every row and column with at least one
// unassigned cell and proposes every (word, position, direction) that
// the stored liners and their matching words make available.
func generateCandidates(g *gridstate.Grid, idx *patternindex.Index) []Candidate {
	var out []Candidate
	n := g.Size()

	for r := 0; r < n; r++ {
		state := g.RowState(r)
		out = append(out, lineCandidates(state, idx, func(word string, start int) Candidate {
			return Candidate{Word: word, Row: r, Col: start, Dir: gridstate.Across}
		})...)
	}
	for c := 0; c < n; c++ {
		state := g.ColState(c)
		out = append(out, lineCandidates(state, idx, func(word string, start int) Candidate {
			return Candidate{Word: word, Row: start, Col: c, Dir: gridstate.Down}
		})...)
	}

	seen := make(map[Candidate]bool, len(out))
	deduped := out[:0]
	for _, c := range out {
		if g.HasWord(c.Word) {
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		deduped = append(deduped, c)
	}
	return deduped
}

func lineCandidates(state string, idx *patternindex.Index, mk func(word string, start int) Candidate) []Candidate {
	var out []Candidate
	if !containsUnassigned(state) {
		return out
	}
	for _, liner := range gridstate.GenerateLinerPatterns(state, idx) {
		for intermediary := range idx.IntermediariesForLiner(liner) {
			for word := range idx.WordsForIntermediary(intermediary) {
				for _, start := range wordPositionsInLiner(word, liner, state) {
					out = append(out, mk(word, start))
				}
			}
		}
	}
	return out
}

func containsUnassigned(s string) bool {
	for _, r := range s {
		if r == gridstate.Unassigned {
			return true
		}
	}
	return false
}

// wordPositionsInLiner returns every start offset where word fits
// inside liner (liner chars must be '_' or equal to the word's letter;
// '@' blocks the fit) and simultaneously fits the grid's current line
// state (unassigned or equal).
func wordPositionsInLiner(word, liner, lineState string) []int {
	wr := []rune(word)
	lr := []rune(liner)
	sr := []rune(lineState)
	n := len(lr)
	wl := len(wr)

	var starts []int
	for start := 0; start+wl <= n; start++ {
		fits := true
		for i, ch := range wr {
			linerCh := lr[start+i]
			if linerCh == patternindex.BlockRune {
				fits = false
				break
			}
			if linerCh != patternindex.UnderscoreRune && linerCh != ch {
				fits = false
				break
			}
			stateCh := sr[start+i]
			if stateCh != gridstate.Unassigned && stateCh != ch {
				fits = false
				break
			}
		}
		if fits {
			starts = append(starts, start)
		}
	}
	return starts
}
