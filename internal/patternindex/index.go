// Package patternindex builds the intermediary/liner pattern index
// that the grid validator and DFS search query at every placement.
package patternindex

import (
	"crossgen/internal/alphabet"
	"crossgen/internal/wordset"
)

// Index is the immutable structure built once from a dictionary and
// shared read-only by every search.Run call.
type Index struct {
	cfg alphabet.Config

	// realIntermediaries is the set of stored intermediaries: every
	// non-trivial mask produced by at least one placeable word, plus
	// the length-L wildcard for each L in [M,N].
	realIntermediaries map[string]bool

	// intermediaryToWords maps an intermediary to the set of
	// placeable words it matches.
	intermediaryToWords map[string]map[string]bool

	// liners is the set of stored N-length liners.
	liners map[string]bool

	// linerToIntermediaries maps a liner to the set of intermediaries
	// used in its construction. Deliberately a set, not a sequence:
	// reconstructing the exact arrangement is never needed, only which
	// intermediaries participate.
	linerToIntermediaries map[string]map[string]bool

	// words is WordsPlaceable, retained for the degenerate
	// word-vs-intermediary checks the validator runs on each liner.
	words map[string]bool
}

// Build derives the full pattern index from ws: every intermediary
// reachable from a placeable word, every liner those intermediaries can
// compose into, and the word sets each intermediary matches.
func Build(ws *wordset.Set, cfg alphabet.Config) *Index {
	idx := &Index{
		cfg:                   cfg,
		realIntermediaries:    make(map[string]bool),
		intermediaryToWords:   make(map[string]map[string]bool),
		liners:                make(map[string]bool),
		linerToIntermediaries: make(map[string]map[string]bool),
		words:                 make(map[string]bool, len(ws.WordsPlaceable)),
	}

	for w := range ws.WordsPlaceable {
		idx.words[w] = true
	}

	// Union non-trivial masks across all placeable words.
	for w := range ws.WordsPlaceable {
		for p := range intermediariesForWord([]rune(w)) {
			idx.realIntermediaries[p] = true
		}
	}
	// Add the wildcard intermediary for every length in [M,N].
	for l := cfg.M; l <= cfg.N; l++ {
		idx.realIntermediaries[wildcard(l)] = true
	}

	// Map each placeable word to the real intermediaries it produces,
	// plus the length-matching wildcard.
	for w := range ws.WordsPlaceable {
		wr := []rune(w)
		for p := range intermediariesForWord(wr) {
			if idx.realIntermediaries[p] {
				idx.addWord(p, w)
			}
		}
		idx.addWord(wildcard(len(wr)), w)
	}

	lb := generateLiners(idx.realIntermediaries, cfg.N, cfg.M)
	idx.liners = lb.liners
	idx.linerToIntermediaries = lb.linerToIntermediaries

	return idx
}

func (idx *Index) addWord(intermediary, word string) {
	set := idx.intermediaryToWords[intermediary]
	if set == nil {
		set = make(map[string]bool)
		idx.intermediaryToWords[intermediary] = set
	}
	set[word] = true
}

// IsLiner reports whether s is a stored liner.
func (idx *Index) IsLiner(s string) bool { return idx.liners[s] }

// IsPlaceableWord reports whether s is a stored placeable word.
func (idx *Index) IsPlaceableWord(s string) bool { return idx.words[s] }

// IsRealIntermediary reports whether p is a stored intermediary.
func (idx *Index) IsRealIntermediary(p string) bool { return idx.realIntermediaries[p] }

// WordsForIntermediary returns the words matching intermediary p, or
// nil if p is not stored.
func (idx *Index) WordsForIntermediary(p string) map[string]bool { return idx.intermediaryToWords[p] }

// IntermediariesForLiner returns the intermediaries used in liner l's
// construction, or nil if l is not stored.
func (idx *Index) IntermediariesForLiner(l string) map[string]bool {
	return idx.linerToIntermediaries[l]
}

// IsWordfulLiner reports whether l is a stored liner with at least one
// intermediary mapping to a non-empty word set.
func (idx *Index) IsWordfulLiner(l string) bool {
	for p := range idx.linerToIntermediaries[l] {
		if len(idx.intermediaryToWords[p]) > 0 {
			return true
		}
	}
	return false
}

// LinerCount returns the number of stored liners, for diagnostics.
func (idx *Index) LinerCount() int { return len(idx.liners) }

// RealIntermediaryCount returns the number of stored intermediaries.
func (idx *Index) RealIntermediaryCount() int { return len(idx.realIntermediaries) }

// Config returns the alphabet/grid configuration the index was built
// with.
func (idx *Index) Config() alphabet.Config { return idx.cfg }
