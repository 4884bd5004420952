// Package search implements the depth-first, backtracking crossword
// search: candidate generation from the pattern index, branch-history
// deduplication, visited-signature cycle avoidance, and a configurable
// attempts ceiling.
package search

import (
	"math/rand"

	"crossgen/internal/alphabet"
	"crossgen/internal/gridstate"
	"crossgen/internal/patternindex"
	"crossgen/internal/wordset"
)

// VisitedSet tracks grid signatures already explored in this run.
// The default implementation is an in-process map; internal/store
// offers a Redis-backed implementation for sharing visited state across
// concurrent search workers.
type VisitedSet interface {
	Seen(signature string) bool
	Mark(signature string)
}

type memoryVisitedSet map[string]bool

func (m memoryVisitedSet) Seen(signature string) bool { return m[signature] }
func (m memoryVisitedSet) Mark(signature string)      { m[signature] = true }

// NewMemoryVisitedSet returns a VisitedSet backed by a process-local
// map.
func NewMemoryVisitedSet() VisitedSet { return make(memoryVisitedSet) }

// Searcher runs one DFS crossword search against a fixed pattern index
// and dictionary.
type Searcher struct {
	idx     *patternindex.Index
	words   *wordset.Set
	cfg     alphabet.Config
	sink    gridstate.Sink
	rng     *rand.Rand
	visited VisitedSet

	attempts int
}

// New returns a Searcher. sink and visited may be nil: a nil sink
// disables near-finished-grid emission, a nil visited set defaults to a
// fresh in-process map.
func New(idx *patternindex.Index, words *wordset.Set, cfg alphabet.Config, sink gridstate.Sink, seed int64, visited VisitedSet) *Searcher {
	if visited == nil {
		visited = NewMemoryVisitedSet()
	}
	return &Searcher{
		idx:     idx,
		words:   words,
		cfg:     cfg,
		sink:    sink,
		rng:     rand.New(rand.NewSource(seed)),
		visited: visited,
	}
}

// Attempts returns the number of DFS nodes visited so far.
func (s *Searcher) Attempts() int { return s.attempts }

// Run searches for a complete grid, starting from an empty board.
// Returns ErrAttemptsExhausted if the ceiling is hit, or ErrNoSolution
// if every reachable branch dead-ends first.
func (s *Searcher) Run() (*gridstate.Grid, error) {
	g := gridstate.New(s.idx)
	g.SetSink(s.sink, s.words)
	result, err := s.dfs(g, nil)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNoSolution
	}
	return result, nil
}

func (s *Searcher) newGridFromHistory(history []Candidate) (*gridstate.Grid, bool) {
	g := gridstate.New(s.idx)
	g.SetSink(s.sink, s.words)
	for _, c := range history {
		if err := g.Place(c.Word, c.Row, c.Col, c.Dir); err != nil {
			return nil, false
		}
	}
	return g, true
}

func (s *Searcher) dfs(g *gridstate.Grid, history []Candidate) (*gridstate.Grid, error) {
	s.attempts++
	if s.attempts > s.cfg.AttemptsCeiling {
		return nil, ErrAttemptsExhausted
	}

	signature := g.Signature()
	if s.visited.Seen(signature) {
		return nil, nil
	}

	if g.IsComplete() {
		return g, nil
	}

	candidates := generateCandidates(g, s.idx)
	candidates = dropTried(candidates, history)
	if len(candidates) == 0 {
		s.visited.Mark(signature)
		return nil, nil
	}
	candidates = bucketByLength(candidates, s.cfg.N)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, c := range candidates {
		newGrid, ok := s.newGridFromHistory(history)
		if !ok {
			continue
		}
		if err := newGrid.Place(c.Word, c.Row, c.Col, c.Dir); err != nil {
			continue
		}
		newHistory := append(append([]Candidate(nil), history...), c)
		result, err := s.dfs(newGrid, newHistory)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	s.visited.Mark(signature)
	return nil, nil
}

func dropTried(candidates []Candidate, history []Candidate) []Candidate {
	if len(history) == 0 {
		return candidates
	}
	tried := make(map[Candidate]bool, len(history))
	for _, h := range history {
		tried[h] = true
	}
	out := candidates[:0]
	for _, c := range candidates {
		if !tried[c] {
			out = append(out, c)
		}
	}
	return out
}

// bucketByLength prioritizes full grid-width words: if any candidate
// has length N, only length-N candidates are returned, otherwise every
// shorter candidate is returned.
func bucketByLength(candidates []Candidate, n int) []Candidate {
	var full []Candidate
	for _, c := range candidates {
		if len([]rune(c.Word)) == n {
			full = append(full, c)
		}
	}
	if len(full) > 0 {
		return full
	}
	return candidates
}
