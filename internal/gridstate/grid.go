// Package gridstate holds the N×N board, its placement history, and
// the row/column liner validation the DFS search consults before and
// after every commit.
package gridstate

import (
	"fmt"
	"log"
	"math"
	"strings"

	"crossgen/internal/patternindex"
	"crossgen/internal/wordset"
)

// Unassigned is the sentinel rune for a grid cell that has not yet
// received a letter.
const Unassigned = '.'

// Direction is the axis a word is placed along.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Placement records one committed word.
type Placement struct {
	Word string
	Row  int
	Col  int
	Dir  Direction
}

// Positions returns the grid cells Placement occupies, in word order.
func (p Placement) Positions() [][2]int {
	letters := []rune(p.Word)
	out := make([][2]int, len(letters))
	for i := range letters {
		if p.Dir == Across {
			out[i] = [2]int{p.Row, p.Col + i}
		} else {
			out[i] = [2]int{p.Row + i, p.Col}
		}
	}
	return out
}

// Sink receives near-finished grids during search. Implementations live
// in internal/sink; Grid depends only on this interface so the board
// model stays free of file/database concerns.
type Sink interface {
	EmitSolvable(g *Grid) error
	EmitCloseCall(g *Grid) error
}

// Grid is an N×N board built against a fixed pattern index. It is not
// safe for concurrent use: a DFS search replays placements into fresh
// Grid values per candidate rather than sharing one across goroutines.
type Grid struct {
	idx  *patternindex.Index
	size int

	cells       [][]rune
	placements  []Placement
	wordsOnGrid map[string]bool
	filled      int

	words *wordset.Set
	sink  Sink
}

// New returns an empty Size×Size grid backed by idx.
func New(idx *patternindex.Index) *Grid {
	n := idx.Config().N
	cells := make([][]rune, n)
	for i := range cells {
		row := make([]rune, n)
		for j := range row {
			row[j] = Unassigned
		}
		cells[i] = row
	}
	return &Grid{
		idx:         idx,
		size:        n,
		cells:       cells,
		wordsOnGrid: make(map[string]bool),
	}
}

// SetSink attaches the sink that Place reports near-finished states to,
// along with the checkable-word set the decomposable-solvability probe
// needs to judge them. Passing a nil sink disables emission.
func (g *Grid) SetSink(sink Sink, words *wordset.Set) {
	g.sink = sink
	g.words = words
}

// Size returns the grid's side length.
func (g *Grid) Size() int { return g.size }

// FilledCells returns the number of cells holding a letter.
func (g *Grid) FilledCells() int { return g.filled }

// Placements returns the committed placements in insertion order. The
// returned slice must not be mutated.
func (g *Grid) Placements() []Placement { return g.placements }

// HasWord reports whether word is already committed to the grid.
func (g *Grid) HasWord(word string) bool { return g.wordsOnGrid[word] }

// RowState returns row r as a string of letters and Unassigned cells.
func (g *Grid) RowState(r int) string { return string(g.cells[r]) }

// ColState returns column c as a string of letters and Unassigned
// cells.
func (g *Grid) ColState(c int) string {
	col := make([]rune, g.size)
	for r := 0; r < g.size; r++ {
		col[r] = g.cells[r][c]
	}
	return string(col)
}

// IsComplete reports whether every cell holds a letter.
func (g *Grid) IsComplete() bool { return g.filled == g.size*g.size }

// Signature returns a canonical string of the whole grid, unassigned
// cells rendered as '-', suitable for visited-state memoization.
func (g *Grid) Signature() string {
	var b strings.Builder
	b.Grow(g.size * g.size)
	for _, row := range g.cells {
		for _, c := range row {
			if c == Unassigned {
				b.WriteRune('-')
			} else {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

// CanPlace reports whether word can be written at (row, col) in dir
// without running off the grid or conflicting with a letter already
// there. It does not run liner validation; Place does that.
func (g *Grid) CanPlace(word string, row, col int, dir Direction) bool {
	if g.wordsOnGrid[word] {
		return false
	}
	letters := []rune(word)
	if dir == Across {
		if col+len(letters) > g.size || row < 0 || row >= g.size || col < 0 {
			return false
		}
		for i, ch := range letters {
			existing := g.cells[row][col+i]
			if existing != Unassigned && existing != ch {
				return false
			}
		}
		return true
	}
	if row+len(letters) > g.size || col < 0 || col >= g.size || row < 0 {
		return false
	}
	for i, ch := range letters {
		existing := g.cells[row+i][col]
		if existing != Unassigned && existing != ch {
			return false
		}
	}
	return true
}

// Place commits word at (row, col) in dir. It validates letter
// conflicts, then the row/column liner completability of every cell
// the word touches, then re-validates every row and column and the
// wordful constraint on every filled cell. Any failure rolls the grid
// back to its pre-call state and returns a sentinel error.
func (g *Grid) Place(word string, row, col int, dir Direction) error {
	if g.wordsOnGrid[word] {
		return fmt.Errorf("%w: %q", ErrDuplicateWord, word)
	}
	if !g.CanPlace(word, row, col, dir) {
		letters := []rune(word)
		bound := col + len(letters)
		if dir == Down {
			bound = row + len(letters)
		}
		if bound > g.size {
			return fmt.Errorf("%w: %q at (%d,%d) %s", ErrOutOfBounds, word, row, col, dir)
		}
		return fmt.Errorf("%w: %q at (%d,%d) %s", ErrConflictLetter, word, row, col, dir)
	}

	backup := g.snapshot()

	letters := []rune(word)
	for i, ch := range letters {
		r, c := row, col
		if dir == Across {
			c += i
		} else {
			r += i
		}
		if !RowColumnLinerCompletable(g.withCell(r, c, ch).RowState(r), g.idx) ||
			!RowColumnLinerCompletable(g.withCell(r, c, ch).ColState(c), g.idx) {
			g.restore(backup)
			return fmt.Errorf("%w: %q at (%d,%d) %s", ErrValidationFailed, word, row, col, dir)
		}
	}

	for i, ch := range letters {
		r, c := row, col
		if dir == Across {
			c += i
		} else {
			r += i
		}
		if g.cells[r][c] == Unassigned {
			g.filled++
		}
		g.cells[r][c] = ch
	}
	g.placements = append(g.placements, Placement{Word: word, Row: row, Col: col, Dir: dir})
	g.wordsOnGrid[word] = true

	g.maybeEmit()

	if !g.validateFull() {
		g.restore(backup)
		return fmt.Errorf("%w: %q at (%d,%d) %s", ErrValidationFailed, word, row, col, dir)
	}
	return nil
}

// withCell returns a throwaway copy of the grid's (r,c) line states
// with ch written at (r,c), used only to probe RowColumnLinerCompletable
// without mutating g ahead of the full commit.
func (g *Grid) withCell(r, c int, ch rune) *Grid {
	clone := &Grid{idx: g.idx, size: g.size, cells: make([][]rune, g.size)}
	for i, row := range g.cells {
		clone.cells[i] = append([]rune(nil), row...)
	}
	clone.cells[r][c] = ch
	return clone
}

// validateFull re-checks every row and column against
// RowColumnLinerCompletable, then requires every filled cell's row and
// column to be able to reach a wordful liner.
func (g *Grid) validateFull() bool {
	for r := 0; r < g.size; r++ {
		if !RowColumnLinerCompletable(g.RowState(r), g.idx) {
			return false
		}
	}
	for c := 0; c < g.size; c++ {
		if !RowColumnLinerCompletable(g.ColState(c), g.idx) {
			return false
		}
	}
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r][c] == Unassigned {
				continue
			}
			if !WordfulLinerCompletable(g.RowState(r), g.idx) {
				return false
			}
			if !WordfulLinerCompletable(g.ColState(c), g.idx) {
				return false
			}
		}
	}
	return true
}

// maybeEmit reports the grid to the attached sink once it is down to
// ceil(N/2) or fewer unassigned cells: to EmitSolvable if it passes the
// decomposable-solvability probe, otherwise to EmitCloseCall if it is
// down to ceil(N/2)-1 or fewer unassigned cells. Emission errors are
// logged and swallowed — a sink failure never affects search.
func (g *Grid) maybeEmit() {
	if g.sink == nil {
		return
	}
	threshold := int(math.Ceil(float64(g.size) / 2))
	empty := g.size*g.size - g.filled
	if empty > threshold {
		return
	}
	if DecomposablySolvable(g, g.words, g.idx.Config()) {
		if err := g.sink.EmitSolvable(g); err != nil {
			log.Printf("gridstate: emitting solvable grid: %v", err)
		}
	} else if empty <= threshold-1 {
		if err := g.sink.EmitCloseCall(g); err != nil {
			log.Printf("gridstate: emitting close-call grid: %v", err)
		}
	}
}

// UnplaceLast removes the most recently placed word, clearing any of
// its cells that no remaining placement still occupies. It reports
// false if there is nothing to remove.
func (g *Grid) UnplaceLast() bool {
	if len(g.placements) == 0 {
		return false
	}
	last := g.placements[len(g.placements)-1]
	g.placements = g.placements[:len(g.placements)-1]
	delete(g.wordsOnGrid, last.Word)

	for _, pos := range last.Positions() {
		stillUsed := false
		for _, p := range g.placements {
			for _, other := range p.Positions() {
				if other == pos {
					stillUsed = true
					break
				}
			}
			if stillUsed {
				break
			}
		}
		if !stillUsed {
			r, c := pos[0], pos[1]
			if g.cells[r][c] != Unassigned {
				g.filled--
			}
			g.cells[r][c] = Unassigned
		}
	}
	return true
}

type gridBackup struct {
	cells       [][]rune
	placements  []Placement
	wordsOnGrid map[string]bool
	filled      int
}

func (g *Grid) snapshot() gridBackup {
	cells := make([][]rune, g.size)
	for i, row := range g.cells {
		cells[i] = append([]rune(nil), row...)
	}
	words := make(map[string]bool, len(g.wordsOnGrid))
	for w := range g.wordsOnGrid {
		words[w] = true
	}
	return gridBackup{
		cells:       cells,
		placements:  append([]Placement(nil), g.placements...),
		wordsOnGrid: words,
		filled:      g.filled,
	}
}

func (g *Grid) restore(b gridBackup) {
	g.cells = b.cells
	g.placements = b.placements
	g.wordsOnGrid = b.wordsOnGrid
	g.filled = b.filled
}

// LinerForWord returns the N-length liner pattern to validate word's
// placement against: the word itself when it already spans the full
// grid, otherwise the word padded with '@' at the back, at the front,
// or (for words of three or fewer letters with at least two cells of
// padding) split between both — the first of these that is a stored
// liner. Falls back to trailing padding if none of them is stored.
func LinerForWord(word string, idx *patternindex.Index) string {
	n := idx.Config().N
	letters := []rune(word)
	if len(letters) == n {
		return word
	}
	padding := n - len(letters)

	candidates := []string{
		word + strings.Repeat(string(patternindex.BlockRune), padding),
		strings.Repeat(string(patternindex.BlockRune), padding) + word,
	}
	if len(letters) <= 3 && padding >= 2 {
		mid := padding / 2
		candidates = append(candidates, strings.Repeat(string(patternindex.BlockRune), mid)+word+strings.Repeat(string(patternindex.BlockRune), padding-mid))
	}
	for _, cand := range candidates {
		if idx.IsLiner(cand) {
			return cand
		}
	}
	return candidates[0]
}
