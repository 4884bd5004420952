package gridstate

import (
	"strings"

	"crossgen/internal/alphabet"
	"crossgen/internal/wordset"
)

// DecomposablySolvable reports whether the grid is a looser-than-search
// candidate for the solvable/close-call sinks: splitting every row and
// every column by Unassigned yields, in each segment, either the empty
// string or a checkable word of length at least cfg.M. It does not
// require any line to be a stored liner.
func DecomposablySolvable(g *Grid, ws *wordset.Set, cfg alphabet.Config) bool {
	for r := 0; r < g.size; r++ {
		if !lineDecomposablySolvable(g.RowState(r), ws, cfg) {
			return false
		}
	}
	for c := 0; c < g.size; c++ {
		if !lineDecomposablySolvable(g.ColState(c), ws, cfg) {
			return false
		}
	}
	return true
}

func lineDecomposablySolvable(state string, ws *wordset.Set, cfg alphabet.Config) bool {
	for _, segment := range strings.Split(state, string(Unassigned)) {
		if segment == "" {
			continue
		}
		if len([]rune(segment)) < cfg.M {
			return false
		}
		if !ws.WordsCheckable[segment] {
			return false
		}
	}
	return true
}
