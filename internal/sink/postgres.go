package sink

import (
	"fmt"
	"sort"
	"strings"

	"crossgen/internal/gridstate"
	"crossgen/internal/store"
	"github.com/lib/pq"
)

// PostgresSink persists each emitted grid as a row in generated_grids,
// upserting by signature so a re-emitted close-call that later becomes
// solvable replaces its earlier row.
type PostgresSink struct {
	st *store.Store
}

// NewPostgresSink returns a PostgresSink backed by st. st.DB must be
// configured and st.InitSchema must have already run.
func NewPostgresSink(st *store.Store) *PostgresSink {
	return &PostgresSink{st: st}
}

func (s *PostgresSink) EmitSolvable(g *gridstate.Grid) error  { return s.write(g, true) }
func (s *PostgresSink) EmitCloseCall(g *gridstate.Grid) error { return s.write(g, false) }

func (s *PostgresSink) write(g *gridstate.Grid, solvable bool) error {
	n := g.Size()
	words := make([]string, 0, len(g.Placements()))
	for _, p := range g.Placements() {
		words = append(words, p.Word)
	}
	sort.Strings(words)

	var rendered strings.Builder
	for r := 0; r < n; r++ {
		rendered.WriteString(g.RowState(r))
		rendered.WriteByte('\n')
	}

	_, err := s.st.DB.Exec(`
		INSERT INTO generated_grids (signature, grid_size, empty_cells, solvable, placed_words, rendered_grid)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (signature) DO UPDATE SET
			solvable = excluded.solvable,
			placed_words = excluded.placed_words,
			rendered_grid = excluded.rendered_grid
	`, g.Signature(), n, n*n-g.FilledCells(), solvable, pq.Array(words), rendered.String())
	if err != nil {
		return fmt.Errorf("sink: writing generated_grids row: %w", err)
	}
	return nil
}
