package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"crossgen/internal/alphabet"
	"crossgen/internal/patternindex"
	"crossgen/internal/wordset"
)

var validateDict string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build the pattern index and report invariant-check statistics",
	Long: `Validate loads a dictionary, builds the pattern index, and reports
placeable, checkable and full-length word counts, real-intermediary
count, and liner count without
running the search — a read-only diagnostic over the index the
generate command would otherwise build silently.

Examples:
  crossgen validate --dict words.txt`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateDict, "dict", "", "path to the dictionary file (required)")
	validateCmd.MarkFlagRequired("dict")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := alphabet.Config{
		Letters:         alphabet.Default,
		N:               5,
		M:               4,
		AttemptsCeiling: 0,
	}

	words, err := wordset.Load(validateDict, cfg)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	idx := patternindex.Build(words, cfg)

	fullLength := 0
	for word := range words.WordsPlaceable {
		if len([]rune(word)) == cfg.N {
			fullLength++
		}
	}

	fmt.Printf("\nPattern Index Statistics\n")
	fmt.Printf("========================\n")
	fmt.Printf("Dictionary: %s\n\n", validateDict)
	fmt.Printf("Placeable words:          %d\n", len(words.WordsPlaceable))
	fmt.Printf("Checkable words:          %d\n", len(words.WordsCheckable))
	fmt.Printf("Full-length (N=%d) words: %d\n", cfg.N, fullLength)
	fmt.Printf("Real intermediaries:      %d\n", idx.RealIntermediaryCount())
	fmt.Printf("Liners:                   %d\n", idx.LinerCount())

	if idx.LinerCount() == 0 {
		return fmt.Errorf("dictionary produced zero liners; grid of size %d is unfillable", cfg.N)
	}

	return nil
}
