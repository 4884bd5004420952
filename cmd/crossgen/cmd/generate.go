package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crossgen/internal/alphabet"
	"crossgen/internal/gridstate"
	"crossgen/internal/patternindex"
	"crossgen/internal/search"
	"crossgen/internal/sink"
	"crossgen/internal/store"
	"crossgen/internal/wordset"
)

var (
	genDict        string
	genSeed        int64
	genMaxAttempts int
	genSinkDir     string
	genPostgresURL string
	genRedisURL    string
	genCachePath   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single filled grid from a dictionary",
	Long: `Generate loads a dictionary, builds the pattern index, and runs the
depth-first search to fill the grid.

Examples:
  # Generate from a dictionary with the default 5x5 / min-4 shape
  crossgen generate --dict words.txt

  # Reproducible run with a fixed seed and a lower attempts ceiling
  crossgen generate --dict words.txt --seed 42 --max-attempts 5000`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genDict, "dict", "", "path to the dictionary file (required)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "PRNG seed for candidate shuffling")
	generateCmd.Flags().IntVar(&genMaxAttempts, "max-attempts", 50000, "DFS attempts ceiling")
	generateCmd.Flags().StringVar(&genSinkDir, "sink-dir", "solvables", "directory for solvable-grid artifacts")
	generateCmd.Flags().StringVar(&genPostgresURL, "postgres-url", "", "optional Postgres URL to persist emitted grids")
	generateCmd.Flags().StringVar(&genRedisURL, "redis-url", "", "optional Redis URL for visited-signature sharing")
	generateCmd.Flags().StringVar(&genCachePath, "cache-path", "pattern_index_cache.sqlite3", "sqlite path for the pattern-index cache (empty disables caching)")

	generateCmd.MarkFlagRequired("dict")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := alphabet.Config{
		Letters:         alphabet.Default,
		N:               5,
		M:               4,
		AttemptsCeiling: genMaxAttempts,
	}

	if verbosity > 0 {
		fmt.Printf("Loading dictionary from: %s\n", genDict)
	}

	words, err := wordset.Load(genDict, cfg)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	if verbosity > 0 {
		fmt.Printf("Loaded %d placeable, %d checkable words\n", len(words.WordsPlaceable), len(words.WordsCheckable))
	}

	var cache *patternindex.Cache
	if genCachePath != "" {
		c, db, err := patternindex.OpenCache(genCachePath)
		if err != nil {
			return fmt.Errorf("failed to open pattern index cache: %w", err)
		}
		defer db.Close()
		cache = c
	}

	start := time.Now()
	idx, cacheHit, err := loadOrBuildIndex(cache, words, cfg)
	if err != nil {
		return fmt.Errorf("failed to build pattern index: %w", err)
	}
	if verbosity > 0 {
		fmt.Printf("Built index in %s (cache hit: %t): %d liners, %d real intermediaries\n",
			time.Since(start), cacheHit, idx.LinerCount(), idx.RealIntermediaryCount())
	}

	var st *store.Store
	if genPostgresURL != "" || genRedisURL != "" {
		st, err = store.New(genPostgresURL, genRedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to store: %w", err)
		}
		defer st.Close()
		if err := st.InitSchema(); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	var sinks []gridstate.Sink
	if genSinkDir != "" {
		sinks = append(sinks, sink.NewFileSink(genSinkDir))
	}
	if st != nil && st.DB != nil {
		sinks = append(sinks, sink.NewPostgresSink(st))
	}
	if st != nil && st.Redis != nil {
		sinks = append(sinks, sink.NewRedisSink(st, "crossgen:progress"))
	}

	var visited search.VisitedSet
	if st != nil && st.Redis != nil {
		visited = store.NewRedisVisitedSet(st.Redis, "crossgen:visited")
	}

	searcher := search.New(idx, words, cfg, sink.NewMultiSink(sinks...), genSeed, visited)
	g, err := searcher.Run()
	if err != nil {
		if errors.Is(err, search.ErrAttemptsExhausted) {
			fmt.Printf("AttemptsExhausted after %d attempts\n", searcher.Attempts())
			return nil
		}
		if errors.Is(err, search.ErrNoSolution) {
			fmt.Printf("NoSolution after %d attempts\n", searcher.Attempts())
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Solved in %d attempt(s), signature %s\n", searcher.Attempts(), g.Signature())
	for r := 0; r < g.Size(); r++ {
		fmt.Println(g.RowState(r))
	}
	return nil
}

// loadOrBuildIndex returns the cached index for words/cfg if cache is
// non-nil and holds a hit, building (and caching) it otherwise. The
// bool result reports whether the returned index came from the cache.
func loadOrBuildIndex(cache *patternindex.Cache, words *wordset.Set, cfg alphabet.Config) (*patternindex.Index, bool, error) {
	if cache == nil {
		return patternindex.Build(words, cfg), false, nil
	}

	hash := patternindex.HashDictionary(words)
	idx, ok, err := cache.Get(hash, cfg)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return idx, true, nil
	}

	idx = patternindex.Build(words, cfg)
	if err := cache.Put(hash, idx); err != nil {
		return nil, false, err
	}
	return idx, false, nil
}
