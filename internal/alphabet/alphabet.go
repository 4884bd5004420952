// Package alphabet defines the fixed letter set and grid-shape
// constants shared by the pattern index, grid state, and search
// packages.
package alphabet

// Default is the 29-symbol Turkish alphabet the reference generator
// was built against. It is the default Config.Letters; callers that
// target a different fixed alphabet may override it.
const Default = "abcçdefgğhıijklmnoöprsştuüvyz"

// Config bundles the constants that the pattern index and search are
// built against. It is immutable once constructed.
type Config struct {
	// Letters is the fixed alphabet A.
	Letters string

	// N is the grid side, equal to the maximum placeable word length.
	N int

	// M is the minimum placeable word length.
	M int

	// AttemptsCeiling bounds the DFS search (see internal/search).
	AttemptsCeiling int
}

// DefaultConfig returns the reference 5x5 / min-4 configuration.
func DefaultConfig() Config {
	return Config{
		Letters:         Default,
		N:               5,
		M:               4,
		AttemptsCeiling: 50000,
	}
}

// Contains reports whether r belongs to cfg's alphabet.
func (cfg Config) Contains(r rune) bool {
	for _, a := range cfg.Letters {
		if a == r {
			return true
		}
	}
	return false
}

// IsValidWord reports whether every rune in w belongs to cfg's
// alphabet. An empty string is trivially valid.
func (cfg Config) IsValidWord(w string) bool {
	for _, r := range w {
		if !cfg.Contains(r) {
			return false
		}
	}
	return true
}
