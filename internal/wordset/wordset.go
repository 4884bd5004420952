// Package wordset loads the dictionary file and splits it into the
// placeable and checkable word sets the pattern index and solvability
// probe are built from.
package wordset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"crossgen/internal/alphabet"
)

// ErrDictionaryIO is returned when the dictionary file cannot be read.
var ErrDictionaryIO = errors.New("dictionary: read error")

// Set holds the two word subsets derived from a dictionary load.
//
// WordsPlaceable contains every token whose length is in [M,N] and
// whose characters are all in the alphabet; it feeds intermediary and
// liner enumeration.
//
// WordsCheckable contains every token whose characters are all in the
// alphabet, regardless of length: a word can fail the length filter for
// WordsPlaceable yet still land in WordsCheckable. It feeds the
// decomposable-solvability probe only.
type Set struct {
	WordsPlaceable map[string]bool
	WordsCheckable map[string]bool
}

// Load reads a newline-delimited UTF-8 dictionary file, strips internal
// whitespace, lowercases each token, and partitions it into Set's two
// subsets per cfg.
func Load(path string, cfg alphabet.Config) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDictionaryIO, err)
	}
	defer f.Close()

	s := &Set{
		WordsPlaceable: make(map[string]bool),
		WordsCheckable: make(map[string]bool),
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		token := strings.ToLower(scanner.Text())
		token = strings.ReplaceAll(token, " ", "")
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if !cfg.IsValidWord(token) {
			continue
		}

		s.WordsCheckable[token] = true

		if len([]rune(token)) >= cfg.M && len([]rune(token)) <= cfg.N {
			s.WordsPlaceable[token] = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDictionaryIO, err)
	}

	return s, nil
}

// PlaceableOfLength returns the placeable words of the given length.
func (s *Set) PlaceableOfLength(l int) []string {
	var out []string
	for w := range s.WordsPlaceable {
		if len([]rune(w)) == l {
			out = append(out, w)
		}
	}
	return out
}
