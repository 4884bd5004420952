package patternindex

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"crossgen/internal/alphabet"
	"crossgen/internal/wordset"
)

// Cache persists a built Index keyed by a content hash of the source
// dictionary, so repeat CLI runs over the same wordlist skip the
// O(2^L) enumeration in Build.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) a sqlite3 database at path
// and returns a Cache backed by it. Callers are responsible for
// closing the returned *sql.DB once the Cache is no longer needed.
func OpenCache(path string) (*Cache, *sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("patternindex: opening cache db: %w", err)
	}
	c, err := NewCache(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return c, db, nil
}

// HashDictionary returns a stable content hash over ws's word sets, to
// key the cache by dictionary content rather than by file path.
func HashDictionary(ws *wordset.Set) string {
	words := make([]string, 0, len(ws.WordsPlaceable)+len(ws.WordsCheckable))
	for w := range ws.WordsPlaceable {
		words = append(words, "p:"+w)
	}
	for w := range ws.WordsCheckable {
		words = append(words, "c:"+w)
	}
	sort.Strings(words)

	h := sha256.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NewCache wraps db and ensures the backing table exists. db is
// expected to use the mattn/go-sqlite3 driver, which this file
// registers; the caller owns the connection lifecycle.
func NewCache(db *sql.DB) (*Cache, error) {
	if db == nil {
		return nil, fmt.Errorf("patternindex: cache requires a non-nil database handle")
	}
	const schema = `
	CREATE TABLE IF NOT EXISTS pattern_index_cache (
		dictionary_hash TEXT PRIMARY KEY,
		config_n        INTEGER NOT NULL,
		config_m        INTEGER NOT NULL,
		payload         BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("patternindex: creating cache table: %w", err)
	}
	return &Cache{db: db}, nil
}

// snapshot is the JSON-serializable form of an Index's built state.
type snapshot struct {
	RealIntermediaries    []string            `json:"real_intermediaries"`
	IntermediaryToWords   map[string][]string `json:"intermediary_to_words"`
	Liners                []string            `json:"liners"`
	LinerToIntermediaries map[string][]string `json:"liner_to_intermediaries"`
	Words                 []string            `json:"words"`
}

func toSnapshot(idx *Index) snapshot {
	s := snapshot{
		IntermediaryToWords:   make(map[string][]string, len(idx.intermediaryToWords)),
		LinerToIntermediaries: make(map[string][]string, len(idx.linerToIntermediaries)),
	}
	for p := range idx.realIntermediaries {
		s.RealIntermediaries = append(s.RealIntermediaries, p)
	}
	for p, words := range idx.intermediaryToWords {
		for w := range words {
			s.IntermediaryToWords[p] = append(s.IntermediaryToWords[p], w)
		}
	}
	for l := range idx.liners {
		s.Liners = append(s.Liners, l)
	}
	for l, parts := range idx.linerToIntermediaries {
		for p := range parts {
			s.LinerToIntermediaries[l] = append(s.LinerToIntermediaries[l], p)
		}
	}
	for w := range idx.words {
		s.Words = append(s.Words, w)
	}
	return s
}

func fromSnapshot(s snapshot, cfg alphabet.Config) *Index {
	idx := &Index{
		cfg:                   cfg,
		realIntermediaries:    make(map[string]bool, len(s.RealIntermediaries)),
		intermediaryToWords:   make(map[string]map[string]bool, len(s.IntermediaryToWords)),
		liners:                make(map[string]bool, len(s.Liners)),
		linerToIntermediaries: make(map[string]map[string]bool, len(s.LinerToIntermediaries)),
		words:                 make(map[string]bool, len(s.Words)),
	}
	for _, p := range s.RealIntermediaries {
		idx.realIntermediaries[p] = true
	}
	for p, words := range s.IntermediaryToWords {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[w] = true
		}
		idx.intermediaryToWords[p] = set
	}
	for _, l := range s.Liners {
		idx.liners[l] = true
	}
	for l, parts := range s.LinerToIntermediaries {
		set := make(map[string]bool, len(parts))
		for _, p := range parts {
			set[p] = true
		}
		idx.linerToIntermediaries[l] = set
	}
	for _, w := range s.Words {
		idx.words[w] = true
	}
	return idx
}

// Get returns the cached Index for dictionaryHash, if present.
func (c *Cache) Get(dictionaryHash string, cfg alphabet.Config) (*Index, bool, error) {
	var payload []byte
	err := c.db.QueryRow(`
		SELECT payload FROM pattern_index_cache
		WHERE dictionary_hash = ? AND config_n = ? AND config_m = ?
	`, dictionaryHash, cfg.N, cfg.M).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("patternindex: reading cache: %w", err)
	}

	var s snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, false, fmt.Errorf("patternindex: decoding cached index: %w", err)
	}
	return fromSnapshot(s, cfg), true, nil
}

// Put stores idx under dictionaryHash, replacing any prior entry.
func (c *Cache) Put(dictionaryHash string, idx *Index) error {
	payload, err := json.Marshal(toSnapshot(idx))
	if err != nil {
		return fmt.Errorf("patternindex: encoding index: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT INTO pattern_index_cache (dictionary_hash, config_n, config_m, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(dictionary_hash) DO UPDATE SET
			config_n = excluded.config_n,
			config_m = excluded.config_m,
			payload = excluded.payload
	`, dictionaryHash, idx.cfg.N, idx.cfg.M, payload)
	if err != nil {
		return fmt.Errorf("patternindex: writing cache: %w", err)
	}
	return nil
}

// Delete removes the cached entry for dictionaryHash, if any.
func (c *Cache) Delete(dictionaryHash string) error {
	_, err := c.db.Exec(`DELETE FROM pattern_index_cache WHERE dictionary_hash = ?`, dictionaryHash)
	if err != nil {
		return fmt.Errorf("patternindex: deleting cache entry: %w", err)
	}
	return nil
}
