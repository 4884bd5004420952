package patternindex

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"crossgen/internal/wordset"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	db := openMemoryDB(t)
	cache, err := NewCache(db)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	idx := buildFromWords(t, "arena", "alpha")
	if err := cache.Put("dict-hash-1", idx); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get("dict-hash-1", testConfig())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}

	if got.LinerCount() != idx.LinerCount() {
		t.Fatalf("cached liner count = %d, want %d", got.LinerCount(), idx.LinerCount())
	}
	if got.RealIntermediaryCount() != idx.RealIntermediaryCount() {
		t.Fatalf("cached intermediary count = %d, want %d", got.RealIntermediaryCount(), idx.RealIntermediaryCount())
	}
	if !got.IsPlaceableWord("arena") {
		t.Fatal("expected cached index to retain placeable word arena")
	}
}

func TestCache_GetMiss(t *testing.T) {
	db := openMemoryDB(t)
	cache, err := NewCache(db)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	_, ok, err := cache.Get("missing", testConfig())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestHashDictionary_SameContentSameHash(t *testing.T) {
	a := &wordset.Set{
		WordsPlaceable: map[string]bool{"arena": true, "alpha": true},
		WordsCheckable: map[string]bool{"arena": true, "alpha": true, "ab": true},
	}
	b := &wordset.Set{
		WordsPlaceable: map[string]bool{"alpha": true, "arena": true},
		WordsCheckable: map[string]bool{"ab": true, "alpha": true, "arena": true},
	}
	if HashDictionary(a) != HashDictionary(b) {
		t.Fatal("expected identical word sets to hash identically regardless of map iteration order")
	}
}

func TestHashDictionary_DifferentContentDifferentHash(t *testing.T) {
	a := &wordset.Set{
		WordsPlaceable: map[string]bool{"arena": true},
		WordsCheckable: map[string]bool{"arena": true},
	}
	b := &wordset.Set{
		WordsPlaceable: map[string]bool{"alpha": true},
		WordsCheckable: map[string]bool{"alpha": true},
	}
	if HashDictionary(a) == HashDictionary(b) {
		t.Fatal("expected different word sets to hash differently")
	}
}
