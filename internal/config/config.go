// Package config loads crossgen's environment-driven configuration:
// the fixed grid constants (N, M, alphabet, attempts ceiling), sink
// directories, and the optional Postgres/Redis/sqlite/JWT settings the
// HTTP server needs.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"crossgen/internal/alphabet"
)

// Config is crossgen's full runtime configuration. Fields absent from
// the environment fall back to the defaults used throughout local
// development and the test suite.
type Config struct {
	Alphabet alphabet.Config

	DictionaryPath   string
	PatternCachePath string

	SolvableDir  string
	CloseCallDir string

	Seed int64

	Port          string
	PostgresURL   string
	RedisURL      string
	JWTSecret     string
	AdminPassword string
}

// Load reads .env (if present, logging but not failing when absent)
// and environment variables into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	return Config{
		Alphabet: alphabet.Config{
			Letters:         getEnv("CROSSGEN_ALPHABET", alphabet.Default),
			N:               getEnvInt("CROSSGEN_GRID_SIZE", 5),
			M:               getEnvInt("CROSSGEN_MIN_WORD_LENGTH", 4),
			AttemptsCeiling: getEnvInt("CROSSGEN_ATTEMPTS_CEILING", 50000),
		},
		DictionaryPath:   getEnv("CROSSGEN_DICTIONARY_PATH", "dictionary.txt"),
		PatternCachePath: getEnv("CROSSGEN_PATTERN_CACHE_PATH", "pattern_index_cache.sqlite3"),
		SolvableDir:      getEnv("CROSSGEN_SOLVABLE_DIR", "solvables"),
		CloseCallDir:     getEnv("CROSSGEN_CLOSE_CALL_DIR", "close_calls"),
		Seed:             int64(getEnvInt("CROSSGEN_SEED", 0)),
		Port:             getEnv("PORT", "8080"),
		PostgresURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		JWTSecret:        getEnv("JWT_SECRET", "crossgen-dev-secret-change-in-production"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
