// Package store wires the Postgres and Redis connections that persist
// generated grids and share search state (the visited-signature set)
// across concurrent search workers.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Store holds the database handles a deployed crossgen server shares
// across requests.
type Store struct {
	DB    *sql.DB
	Redis *redis.Client
}

// New opens and pings both backing stores. Either URL may be empty, in
// which case that handle is left nil and callers must check before
// use — crossgen's CLI creates a Store only when --postgres-url or
// --redis-url is given.
func New(postgresURL, redisURL string) (*Store, error) {
	s := &Store{}

	if postgresURL != "" {
		db, err := sql.Open("postgres", postgresURL)
		if err != nil {
			return nil, fmt.Errorf("store: connecting to postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("store: pinging postgres: %w", err)
		}
		s.DB = db
	}

	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("store: parsing redis url: %w", err)
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("store: pinging redis: %w", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

// Close releases both handles, tolerating either being nil.
func (s *Store) Close() error {
	var dbErr, redisErr error
	if s.DB != nil {
		dbErr = s.DB.Close()
	}
	if s.Redis != nil {
		redisErr = s.Redis.Close()
	}
	if dbErr != nil {
		return dbErr
	}
	return redisErr
}

// InitSchema creates the generated_grids table used by the Postgres
// sink, if a Postgres handle is configured.
func (s *Store) InitSchema() error {
	if s.DB == nil {
		return nil
	}
	const schema = `
	CREATE TABLE IF NOT EXISTS generated_grids (
		signature     TEXT PRIMARY KEY,
		grid_size     INTEGER NOT NULL,
		empty_cells   INTEGER NOT NULL,
		solvable      BOOLEAN NOT NULL,
		placed_words  TEXT[] NOT NULL,
		rendered_grid TEXT NOT NULL,
		created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.DB.Exec(schema); err != nil {
		return fmt.Errorf("store: creating generated_grids table: %w", err)
	}
	return nil
}
