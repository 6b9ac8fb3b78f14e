// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores recent discovery results in SQLite so repeated
// queries skip the network inside a short window. Entries are transient:
// each carries an expiry and expired rows are ignored on read and removed
// by Prune.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/toolscout/pkg/types"
)

const (
	defaultPath = "toolscout-cache.db"
	defaultTTL  = time.Hour
)

// Store is a TTL cache of ranked result sets keyed by query and limit.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// NewStore opens or creates the cache database at cfg.Path, creating the
// schema if it does not exist.
func NewStore(cfg types.CacheConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS search_cache (
		key TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		result TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the cached result set for (query, limit), or ok=false on a
// miss or an expired entry.
func (s *Store) Get(query string, limit int) (types.RankedResultSet, bool, error) {
	var (
		encoded   string
		expiresAt int64
	)
	row := s.db.QueryRow(`SELECT result, expires_at FROM search_cache WHERE key = ?`, cacheKey(query, limit))
	if err := row.Scan(&encoded, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.RankedResultSet{}, false, nil
		}
		return types.RankedResultSet{}, false, fmt.Errorf("reading cache entry: %w", err)
	}

	if time.Now().UnixNano() >= expiresAt {
		return types.RankedResultSet{}, false, nil
	}

	var out types.RankedResultSet
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return types.RankedResultSet{}, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return out, true, nil
}

// Put stores the result set for (query, limit), replacing any previous
// entry.
func (s *Store) Put(query string, limit int, out types.RankedResultSet) error {
	encoded, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	// Unix nanoseconds so short TTLs survive the round trip intact.
	expiresAt := time.Now().Add(s.ttl).UnixNano()
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO search_cache (key, query, result, expires_at) VALUES (?, ?, ?, ?)`,
		cacheKey(query, limit), query, string(encoded), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Prune removes expired entries and reports how many were removed.
func (s *Store) Prune() (int, error) {
	res, err := s.db.Exec(`DELETE FROM search_cache WHERE expires_at <= ?`, time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned entries: %w", err)
	}
	return int(n), nil
}

// cacheKey hashes query and limit into a fixed-width key.
func cacheKey(query string, limit int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, limit)))
	return hex.EncodeToString(sum[:])
}
