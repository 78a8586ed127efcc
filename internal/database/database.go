package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"
)

// RatingsAlias is the logical schema name the ratings database is
// attached under. Queries against ratings tables qualify with it.
const RatingsAlias = "ratings"

// DB wraps the catalog SQLite database connection
type DB struct {
	*sql.DB
	path        string
	ratingsPath string

	attachGroup singleflight.Group
	attachMu    sync.Mutex
	attached    bool
}

// New creates a new catalog database connection. The ratings database at
// ratingsPath is not opened here; it is attached lazily on first need
// (see AttachRatings).
func New(path, ratingsPath string) (*DB, error) {
	// SQLite connection with WAL mode; the workload is read-only so
	// reads never contend with writers
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// ATTACH is per-connection state, so the pool is pinned to a single
	// shared connection; pooled siblings would miss the ratings schema
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	log.Debug().Str("path", path).Msg("Database connection established")

	return &DB{
		DB:          db,
		path:        path,
		ratingsPath: ratingsPath,
	}, nil
}

// Path returns the catalog database file path
func (db *DB) Path() string {
	return db.path
}

// RatingsPath returns the ratings database file path
func (db *DB) RatingsPath() string {
	return db.ratingsPath
}

// AttachRatings attaches the ratings database under the RatingsAlias
// schema. The first call performs the physical ATTACH; subsequent calls
// return immediately. Concurrent first-time callers collapse into a
// single in-flight attach and all observe its result. On failure the
// attached flag stays clear so a later call retries.
func (db *DB) AttachRatings() error {
	db.attachMu.Lock()
	attached := db.attached
	db.attachMu.Unlock()
	if attached {
		return nil
	}

	_, err, _ := db.attachGroup.Do("attach", func() (any, error) {
		db.attachMu.Lock()
		if db.attached {
			db.attachMu.Unlock()
			return nil, nil
		}
		db.attachMu.Unlock()

		if _, err := db.Exec(`ATTACH DATABASE ? AS `+RatingsAlias, db.ratingsPath); err != nil {
			return nil, fmt.Errorf("failed to attach ratings database: %w", err)
		}

		db.attachMu.Lock()
		db.attached = true
		db.attachMu.Unlock()

		log.Debug().Str("path", db.ratingsPath).Msg("Ratings database attached")
		return nil, nil
	})
	return err
}

// RatingsAttached reports whether the ratings database has been attached
func (db *DB) RatingsAttached() bool {
	db.attachMu.Lock()
	defer db.attachMu.Unlock()
	return db.attached
}
