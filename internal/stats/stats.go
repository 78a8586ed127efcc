// Package stats maintains cached catalog statistics, refreshed on a
// cron schedule and on demand when the catalog file changes on disk.
package stats

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/reelbase/reelbase/internal/database"
)

// Snapshot is one point-in-time view of the catalog
type Snapshot struct {
	MovieCount   int64     `json:"movie_count"`
	ReleaseYears int64     `json:"release_years"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// Collector refreshes and serves catalog statistics
type Collector struct {
	db   *database.DB
	cron *cron.Cron

	mu       sync.RWMutex
	snapshot Snapshot
}

// New creates a collector; Start schedules the periodic refresh
func New(db *database.DB) *Collector {
	return &Collector{
		db:   db,
		cron: cron.New(),
	}
}

// Start performs an initial refresh and schedules recurring ones using
// the given cron spec (e.g. "@every 15m")
func (c *Collector) Start(schedule string) error {
	c.Refresh()

	if _, err := c.cron.AddFunc(schedule, c.Refresh); err != nil {
		return err
	}
	c.cron.Start()

	log.Debug().Str("schedule", schedule).Msg("Catalog stats collector started")
	return nil
}

// Stop halts the scheduled refreshes
func (c *Collector) Stop() {
	c.cron.Stop()
}

// Refresh recomputes the snapshot. Failures leave the previous snapshot
// in place; stats are advisory and must not take requests down.
func (c *Collector) Refresh() {
	movieCount, err := c.db.CountMovies()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to refresh movie count")
		return
	}

	releaseYears, err := c.db.CountReleaseYears()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to refresh release year count")
		return
	}

	c.mu.Lock()
	c.snapshot = Snapshot{
		MovieCount:   movieCount,
		ReleaseYears: releaseYears,
		RefreshedAt:  time.Now(),
	}
	c.mu.Unlock()

	log.Debug().Int64("movies", movieCount).Int64("years", releaseYears).Msg("Catalog stats refreshed")
}

// Snapshot returns the most recent statistics
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}
