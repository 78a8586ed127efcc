package database

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestAttachRatings_ConcurrentCallersAttachOnce(t *testing.T) {
	db := newTestDB(t)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.AttachRatings()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d observed attach error: %v", i, err)
		}
	}
	if !db.RatingsAttached() {
		t.Fatal("expected ratings database to be attached")
	}

	// The session must have exactly one schema named after the alias
	rows, err := db.Query(`PRAGMA database_list`)
	if err != nil {
		t.Fatalf("failed to list schemas: %v", err)
	}
	defer rows.Close()

	attached := 0
	for rows.Next() {
		var seq int
		var name, file string
		if err := rows.Scan(&seq, &name, &file); err != nil {
			t.Fatalf("failed to scan schema row: %v", err)
		}
		if name == RatingsAlias {
			attached++
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to iterate schema rows: %v", err)
	}
	if attached != 1 {
		t.Fatalf("expected exactly 1 attached ratings schema, got %d", attached)
	}
}

func TestAttachRatings_SecondCallIsANoOp(t *testing.T) {
	db := newTestDB(t)

	if err := db.AttachRatings(); err != nil {
		t.Fatalf("first attach returned error: %v", err)
	}
	if err := db.AttachRatings(); err != nil {
		t.Fatalf("second attach returned error: %v", err)
	}
}

func TestAttachRatings_FailureLeavesStateUnattached(t *testing.T) {
	tmp := t.TempDir()
	moviesPath := filepath.Join(tmp, "movies.db")
	seedCatalog(t, moviesPath)

	// Point the ratings path into a directory that does not exist so the
	// physical attach fails
	db, err := New(moviesPath, filepath.Join(tmp, "missing", "ratings.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	if err := db.AttachRatings(); err == nil {
		t.Fatal("expected attach to fail")
	}
	if db.RatingsAttached() {
		t.Fatal("expected attached flag to stay clear after failure")
	}

	// A later call retries the attach rather than short-circuiting
	if err := db.AttachRatings(); err == nil {
		t.Fatal("expected retried attach to fail again")
	}
}

func TestGetMovieByIMDBID_AttachFailurePropagates(t *testing.T) {
	tmp := t.TempDir()
	moviesPath := filepath.Join(tmp, "movies.db")
	seedCatalog(t, moviesPath)

	db, err := New(moviesPath, filepath.Join(tmp, "missing", "ratings.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	if _, err := db.GetMovieByIMDBID("tt0111161"); err == nil {
		t.Fatal("expected detail query to surface the attach failure")
	}
}
