// Package snapshot reads materialized snapshots of the client's
// persistence layer.
//
// A snapshot is a point-in-time SQLite copy of the raw key-value stores,
// produced by the surrounding bridge. One table holds every record:
//
//	records(store TEXT, key TEXT, source TEXT, value TEXT)
//
// where value is the record's JSON-encoded field mapping. Iteration order
// is fixed (store, key, source) so re-iterating a snapshot reproduces the
// same sequence - extraction idempotence depends on it.
//
// Open copies the snapshot into a private temporary location before reading
// so a live writer holding an exclusive lock is never contended with, then
// opens the copy read-only. The engine never writes to a snapshot.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clearway/teamsdb/internal/raw"
)

// ErrUnavailable marks structural snapshot failures: the file is missing,
// unreadable, or not a snapshot at all. Unlike per-record errors these are
// fatal - extraction returns no partial result.
var ErrUnavailable = errors.New("snapshot unavailable")

// WalkFunc is called once per record during iteration. A non-nil err means
// the record's value could not be decoded; rec then carries only its store,
// key, and source tag. Returning a non-nil error stops iteration.
type WalkFunc func(rec raw.Record, err error) error

// Source yields raw records for a snapshot. Iteration is finite and
// restartable: iterating the same source with the same pattern reproduces
// the same sequence.
type Source interface {
	// Stores returns the distinct store names in the snapshot, sorted.
	Stores(ctx context.Context) ([]string, error)

	// Iterate calls fn for every record whose store name contains
	// namePattern, in (store, key, source) order. An empty pattern
	// matches every record.
	Iterate(ctx context.Context, namePattern string, fn WalkFunc) error
}

// Snapshot is a SQLite-backed Source over a private copy of a snapshot
// file.
type Snapshot struct {
	db      *sql.DB
	tempDir string
}

var _ Source = (*Snapshot)(nil)

// Open copies the snapshot at path to a temporary location and opens it
// read-only. Lock files are skipped during the copy. Close removes the
// copy.
func Open(path string) (*Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}

	tempDir, err := os.MkdirTemp("", "teamsdb_")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %v", ErrUnavailable, err)
	}

	copyPath, err := copySnapshot(path, tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite3", "file:"+copyPath+"?mode=ro")
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("%w: open: %v", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("%w: connect: %v", ErrUnavailable, err)
	}

	// Domain scans run in parallel; allow one connection each.
	db.SetMaxOpenConns(4)

	// Reject files that are valid SQLite but not snapshots.
	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'records'`).Scan(&n)
	if err != nil || n == 0 {
		db.Close()
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("%w: %s is not a snapshot (no records table)", ErrUnavailable, path)
	}

	return &Snapshot{db: db, tempDir: tempDir}, nil
}

// Close closes the database and removes the private copy.
func (s *Snapshot) Close() error {
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
		s.db = nil
	}
	if s.tempDir != "" {
		if err := os.RemoveAll(s.tempDir); err != nil {
			errs = append(errs, err)
		}
		s.tempDir = ""
	}
	return errors.Join(errs...)
}

// Stores returns the distinct store names present in the snapshot.
func (s *Snapshot) Stores(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT store FROM records ORDER BY store`)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var stores []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan store name: %w", err)
		}
		stores = append(stores, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

// Iterate walks every record whose store name contains namePattern.
// Ordering is ORDER BY store, key, source so the sequence is reproducible.
func (s *Snapshot) Iterate(ctx context.Context, namePattern string, fn WalkFunc) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT store, key, source, value
		FROM records
		WHERE instr(store, ?) > 0 OR ? = ''
		ORDER BY store, key, source
	`, namePattern, namePattern)
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec raw.Record
		var value []byte
		if err := rows.Scan(&rec.Store, &rec.Key, &rec.SourceTag, &value); err != nil {
			return fmt.Errorf("scan record: %w", err)
		}
		fields, decodeErr := raw.DecodeJSON(value)
		rec.Fields = fields
		if err := fn(rec, decodeErr); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate records: %w", err)
	}
	return nil
}

// copySnapshot copies the snapshot file and its sidecars into dir, skipping
// lock files, and returns the path of the copied main file.
func copySnapshot(path, dir string) (string, error) {
	target := filepath.Join(dir, filepath.Base(path))
	if err := copyFile(path, target); err != nil {
		return "", err
	}

	// Write-ahead log and shared-memory sidecars, when present, carry
	// records not yet checkpointed into the main file.
	for _, suffix := range []string{"-wal", "-shm"} {
		side := path + suffix
		if strings.Contains(strings.ToLower(side), "lock") {
			continue
		}
		if _, err := os.Stat(side); err != nil {
			continue
		}
		if err := copyFile(side, target+suffix); err != nil {
			return "", err
		}
	}
	return target, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Sync()
}
