// Package store persists reads, their event tables and derived FASTQ
// records in a single SQLite file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"reseg/internal/events"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// Store is safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Read is the per-read metadata needed to interpret its tables.
type Read struct {
	ID           string
	SamplingFreq float64 // Hz
	StartTime    float64 // samples since the start of the run
	RNA          bool
	Attributes   map[string]string
}

// Analysis is a named event table attached to a read.
type Analysis struct {
	ReadID     string
	Name       string
	Units      events.Units
	Attributes map[string]string
	Fastq      string
	CreatedAt  time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every new connection would see an empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set busy timeout: %w", err)
		}
	}
	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reads (
		read_id TEXT PRIMARY KEY,
		sampling_freq REAL NOT NULL,
		start_time REAL NOT NULL,
		is_rna INTEGER NOT NULL DEFAULT 0,
		attributes TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS analyses (
		read_id TEXT NOT NULL REFERENCES reads(read_id),
		name TEXT NOT NULL,
		units TEXT NOT NULL,
		attributes TEXT NOT NULL DEFAULT '{}',
		fastq TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		PRIMARY KEY (read_id, name)
	);

	CREATE TABLE IF NOT EXISTS events (
		read_id TEXT NOT NULL,
		analysis TEXT NOT NULL,
		idx INTEGER NOT NULL,
		start REAL NOT NULL,
		length REAL NOT NULL,
		mean REAL NOT NULL DEFAULT 0,
		stdv REAL NOT NULL DEFAULT 0,
		model_state TEXT NOT NULL DEFAULT '',
		move INTEGER NOT NULL DEFAULT 0,
		p_model_state REAL NOT NULL DEFAULT 0,
		raw_start INTEGER NOT NULL DEFAULT 0,
		raw_length INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (read_id, analysis, idx)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// PutRead inserts or replaces read metadata.
func (s *Store) PutRead(ctx context.Context, r Read) error {
	if r.ID == "" {
		return events.Invalid("PutRead", "read_id", "empty")
	}
	attrs, err := encodeAttrs(r.Attributes)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reads (read_id, sampling_freq, start_time, is_rna, attributes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(read_id) DO UPDATE SET
			sampling_freq = excluded.sampling_freq,
			start_time = excluded.start_time,
			is_rna = excluded.is_rna,
			attributes = excluded.attributes
	`, r.ID, r.SamplingFreq, r.StartTime, boolInt(r.RNA), attrs)
	if err != nil {
		return fmt.Errorf("put read %s: %w", r.ID, err)
	}
	return nil
}

// GetRead returns ErrNotFound for unknown ids.
func (s *Store) GetRead(ctx context.Context, id string) (Read, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		r     = Read{ID: id}
		rna   int
		attrs string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT sampling_freq, start_time, is_rna, attributes FROM reads WHERE read_id = ?`, id,
	).Scan(&r.SamplingFreq, &r.StartTime, &rna, &attrs)
	if errors.Is(err, sql.ErrNoRows) {
		return Read{}, fmt.Errorf("read %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Read{}, fmt.Errorf("get read %s: %w", id, err)
	}
	r.RNA = rna != 0
	if r.Attributes, err = decodeAttrs(attrs); err != nil {
		return Read{}, fmt.Errorf("read %s attributes: %w", id, err)
	}
	return r, nil
}

// ReadIDs lists every read id in ascending order.
func (s *Store) ReadIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `SELECT read_id FROM reads`)
	if err != nil {
		return nil, fmt.Errorf("list reads: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan read id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
