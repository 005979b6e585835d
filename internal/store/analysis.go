// internal/store/analysis.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"reseg/internal/events"
	"reseg/internal/jsonutil"
)

// PutEvents stores t as analysis name of a read. An existing analysis is
// replaced only when overwrite is set; otherwise ErrExists is returned.
// Replacing an analysis clears its FASTQ.
func (s *Store) PutEvents(ctx context.Context, readID, name string, t events.Table, attrs map[string]string, overwrite bool) error {
	return s.putAnalysis(ctx, readID, name, t, attrs, "", overwrite)
}

// PutEventsFastq is PutEvents plus the analysis' FASTQ record, written in
// the same transaction: either both are stored or neither is.
func (s *Store) PutEventsFastq(ctx context.Context, readID, name string, t events.Table, attrs map[string]string, fastq string, overwrite bool) error {
	return s.putAnalysis(ctx, readID, name, t, attrs, fastq, overwrite)
}

func (s *Store) putAnalysis(ctx context.Context, readID, name string, t events.Table, attrs map[string]string, fastq string, overwrite bool) error {
	enc, err := encodeAttrs(attrs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reads WHERE read_id = ?`, readID).Scan(&n); err != nil {
		return fmt.Errorf("check read %s: %w", readID, err)
	}
	if n == 0 {
		return fmt.Errorf("read %s: %w", readID, ErrNotFound)
	}
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analyses WHERE read_id = ? AND name = ?`, readID, name,
	).Scan(&n); err != nil {
		return fmt.Errorf("check analysis %s/%s: %w", readID, name, err)
	}
	if n > 0 && !overwrite {
		return fmt.Errorf("analysis %s/%s: %w", readID, name, ErrExists)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE read_id = ? AND analysis = ?`, readID, name); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO analyses (read_id, name, units, attributes, fastq, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(read_id, name) DO UPDATE SET
			units = excluded.units,
			attributes = excluded.attributes,
			fastq = excluded.fastq,
			created_at = excluded.created_at
	`, readID, name, t.Units.String(), enc, fastq, time.Now().UTC()); err != nil {
		return fmt.Errorf("put analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (read_id, analysis, idx, start, length, mean, stdv, model_state, move, p_model_state, raw_start, raw_length)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare events: %w", err)
	}
	defer stmt.Close()
	for i, ev := range t.Events {
		if _, err := stmt.ExecContext(ctx,
			readID, name, i,
			ev.Start, ev.Length, ev.Mean, ev.Stdv,
			ev.ModelState, ev.Move, ev.PModelState,
			ev.RawStart, ev.RawLength,
		); err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetEvents loads an analysis table in stored order.
func (s *Store) GetEvents(ctx context.Context, readID, name string) (events.Table, error) {
	a, err := s.Analysis(ctx, readID, name)
	if err != nil {
		return events.Table{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT start, length, mean, stdv, model_state, move, p_model_state, raw_start, raw_length
		FROM events WHERE read_id = ? AND analysis = ? ORDER BY idx
	`, readID, name)
	if err != nil {
		return events.Table{}, fmt.Errorf("query events %s/%s: %w", readID, name, err)
	}
	defer rows.Close()

	t := events.Table{Units: a.Units}
	for rows.Next() {
		var ev events.Event
		if err := rows.Scan(
			&ev.Start, &ev.Length, &ev.Mean, &ev.Stdv,
			&ev.ModelState, &ev.Move, &ev.PModelState,
			&ev.RawStart, &ev.RawLength,
		); err != nil {
			return events.Table{}, fmt.Errorf("scan event: %w", err)
		}
		t.Events = append(t.Events, ev)
	}
	return t, rows.Err()
}

// Analysis returns the analysis header without its events.
func (s *Store) Analysis(ctx context.Context, readID, name string) (Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		a            = Analysis{ReadID: readID, Name: name}
		units, attrs string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT units, attributes, fastq, created_at FROM analyses WHERE read_id = ? AND name = ?`, readID, name,
	).Scan(&units, &attrs, &a.Fastq, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, fmt.Errorf("analysis %s/%s: %w", readID, name, ErrNotFound)
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("get analysis %s/%s: %w", readID, name, err)
	}
	if a.Units, err = events.ParseUnits(units); err != nil {
		return Analysis{}, err
	}
	if a.Attributes, err = decodeAttrs(attrs); err != nil {
		return Analysis{}, fmt.Errorf("analysis %s/%s attributes: %w", readID, name, err)
	}
	return a, nil
}

// Attributes returns the provenance attributes of an analysis.
func (s *Store) Attributes(ctx context.Context, readID, name string) (map[string]string, error) {
	a, err := s.Analysis(ctx, readID, name)
	if err != nil {
		return nil, err
	}
	return a.Attributes, nil
}

// PutFastq attaches a FASTQ record to an existing analysis.
func (s *Store) PutFastq(ctx context.Context, readID, name, fastq string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx,
		`UPDATE analyses SET fastq = ? WHERE read_id = ? AND name = ?`, fastq, readID, name)
	if err != nil {
		return fmt.Errorf("put fastq %s/%s: %w", readID, name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("analysis %s/%s: %w", readID, name, ErrNotFound)
	}
	return nil
}

// GetFastq returns ErrNotFound when the analysis is missing or has no FASTQ.
func (s *Store) GetFastq(ctx context.Context, readID, name string) (string, error) {
	a, err := s.Analysis(ctx, readID, name)
	if err != nil {
		return "", err
	}
	if a.Fastq == "" {
		return "", fmt.Errorf("fastq %s/%s: %w", readID, name, ErrNotFound)
	}
	return a.Fastq, nil
}

func encodeAttrs(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	s, err := jsonutil.String(m)
	if err != nil {
		return "", fmt.Errorf("encode attributes: %w", err)
	}
	return s, nil
}

func decodeAttrs(s string) (map[string]string, error) {
	m := map[string]string{}
	if s == "" {
		return m, nil
	}
	if err := jsonutil.DecodeString(s, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
