package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flemzord/recall/internal/history"
	"github.com/flemzord/recall/pkg/message"
)

// timeFormat is how timestamps are stored; lexicographic order matches
// chronological order, so the ended_at index sorts correctly.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Store is a SQLite-backed implementation of history.Store.
type Store struct {
	db        *sql.DB
	retention time.Duration
}

// Compile-time interface check.
var _ history.Store = (*Store)(nil)

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a record for a requester, replacing any record with the same
// session ID.
func (s *Store) Save(requesterID string, rec history.Record) error {
	transcript, err := json.Marshal(rec.Transcript)
	if err != nil {
		return fmt.Errorf("sqlite: marshal transcript: %w", err)
	}

	_, err = s.db.ExecContext(context.TODO(), `
		INSERT OR REPLACE INTO conversations
			(requester_id, session_id, started_at, ended_at, transcript, summary, message_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		requesterID, rec.SessionID,
		rec.StartedAt.UTC().Format(timeFormat),
		rec.EndedAt.UTC().Format(timeFormat),
		string(transcript), rec.Summary, rec.MessageCount,
	)
	if err != nil {
		return fmt.Errorf("sqlite: save conversation: %w", err)
	}

	return nil
}

// RecordsForRequester returns the requester's records ordered by end time
// descending. When a retention window is configured, records older than the
// window are filtered out before returning.
func (s *Store) RecordsForRequester(requesterID string) ([]history.Record, error) {
	query := `
		SELECT session_id, started_at, ended_at, transcript, summary, message_count
		FROM conversations
		WHERE requester_id = ?`
	args := []any{requesterID}

	if s.retention > 0 {
		query += " AND ended_at >= ?"
		args = append(args, time.Now().Add(-s.retention).UTC().Format(timeFormat))
	}

	query += " ORDER BY ended_at DESC"

	rows, err := s.db.QueryContext(context.TODO(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []history.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: conversation rows: %w", err)
	}

	return records, nil
}

// PruneBefore deletes all conversations that ended before cutoff, across
// every requester. Returns the number of rows removed.
func (s *Store) PruneBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(context.TODO(),
		"DELETE FROM conversations WHERE ended_at < ?",
		cutoff.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prune conversations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: prune rows affected: %w", err)
	}
	return n, nil
}

// Len returns the number of conversations stored for a requester,
// ignoring the retention filter.
func (s *Store) Len(requesterID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(context.TODO(),
		"SELECT COUNT(*) FROM conversations WHERE requester_id = ?", requesterID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count conversations: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (history.Record, error) {
	var (
		rec            history.Record
		startedAt      string
		endedAt        string
		transcriptJSON string
	)

	if err := s.Scan(&rec.SessionID, &startedAt, &endedAt, &transcriptJSON, &rec.Summary, &rec.MessageCount); err != nil {
		return rec, fmt.Errorf("sqlite: scan conversation: %w", err)
	}

	var err error
	if rec.StartedAt, err = time.Parse(timeFormat, startedAt); err != nil {
		return rec, fmt.Errorf("sqlite: parse started_at: %w", err)
	}
	if rec.EndedAt, err = time.Parse(timeFormat, endedAt); err != nil {
		return rec, fmt.Errorf("sqlite: parse ended_at: %w", err)
	}

	if transcriptJSON != "" && transcriptJSON != "[]" {
		var transcript []message.Entry
		if err := json.Unmarshal([]byte(transcriptJSON), &transcript); err != nil {
			return rec, fmt.Errorf("sqlite: unmarshal transcript: %w", err)
		}
		rec.Transcript = transcript
	}

	return rec, nil
}
