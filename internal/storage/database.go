// Package storage keeps the journal of finished print jobs, either in memory or
// in the SQL database opened by package db.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/print-relay/internal/core"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// Store defines the interface for all journal operations.
type Store interface {
	core.JobJournal
}

type sqlStore struct {
	db *sqlx.DB
}

// NewStore creates a Store backed by the print_jobs table.
func NewStore(db *sqlx.DB) Store {
	return &sqlStore{db: db}
}

type jobRow struct {
	JobID        string `db:"job_id"`
	SourceURI    string `db:"source_uri"`
	Status       string `db:"status"`
	ErrorKind    string `db:"error_kind"`
	ErrorMessage string `db:"error_message"`
	CleanupError string `db:"cleanup_error"`
	Stages       string `db:"stages"`
	StartedAt    int64  `db:"started_at"`
	FinishedAt   int64  `db:"finished_at"`
}

// RecordJob inserts the terminal record of a job. job_id is unique, so a second
// record for the same job fails.
func (s *sqlStore) RecordJob(ctx context.Context, rec *core.JobRecord) error {
	query := s.db.Rebind(`INSERT INTO print_jobs
		(job_id, source_uri, status, error_kind, error_message, cleanup_error, stages, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		rec.JobID,
		rec.SourceURI,
		string(rec.Status),
		string(rec.ErrorKind),
		rec.Error,
		rec.CleanupError,
		joinStages(rec.Stages),
		rec.StartedAt.UnixNano(),
		rec.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record job %s: %w", rec.JobID, err)
	}
	return nil
}

// RecentJobs returns up to limit records, newest first.
func (s *sqlStore) RecentJobs(ctx context.Context, limit int) ([]*core.JobRecord, error) {
	query := s.db.Rebind(`
		SELECT job_id, source_uri, status, error_kind, error_message, cleanup_error, stages, started_at, finished_at
		FROM print_jobs
		ORDER BY finished_at DESC, id DESC
		LIMIT ?`)

	var rows []jobRow
	if err := s.db.SelectContext(ctx, &rows, query, ClampLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	records := make([]*core.JobRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, &core.JobRecord{
			JobID:        r.JobID,
			SourceURI:    r.SourceURI,
			Status:       core.JobStatus(r.Status),
			ErrorKind:    core.ErrorKind(r.ErrorKind),
			Error:        r.ErrorMessage,
			CleanupError: r.CleanupError,
			Stages:       splitStages(r.Stages),
			StartedAt:    time.Unix(0, r.StartedAt).UTC(),
			FinishedAt:   time.Unix(0, r.FinishedAt).UTC(),
		})
	}
	return records, nil
}

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

func joinStages(stages []core.Stage) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func splitStages(s string) []core.Stage {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	stages := make([]core.Stage, len(parts))
	for i, p := range parts {
		stages[i] = core.Stage(p)
	}
	return stages
}
