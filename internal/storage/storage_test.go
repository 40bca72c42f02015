package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/db"
)

func record(id string, finished time.Time) *core.JobRecord {
	return &core.JobRecord{
		JobID:     id,
		SourceURI: "https://images.test/" + id + ".jpg",
		Status:    core.JobStatusPrinted,
		Stages: []core.Stage{
			core.StageFetching, core.StageConnecting, core.StagePrinting, core.StageCleanup, core.StageDone,
		},
		StartedAt:  finished.Add(-time.Second),
		FinishedAt: finished,
	}
}

func jobIDs(records []*core.JobRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.JobID
	}
	return ids
}

func TestMemoryStore_NewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordJob(ctx, record(fmt.Sprintf("job-%d", i), base.Add(time.Duration(i)*time.Second))))
	}

	got, err := s.RecentJobs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-4", "job-3", "job-2"}, jobIDs(got))

	got, err = s.RecentJobs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-4", "job-3"}, jobIDs(got))
}

func TestMemoryStore_PartiallyFilled(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	got, err := s.RecentJobs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.RecordJob(ctx, record("only", time.Now())))
	got, err = s.RecentJobs(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, jobIDs(got))
}

func TestMemoryStore_CopiesRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	rec := record("a", time.Now())
	require.NoError(t, s.RecordJob(ctx, rec))

	rec.Status = core.JobStatusFailed
	rec.Stages[0] = core.StageFailed

	got, err := s.RecentJobs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, core.JobStatusPrinted, got[0].Status)
	assert.Equal(t, core.StageFetching, got[0].Stages[0])
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ClampLimit(0))
	assert.Equal(t, DefaultListLimit, ClampLimit(-4))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxListLimit, ClampLimit(MaxListLimit+1))
}

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	cfg := &config.DBConfig{
		Enabled: true,
		Driver:  db.DriverSQLite,
		DSN:     filepath.Join(t.TempDir(), "journal.db"),
	}
	conn, cleanup, err := db.NewDatabase(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewStore(conn.DB)
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)

	failed := &core.JobRecord{
		JobID:        "b",
		SourceURI:    "https://images.test/b.jpg",
		Status:       core.JobStatusFailed,
		ErrorKind:    core.KindFetch,
		Error:        "fetch: download: unexpected status 404 Not Found",
		CleanupError: "",
		Stages:       []core.Stage{core.StageFetching, core.StageCleanup, core.StageFailed},
		StartedAt:    base.Add(time.Second),
		FinishedAt:   base.Add(2 * time.Second),
	}
	require.NoError(t, s.RecordJob(ctx, record("a", base)))
	require.NoError(t, s.RecordJob(ctx, failed))

	got, err := s.RecentJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, failed, got[0])
	assert.Equal(t, "a", got[1].JobID)
	assert.Equal(t, base, got[1].FinishedAt)
}

func TestSQLStore_DuplicateJobID(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	require.NoError(t, s.RecordJob(ctx, record("dup", time.Now())))
	assert.Error(t, s.RecordJob(ctx, record("dup", time.Now())))
}

func TestSQLStore_Limit(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	base := time.Now()

	for i := 0; i < 4; i++ {
		require.NoError(t, s.RecordJob(ctx, record(fmt.Sprintf("job-%d", i), base.Add(time.Duration(i)*time.Millisecond))))
	}

	got, err := s.RecentJobs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-3", "job-2"}, jobIDs(got))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, cleanup, err := db.NewDatabase(&config.DBConfig{Driver: "mysql"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	cleanup()
}
