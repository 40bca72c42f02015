package main

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/print-relay/internal/core"
)

type fakeSource struct {
	queue *core.QueueStatus
	jobs  []*core.JobRecord
	err   error
	limit int
}

func (f *fakeSource) Queue(context.Context) (*core.QueueStatus, error) {
	return f.queue, f.err
}

func (f *fakeSource) Jobs(_ context.Context, limit int) ([]*core.JobRecord, error) {
	f.limit = limit
	return f.jobs, f.err
}

func TestPollCmd(t *testing.T) {
	src := &fakeSource{
		queue: &core.QueueStatus{State: core.QueueBusy, Pending: 2, Current: "job-1"},
		jobs:  []*core.JobRecord{{JobID: "job-0", Status: core.JobStatusPrinted}},
	}

	msg := pollCmd(src, 7, time.Second)()
	snap, ok := msg.(snapshotMsg)
	require.True(t, ok)
	require.NoError(t, snap.err)
	assert.Equal(t, 2, snap.queue.Pending)
	assert.Len(t, snap.jobs, 1)
	assert.Equal(t, 7, src.limit)

	src.err = errors.New("connection refused")
	snap = pollCmd(src, 7, time.Second)().(snapshotMsg)
	assert.EqualError(t, snap.err, "connection refused")
}

func TestModel_SnapshotUpdatesView(t *testing.T) {
	m := initialModel(&fakeSource{}, "http://relay:8080", ThemeCyan, time.Second, 10)
	assert.Contains(t, m.View(), "connecting")

	now := time.Now()
	_, cmd := m.Update(snapshotMsg{
		queue: &core.QueueStatus{State: core.QueueIdle, Processed: 3},
		jobs: []*core.JobRecord{
			{JobID: "0123456789", Status: core.JobStatusFailed, ErrorKind: core.KindFetch, SourceURI: "https://cdn/a.png", StartedAt: now, FinishedAt: now},
		},
	})
	require.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "idle")
	assert.Contains(t, view, "01234567")
	assert.NotContains(t, view, "0123456789")
	assert.Contains(t, view, "https://cdn/a.png")
	assert.Contains(t, view, "fetch")
}

func TestModel_ErrorKeepsLastSnapshot(t *testing.T) {
	m := initialModel(&fakeSource{}, "http://relay:8080", ThemeAmber, time.Second, 10)
	m.Update(snapshotMsg{queue: &core.QueueStatus{State: core.QueueIdle, Processed: 9}})
	m.Update(snapshotMsg{err: errors.New("server unreachable")})

	view := m.View()
	assert.Contains(t, view, "server unreachable")
	assert.Contains(t, view, "processed")
	assert.NotNil(t, m.queue)
}

func TestModel_QuitKeys(t *testing.T) {
	m := initialModel(&fakeSource{}, "", ThemeMatrix, time.Second, 10)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
