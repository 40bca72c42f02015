package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/print-relay/internal/core"
)

// statusSource is the part of the API client the monitor polls.
type statusSource interface {
	Queue(ctx context.Context) (*core.QueueStatus, error)
	Jobs(ctx context.Context, limit int) ([]*core.JobRecord, error)
}

func pollCmd(src statusSource, limit int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		queue, err := src.Queue(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		jobs, err := src.Jobs(ctx, limit)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{queue: queue, jobs: jobs}
	}
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return tickMsg{} })
}
