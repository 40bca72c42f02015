package main

import "github.com/sevigo/print-relay/internal/core"

// Carries one poll of the server: queue state plus recent jobs.
type snapshotMsg struct {
	queue *core.QueueStatus
	jobs  []*core.JobRecord
	err   error
}

// Fires when the next poll is due.
type tickMsg struct{}
