// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the print pipeline.
package core

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_core.go -package=mocks . JobDispatcher,Job,ImageFetcher,DeviceConnector,Device,PrintExecutor,JobRecorder,JobJournal,QueueInspector

// JobDispatcher defines the contract for a system that can accept and queue
// print jobs for asynchronous processing. This interface decouples the event
// source (a webhook handler or a bus subscriber) from job execution.
type JobDispatcher interface {
	// Dispatch accepts a PrintEvent and queues it for processing. It never
	// blocks on job execution.
	Dispatch(ctx context.Context, event *PrintEvent) error
}

// Job represents a single, executable unit of work that is run by the
// processor for every dequeued PrintEvent.
type Job interface {
	Run(ctx context.Context, event *PrintEvent) error
}

// ImageFetcher retrieves a remote image into a local file.
type ImageFetcher interface {
	Fetch(ctx context.Context, sourceURI string) (*LocalImage, error)
}

// DeviceConnector opens a session with the printer. A false second return means
// every attempt failed and the caller must skip printing.
type DeviceConnector interface {
	Connect(ctx context.Context) (Device, bool)
}

// Device is an open byte session with the printer. Close must be safe to call
// more than once.
type Device interface {
	Write(ctx context.Context, data []byte) error
	Close() error
}

// PrintExecutor renders a local image on an open device, then releases the device
// regardless of the outcome.
type PrintExecutor interface {
	Render(ctx context.Context, dev Device, img *LocalImage) error
}

// JobRecorder persists the terminal outcome of a job.
type JobRecorder interface {
	RecordJob(ctx context.Context, record *JobRecord) error
}

// Stage is one step of the per-job state machine.
type Stage string

const (
	StageFetching   Stage = "fetching"
	StageConnecting Stage = "connecting"
	StagePrinting   Stage = "printing"
	StageCleanup    Stage = "cleanup"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// JobStatus is the terminal outcome of a job.
type JobStatus string

const (
	JobStatusPrinted JobStatus = "printed"
	// JobStatusSkipped means no printer session could be opened; nothing was printed.
	JobStatusSkipped JobStatus = "skipped"
	JobStatusFailed  JobStatus = "failed"
)

// JobRecord is the journal entry written once per job.
type JobRecord struct {
	JobID        string    `json:"job_id"`
	SourceURI    string    `json:"source_uri"`
	Status       JobStatus `json:"status"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	Error        string    `json:"error,omitempty"`
	CleanupError string    `json:"cleanup_error,omitempty"`
	Stages       []Stage   `json:"stages"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Duration returns how long the job ran.
func (r *JobRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// JobJournal is a JobRecorder that can also list recent outcomes, newest first.
type JobJournal interface {
	JobRecorder
	RecentJobs(ctx context.Context, limit int) ([]*JobRecord, error)
}

// QueueState reports whether the processor is running a job.
type QueueState string

const (
	QueueIdle    QueueState = "idle"
	QueueBusy    QueueState = "busy"
	QueueStopped QueueState = "stopped"
)

// QueueStatus is a point-in-time view of the processor.
type QueueStatus struct {
	State     QueueState `json:"state"`
	Pending   int        `json:"pending"`
	Current   string     `json:"current,omitempty"`
	Processed uint64     `json:"processed"`
}

// QueueInspector exposes the processor state to the API.
type QueueInspector interface {
	Status() QueueStatus
}
