package core

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies a job failure.
type ErrorKind string

const (
	KindFetch      ErrorKind = "fetch"
	KindConnection ErrorKind = "connection"
	KindPrint      ErrorKind = "print"
	KindCleanup    ErrorKind = "cleanup"
)

// JobError is a classified pipeline failure. The wrapped error carries a stack
// trace captured where the JobError was created.
type JobError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *JobError) Error() string {
	if e.Op == "" {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Op + ": " + e.Err.Error()
}

func (e *JobError) Unwrap() error { return e.Err }

// NewJobError wraps err with a kind, an operation name and a stack trace.
// It returns nil when err is nil.
func NewJobError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &JobError{Kind: kind, Op: op, Err: errors.WithStack(err)}
}

// FetchError builds a KindFetch error.
func FetchError(op string, err error) error { return NewJobError(KindFetch, op, err) }

// ConnectionError builds a KindConnection error.
func ConnectionError(op string, err error) error { return NewJobError(KindConnection, op, err) }

// PrintError builds a KindPrint error.
func PrintError(op string, err error) error { return NewJobError(KindPrint, op, err) }

// CleanupError builds a KindCleanup error.
func CleanupError(op string, err error) error { return NewJobError(KindCleanup, op, err) }

// KindOf returns the kind of the outermost JobError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var je *JobError
	if errors.As(err, &je) {
		return je.Kind
	}
	return ""
}

// ErrNoDevice is reported when every connection attempt failed.
var ErrNoDevice = errors.New("printer unreachable after all connection attempts")

// ErrProcessorStopped is returned by a JobDispatcher that no longer accepts jobs.
var ErrProcessorStopped = errors.New("processor is stopped, cannot accept new print jobs")
