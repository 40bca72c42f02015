// Package jobs holds the serialized print queue and the per-job print pipeline.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/logger"
)

// ErrProcessorStopped is returned by Dispatch once Stop has been called.
var ErrProcessorStopped = core.ErrProcessorStopped

// Processor implements core.JobDispatcher. It owns a FIFO queue of print events
// and runs them one at a time, so the printer never sees two jobs interleave.
type Processor struct {
	ctx        context.Context // Lifetime context every job runs under.
	job        core.Job        // Pipeline executed for each dequeued event.
	jobTimeout time.Duration   // Optional per-job deadline.
	logger     *slog.Logger

	mu        sync.Mutex
	queue     []*core.PrintEvent
	busy      bool
	stopped   bool
	current   string
	processed uint64

	wg sync.WaitGroup // Tracks drain goroutines started by Dispatch.
}

// NewProcessor creates an idle processor. Jobs run under ctx rather than the
// context of the caller that dispatched them.
func NewProcessor(ctx context.Context, job core.Job, cfg *config.QueueConfig, logger *slog.Logger) *Processor {
	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.JobTimeout
	}
	return &Processor{
		ctx:        ctx,
		job:        job,
		jobTimeout: timeout,
		logger:     logger,
	}
}

// Dispatch appends event to the queue and starts a drain attempt. It never
// waits for a job to run.
func (p *Processor) Dispatch(_ context.Context, event *core.PrintEvent) error {
	if event == nil {
		return fmt.Errorf("print event cannot be nil")
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrProcessorStopped
	}
	p.queue = append(p.queue, event)
	pending := len(p.queue)
	p.wg.Add(1)
	p.mu.Unlock()

	p.logger.Info("queuing print job",
		"job_id", event.ID,
		"uri", event.SourceURI,
		"source", event.Source,
		"pending", pending,
	)

	go func() {
		defer p.wg.Done()
		p.Drain()
	}()
	return nil
}

// Drain runs queued jobs until the queue is empty. It returns immediately when
// another drain is already running or there is nothing to do.
func (p *Processor) Drain() {
	p.mu.Lock()
	if p.busy || len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}
	p.busy = true

	for len(p.queue) > 0 {
		event := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.current = event.ID
		p.mu.Unlock()

		p.runJob(event)

		p.mu.Lock()
		p.current = ""
		p.processed++
	}

	// The empty check above and this transition share the lock, so an event
	// appended after it is picked up by the drain its Dispatch starts.
	p.busy = false
	p.mu.Unlock()
}

// runJob executes a single job and absorbs its failure, including a panic.
func (p *Processor) runJob(event *core.PrintEvent) {
	ctx := p.ctx
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("print job panicked",
				"job_id", event.ID,
				"uri", event.SourceURI,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	p.logger.Info("processing print job", "job_id", event.ID, "uri", event.SourceURI)
	if err := p.job.Run(ctx, event); err != nil {
		p.logger.Error("print job failed",
			"job_id", event.ID,
			"uri", event.SourceURI,
			"duration", time.Since(start),
			logger.Error(err),
		)
		return
	}
	p.logger.Info("print job finished", "job_id", event.ID, "duration", time.Since(start))
}

// Status reports the current queue state.
func (p *Processor) Status() core.QueueStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := core.QueueIdle
	switch {
	case p.busy:
		state = core.QueueBusy
	case p.stopped:
		state = core.QueueStopped
	}
	return core.QueueStatus{
		State:     state,
		Pending:   len(p.queue),
		Current:   p.current,
		Processed: p.processed,
	}
}

// Stop rejects further dispatches and waits for every queued job to finish.
func (p *Processor) Stop() {
	p.mu.Lock()
	p.stopped = true
	pending := len(p.queue)
	p.mu.Unlock()

	p.logger.Info("stopping processor and waiting for queued jobs", "pending", pending)
	p.wg.Wait()
	p.logger.Info("all print jobs have finished")
}
