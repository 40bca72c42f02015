package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeJob records execution order and the peak number of concurrent runs.
type fakeJob struct {
	mu      sync.Mutex
	order   []string
	active  atomic.Int32
	peak    atomic.Int32
	delay   time.Duration
	runFunc func(ctx context.Context, event *core.PrintEvent) error
}

func (f *fakeJob) Run(ctx context.Context, event *core.PrintEvent) error {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.order = append(f.order, event.ID)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.runFunc != nil {
		return f.runFunc(ctx, event)
	}
	return nil
}

func (f *fakeJob) executed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

func newEvent(id string) *core.PrintEvent {
	return &core.PrintEvent{ID: id, SourceURI: "https://images.test/" + id + ".jpg", Source: "test"}
}

func TestProcessor_FIFOExactlyOnce(t *testing.T) {
	job := &fakeJob{delay: time.Millisecond}
	p := NewProcessor(context.Background(), job, &config.QueueConfig{}, testLogger)

	var want []string
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("job-%02d", i)
		want = append(want, id)
		require.NoError(t, p.Dispatch(context.Background(), newEvent(id)))
	}
	p.Stop()

	assert.Equal(t, want, job.executed())
	assert.Equal(t, int32(1), job.peak.Load(), "jobs must never overlap")
	status := p.Status()
	assert.Equal(t, uint64(25), status.Processed)
	assert.Zero(t, status.Pending)
}

func TestProcessor_ConcurrentDispatchNeverOverlaps(t *testing.T) {
	job := &fakeJob{delay: 200 * time.Microsecond}
	p := NewProcessor(context.Background(), job, nil, testLogger)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				assert.NoError(t, p.Dispatch(context.Background(), newEvent(fmt.Sprintf("g%d-%d", g, i))))
			}
		}()
	}
	wg.Wait()
	p.Stop()

	executed := job.executed()
	assert.Len(t, executed, 80)
	seen := make(map[string]int)
	for _, id := range executed {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "job %s ran more than once", id)
	}
	assert.Len(t, seen, 80)
	assert.Equal(t, int32(1), job.peak.Load())
}

func TestProcessor_DrainIsNoopWhenEmpty(t *testing.T) {
	job := &fakeJob{}
	p := NewProcessor(context.Background(), job, nil, testLogger)

	p.Drain()

	assert.Empty(t, job.executed())
	assert.Equal(t, core.QueueStatus{State: core.QueueIdle}, p.Status())
}

func TestProcessor_DrainIsNoopWhenBusy(t *testing.T) {
	release := make(chan struct{})
	job := &fakeJob{runFunc: func(_ context.Context, event *core.PrintEvent) error {
		if event.ID == "first" {
			<-release
		}
		return nil
	}}
	p := NewProcessor(context.Background(), job, nil, testLogger)

	require.NoError(t, p.Dispatch(context.Background(), newEvent("first")))
	require.Eventually(t, func() bool { return p.Status().Current == "first" }, time.Second, time.Millisecond)

	require.NoError(t, p.Dispatch(context.Background(), newEvent("second")))
	p.Drain()

	status := p.Status()
	assert.Equal(t, core.QueueBusy, status.State)
	assert.Equal(t, 1, status.Pending, "second job waits for the current one")
	assert.Equal(t, []string{"first"}, job.executed())

	close(release)
	p.Stop()
	assert.Equal(t, []string{"first", "second"}, job.executed())
}

func TestProcessor_FailuresDoNotStopTheLoop(t *testing.T) {
	job := &fakeJob{runFunc: func(_ context.Context, event *core.PrintEvent) error {
		switch event.ID {
		case "b":
			return core.FetchError("download", errors.New("404 Not Found"))
		case "c":
			panic("renderer exploded")
		}
		return nil
	}}
	p := NewProcessor(context.Background(), job, nil, testLogger)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, p.Dispatch(context.Background(), newEvent(id)))
	}
	p.Stop()

	assert.Equal(t, []string{"a", "b", "c", "d"}, job.executed())
	assert.Equal(t, uint64(4), p.Status().Processed)
}

func TestProcessor_StopRejectsNewJobs(t *testing.T) {
	p := NewProcessor(context.Background(), &fakeJob{}, nil, testLogger)
	p.Stop()

	err := p.Dispatch(context.Background(), newEvent("late"))
	assert.ErrorIs(t, err, ErrProcessorStopped)
	assert.Equal(t, core.QueueStopped, p.Status().State)
}

func TestProcessor_DispatchRejectsNil(t *testing.T) {
	p := NewProcessor(context.Background(), &fakeJob{}, nil, testLogger)
	assert.Error(t, p.Dispatch(context.Background(), nil))
}

func TestProcessor_JobTimeout(t *testing.T) {
	var jobErr atomic.Value
	job := &fakeJob{runFunc: func(ctx context.Context, _ *core.PrintEvent) error {
		<-ctx.Done()
		jobErr.Store(ctx.Err())
		return ctx.Err()
	}}
	p := NewProcessor(context.Background(), job, &config.QueueConfig{JobTimeout: 20 * time.Millisecond}, testLogger)

	require.NoError(t, p.Dispatch(context.Background(), newEvent("slow")))
	p.Stop()

	assert.ErrorIs(t, jobErr.Load().(error), context.DeadlineExceeded)
}

func TestProcessor_JobOutlivesDispatchContext(t *testing.T) {
	var ctxErr atomic.Value
	job := &fakeJob{runFunc: func(ctx context.Context, _ *core.PrintEvent) error {
		ctxErr.Store(fmt.Sprint(ctx.Err()))
		return nil
	}}
	p := NewProcessor(context.Background(), job, nil, testLogger)

	requestCtx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Dispatch(requestCtx, newEvent("detached")))
	p.Stop()

	assert.Equal(t, "<nil>", ctxErr.Load())
}
