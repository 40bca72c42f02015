package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/logger"
)

// PrintJob is the per-event pipeline: fetch the image, open a printer session,
// render it, then delete the local copy.
type PrintJob struct {
	fetcher   core.ImageFetcher
	connector core.DeviceConnector
	executor  core.PrintExecutor
	recorder  core.JobRecorder
	logger    *slog.Logger
}

// NewPrintJob wires the pipeline collaborators.
func NewPrintJob(
	fetcher core.ImageFetcher,
	connector core.DeviceConnector,
	executor core.PrintExecutor,
	recorder core.JobRecorder,
	logger *slog.Logger,
) *PrintJob {
	return &PrintJob{
		fetcher:   fetcher,
		connector: connector,
		executor:  executor,
		recorder:  recorder,
		logger:    logger,
	}
}

// Run executes the pipeline for one event. A skipped job (printer unreachable)
// returns nil; fetch and print failures are returned as classified errors.
// Cleanup and the journal write happen on every path.
func (j *PrintJob) Run(ctx context.Context, event *core.PrintEvent) error {
	log := j.logger.With("job_id", event.ID, "uri", event.SourceURI)
	rec := &core.JobRecord{
		JobID:     event.ID,
		SourceURI: event.SourceURI,
		StartedAt: time.Now().UTC(),
	}
	var img *core.LocalImage

	// Deferred in reverse: cleanup runs first, then the outcome is recorded.
	defer j.finish(ctx, rec, log)
	defer func() { j.cleanup(rec, img, log) }()

	rec.Stages = append(rec.Stages, core.StageFetching)
	img, err := j.fetcher.Fetch(ctx, event.SourceURI)
	if err != nil {
		markFailed(rec, err)
		return err
	}
	log.Debug("image fetched", "path", img.Path, "bytes", img.Size)

	rec.Stages = append(rec.Stages, core.StageConnecting)
	dev, ok := j.connector.Connect(ctx)
	if !ok {
		rec.Status = core.JobStatusSkipped
		rec.ErrorKind = core.KindConnection
		rec.Error = core.ErrNoDevice.Error()
		log.Warn("printer unreachable, skipping print")
		return nil
	}

	rec.Stages = append(rec.Stages, core.StagePrinting)
	if err := j.executor.Render(ctx, dev, img); err != nil {
		markFailed(rec, err)
		return err
	}

	rec.Status = core.JobStatusPrinted
	return nil
}

func markFailed(rec *core.JobRecord, err error) {
	rec.Status = core.JobStatusFailed
	rec.ErrorKind = core.KindOf(err)
	rec.Error = err.Error()
}

func (j *PrintJob) cleanup(rec *core.JobRecord, img *core.LocalImage, log *slog.Logger) {
	rec.Stages = append(rec.Stages, core.StageCleanup)
	if err := img.Remove(); err != nil {
		cerr := core.CleanupError("remove image", err)
		rec.CleanupError = cerr.Error()
		log.Error("failed to remove local image", "path", img.Path, logger.Error(cerr))
	}
}

// finish closes the record and writes it to the journal. A record with no
// status means the pipeline panicked.
func (j *PrintJob) finish(ctx context.Context, rec *core.JobRecord, log *slog.Logger) {
	if rec.Status == "" {
		rec.Status = core.JobStatusFailed
		rec.Error = "job aborted"
	}
	if rec.Status == core.JobStatusFailed {
		rec.Stages = append(rec.Stages, core.StageFailed)
	} else {
		rec.Stages = append(rec.Stages, core.StageDone)
	}
	rec.FinishedAt = time.Now().UTC()

	if err := j.recorder.RecordJob(context.WithoutCancel(ctx), rec); err != nil {
		log.Error("failed to record job outcome", "error", err)
	}
	log.Info("print job outcome",
		"status", rec.Status,
		"error_kind", rec.ErrorKind,
		"stages", rec.Stages,
		"duration", rec.Duration(),
	)
}
