package wire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/print-relay/internal/app"
	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/db"
	"github.com/sevigo/print-relay/internal/fetcher"
	"github.com/sevigo/print-relay/internal/intake"
	"github.com/sevigo/print-relay/internal/jobs"
	"github.com/sevigo/print-relay/internal/logger"
	"github.com/sevigo/print-relay/internal/printer"
	"github.com/sevigo/print-relay/internal/server"
	"github.com/sevigo/print-relay/internal/storage"
)

// PipelineSet builds a PrintJob and everything it depends on.
var PipelineSet = wire.NewSet(
	config.LoadConfig,
	provideSlogLogger,
	provideJournal,
	provideFetcher,
	provideConnectionManager,
	provideExecutor,
	jobs.NewPrintJob,
	wire.Bind(new(core.ImageFetcher), new(*fetcher.Fetcher)),
	wire.Bind(new(core.DeviceConnector), new(*printer.ConnectionManager)),
	wire.Bind(new(core.PrintExecutor), new(*printer.Executor)),
	wire.Bind(new(core.JobRecorder), new(storage.Store)),
)

// AppSet adds the processor, intake and HTTP surfaces on top of PipelineSet.
var AppSet = wire.NewSet(
	PipelineSet,
	app.NewApp,
	server.NewServer,
	jobs.NewProcessor,
	provideQueueConfig,
	provideSubscriber,
	wire.Bind(new(core.Job), new(*jobs.PrintJob)),
	wire.Bind(new(core.JobDispatcher), new(*jobs.Processor)),
	wire.Bind(new(core.QueueInspector), new(*jobs.Processor)),
	wire.Bind(new(core.JobJournal), new(storage.Store)),
)

// Pipeline is the in-process print path used by relay-cli.
type Pipeline struct {
	Config  *config.Config
	Job     *jobs.PrintJob
	Journal storage.Store
}

func NewPipeline(cfg *config.Config, job *jobs.PrintJob, journal storage.Store) *Pipeline {
	return &Pipeline{Config: cfg, Job: job, Journal: journal}
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}

// provideJournal returns the SQL journal when a database is enabled, otherwise
// the in-memory ring.
func provideJournal(cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	if !cfg.Database.Enabled {
		return storage.NewMemoryStore(cfg.Database.MemoryCapacity), func() {}, nil
	}
	conn, cleanup, err := db.NewDatabase(&cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open job journal: %w", err)
	}
	return storage.NewStore(conn.DB), cleanup, nil
}

func provideFetcher(cfg *config.Config, logger *slog.Logger) *fetcher.Fetcher {
	return fetcher.New(&cfg.Fetcher, nil, logger)
}

func provideConnectionManager(cfg *config.Config, logger *slog.Logger) *printer.ConnectionManager {
	return printer.NewConnectionManager(&cfg.Printer, nil, logger)
}

func provideExecutor(cfg *config.Config, logger *slog.Logger) (*printer.Executor, error) {
	return printer.NewExecutor(&cfg.Printer, logger)
}

func provideQueueConfig(cfg *config.Config) *config.QueueConfig {
	return &cfg.Queue
}

// provideSubscriber returns nil when Redis intake is disabled.
func provideSubscriber(ctx context.Context, cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) (*intake.Subscriber, func(), error) {
	redisCfg := cfg.Intake.Redis
	if !redisCfg.Enabled {
		return nil, func() {}, nil
	}
	rdb := intake.NewRedisClient(&redisCfg)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", redisCfg.Addr, err)
	}
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}
	return intake.NewSubscriber(rdb, redisCfg.Channel, cfg.Fetcher.BaseURL, dispatcher, logger), cleanup, nil
}
