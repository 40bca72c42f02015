// Package app initializes and orchestrates the main components of print-relay.
// It wires together the configuration, server, intake and the print processor.
package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/intake"
	"github.com/sevigo/print-relay/internal/jobs"
	"github.com/sevigo/print-relay/internal/server"
)

// App holds the main application components.
type App struct {
	cfg        *config.Config
	server     *server.Server
	processor  *jobs.Processor
	subscriber *intake.Subscriber // nil when Redis intake is disabled
	logger     *slog.Logger

	intakeCtx  context.Context
	stopIntake context.CancelFunc
}

// NewApp sets up the application with all its dependencies.
func NewApp(
	ctx context.Context,
	cfg *config.Config,
	srv *server.Server,
	processor *jobs.Processor,
	subscriber *intake.Subscriber,
	logger *slog.Logger,
) *App {
	intakeCtx, stopIntake := context.WithCancel(ctx)
	return &App{
		cfg:        cfg,
		server:     srv,
		processor:  processor,
		subscriber: subscriber,
		logger:     logger,
		intakeCtx:  intakeCtx,
		stopIntake: stopIntake,
	}
}

// Start runs the HTTP server and, when enabled, the Redis subscriber. It blocks
// until both have stopped; a failure of either shuts the other down.
func (a *App) Start() error {
	a.logger.Info("starting print-relay",
		"server_port", a.cfg.Server.Port,
		"printer", a.cfg.Printer.Address(),
		"redis_intake", a.subscriber != nil,
		"journal", journalKind(a.cfg),
	)

	g, gctx := errgroup.WithContext(a.intakeCtx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			a.logger.Error("failed to start HTTP server", "error", err)
			return err
		}
		return nil
	})

	if a.subscriber != nil {
		g.Go(func() error {
			return a.subscriber.Run(gctx)
		})
	}

	// Shut the server down once intake is cancelled or a component fails.
	g.Go(func() error {
		<-gctx.Done()
		return a.server.Stop()
	})

	return g.Wait()
}

// Stop shuts down the application cleanly: the HTTP server first to prevent new
// requests, then the subscriber, then the processor drains its queue.
func (a *App) Stop() error {
	a.logger.Info("shutting down print-relay services")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Continue to stop other components even if the server failed.
	}

	a.stopIntake()

	// Queued jobs still run to completion.
	a.processor.Stop()

	if serverErr != nil {
		a.logger.Error("print-relay stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("print-relay stopped successfully")
	return nil
}

func journalKind(cfg *config.Config) string {
	if cfg.Database.Enabled {
		return cfg.Database.Driver
	}
	return "memory"
}
