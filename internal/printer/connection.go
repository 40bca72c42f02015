package printer

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/logger"
)

// Dialer opens network connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// ConnectionManager opens printer sessions with a bounded, fixed-backoff retry.
type ConnectionManager struct {
	address      string
	retries      int
	backoff      time.Duration
	writeTimeout time.Duration
	dialer       Dialer
	logger       *slog.Logger
}

// NewConnectionManager builds a manager for cfg.Address(). A nil dialer uses a
// net.Dialer bounded by cfg.DialTimeout.
func NewConnectionManager(cfg *config.PrinterConfig, dialer Dialer, logger *slog.Logger) *ConnectionManager {
	if dialer == nil {
		dialer = &net.Dialer{Timeout: cfg.DialTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}
	return &ConnectionManager{
		address:      cfg.Address(),
		retries:      retries,
		backoff:      cfg.ConnectBackoff,
		writeTimeout: cfg.WriteTimeout,
		dialer:       dialer,
		logger:       logger,
	}
}

// Connect tries up to retries times, waiting backoff between attempts. When
// every attempt fails it returns (nil, false) instead of an error; callers skip
// printing in that case.
func (m *ConnectionManager) Connect(ctx context.Context) (core.Device, bool) {
	for attempt := 1; attempt <= m.retries; attempt++ {
		conn, err := m.dialer.DialContext(ctx, "tcp", m.address)
		if err == nil {
			m.logger.DebugContext(ctx, "printer connected", "address", m.address, "attempt", attempt)
			return newNetDevice(conn, m.writeTimeout), true
		}

		m.logger.WarnContext(ctx, "printer connection attempt failed",
			"address", m.address,
			"attempt", attempt,
			"max_attempts", m.retries,
			logger.Error(core.ConnectionError("dial", err)),
		)

		if attempt == m.retries {
			break
		}
		select {
		case <-ctx.Done():
			m.logger.WarnContext(ctx, "printer connection abandoned", "address", m.address, "error", ctx.Err())
			return nil, false
		case <-time.After(m.backoff):
		}
	}

	m.logger.ErrorContext(ctx, "printer unreachable, giving up", "address", m.address, "attempts", m.retries)
	return nil, false
}
