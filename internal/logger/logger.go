// Package logger builds the application's slog logger and the attribute helpers
// used to report classified job errors.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/sevigo/print-relay/internal/core"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// NewLogger initializes a new slog logger based on the provided configuration.
// A nil output selects the writer named by cfg.Output.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = OutputWriter(cfg.Output)
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		*level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(handler)
}

// OutputWriter resolves an output name to a writer.
func OutputWriter(name string) io.Writer {
	switch name {
	case "stderr":
		return os.Stderr
	case "file":
		file, err := os.OpenFile("print-relay.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Error returns an "error" group attribute holding the message, the job error
// kind when err is classified, and the innermost captured stack trace if any.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	attrs := []any{slog.String("message", err.Error())}
	if kind := core.KindOf(err); kind != "" {
		attrs = append(attrs, slog.String("kind", string(kind)))
	}
	if st := innermostStack(err); st != nil {
		attrs = append(attrs, slog.Any("stack", formatStack(st)))
	}
	return slog.Group("error", attrs...)
}

func innermostStack(err error) errors.StackTrace {
	var found errors.StackTrace
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			found = st.StackTrace()
		}
		err = errors.Unwrap(err)
	}
	return found
}

func formatStack(st errors.StackTrace) []string {
	frames := make([]string, 0, len(st))
	for _, f := range st {
		frames = append(frames, strings.TrimSpace(fmt.Sprintf("%+v", f)))
	}
	return frames
}
