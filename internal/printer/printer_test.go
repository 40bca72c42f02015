package printer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDialer struct {
	mu       sync.Mutex
	failures int
	calls    []time.Time
}

func (d *fakeDialer) DialContext(_ context.Context, _, _ string) (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, time.Now())
	if len(d.calls) <= d.failures {
		return nil, errors.New("connection refused")
	}
	client, server := net.Pipe()
	go func() { _, _ = io.Copy(io.Discard, server) }()
	return client, nil
}

func printerConfig(retries int, backoff time.Duration) *config.PrinterConfig {
	return &config.PrinterConfig{
		Host:           "printer.test",
		Port:           9100,
		ConnectRetries: retries,
		ConnectBackoff: backoff,
		WriteTimeout:   time.Second,
		ImageMode:      "D24",
		MaxWidth:       16,
		CutMode:        "partial",
		FeedLines:      3,
	}
}

func TestConnect_ExhaustsRetries(t *testing.T) {
	dialer := &fakeDialer{failures: 100}
	backoff := 40 * time.Millisecond
	m := NewConnectionManager(printerConfig(3, backoff), dialer, testLogger)

	dev, ok := m.Connect(context.Background())

	assert.False(t, ok)
	assert.Nil(t, dev)
	require.Len(t, dialer.calls, 3, "exactly retries attempts")
	for i := 1; i < len(dialer.calls); i++ {
		assert.GreaterOrEqual(t, dialer.calls[i].Sub(dialer.calls[i-1]), backoff, "backoff between attempts")
	}
}

func TestConnect_SucceedsAfterFailures(t *testing.T) {
	dialer := &fakeDialer{failures: 2}
	m := NewConnectionManager(printerConfig(3, time.Millisecond), dialer, testLogger)

	dev, ok := m.Connect(context.Background())
	require.True(t, ok)
	require.NotNil(t, dev)
	assert.Len(t, dialer.calls, 3)
	assert.NoError(t, dev.Close())
}

func TestConnect_FirstAttemptNoBackoff(t *testing.T) {
	dialer := &fakeDialer{}
	m := NewConnectionManager(printerConfig(3, time.Hour), dialer, testLogger)

	dev, ok := m.Connect(context.Background())
	require.True(t, ok)
	assert.Len(t, dialer.calls, 1)
	_ = dev.Close()
}

func TestConnect_ContextCancelledDuringBackoff(t *testing.T) {
	dialer := &fakeDialer{failures: 100}
	m := NewConnectionManager(printerConfig(3, time.Hour), dialer, testLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	dev, ok := m.Connect(ctx)
	assert.False(t, ok)
	assert.Nil(t, dev)
	assert.Len(t, dialer.calls, 1)
}

func TestConnect_RealListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	cfg := printerConfig(1, 0)
	cfg.Host = "127.0.0.1"
	cfg.Port = addr.Port
	cfg.DialTimeout = time.Second

	dev, ok := NewConnectionManager(cfg, nil, testLogger).Connect(context.Background())
	require.True(t, ok)
	require.NoError(t, dev.Write(context.Background(), []byte("hello")))
	require.NoError(t, dev.Close())
	require.NoError(t, dev.Close(), "close is idempotent")
	assert.ErrorIs(t, dev.Write(context.Background(), []byte("x")), ErrDeviceClosed)

	select {
	case data := <-received:
		assert.Equal(t, "hello", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("printer did not receive data")
	}
}

type recordingDevice struct {
	buf      bytes.Buffer
	writes   int
	failAt   int
	closes   int
	writeErr error
}

func (d *recordingDevice) Write(_ context.Context, data []byte) error {
	d.writes++
	if d.failAt > 0 && d.writes == d.failAt {
		return d.writeErr
	}
	d.buf.Write(data)
	return nil
}

func (d *recordingDevice) Close() error {
	d.closes++
	return nil
}

func writePNG(t *testing.T, w, h int) *core.LocalImage {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.Gray{Y: 255})
		}
	}
	img.Set(0, 0, color.Gray{Y: 0})

	path := filepath.Join(t.TempDir(), "receipt.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return &core.LocalImage{Path: path}
}

func TestRender_Success(t *testing.T) {
	exec, err := NewExecutor(printerConfig(3, 0), testLogger)
	require.NoError(t, err)

	dev := &recordingDevice{}
	err = exec.Render(context.Background(), dev, writePNG(t, 8, 24))
	require.NoError(t, err)

	out := dev.buf.Bytes()
	assert.Equal(t, 1, dev.closes)
	assert.Equal(t, 3, dev.writes)
	assert.True(t, bytes.HasPrefix(out, []byte{0x1b, '@', 0x1b, 'a', 1}), "init + center")
	assert.True(t, bytes.Contains(out, []byte{0x1b, '*', 33, 8, 0}), "D24 band header")
	assert.True(t, bytes.HasSuffix(out, []byte{0x1b, 'd', 3, 0x1d, 'V', 1}), "feed + partial cut")
}

func TestRender_ScalesToMaxWidth(t *testing.T) {
	exec, err := NewExecutor(printerConfig(3, 0), testLogger)
	require.NoError(t, err)

	dev := &recordingDevice{}
	require.NoError(t, exec.Render(context.Background(), dev, writePNG(t, 64, 32)))
	// 64x32 scaled to max width 16 -> 16x8, a single D24 band of 16 columns.
	assert.True(t, bytes.Contains(dev.buf.Bytes(), []byte{0x1b, '*', 33, 16, 0}))
}

func TestRender_FailuresCloseDevice(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
		image  func(t *testing.T) *core.LocalImage
	}{
		{name: "alignment write fails", failAt: 1, image: func(t *testing.T) *core.LocalImage { return writePNG(t, 8, 8) }},
		{name: "image transfer fails", failAt: 2, image: func(t *testing.T) *core.LocalImage { return writePNG(t, 8, 8) }},
		{name: "cut fails", failAt: 3, image: func(t *testing.T) *core.LocalImage { return writePNG(t, 8, 8) }},
		{name: "undecodable image", image: func(t *testing.T) *core.LocalImage {
			path := filepath.Join(t.TempDir(), "bad.jpg")
			require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))
			return &core.LocalImage{Path: path}
		}},
		{name: "missing file", image: func(t *testing.T) *core.LocalImage {
			return &core.LocalImage{Path: filepath.Join(t.TempDir(), "gone.png")}
		}},
		{name: "declared size over pixel cap", image: writeHugeGIFHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, err := NewExecutor(printerConfig(3, 0), testLogger)
			require.NoError(t, err)

			dev := &recordingDevice{failAt: tt.failAt, writeErr: errors.New("broken pipe")}
			err = exec.Render(context.Background(), dev, tt.image(t))

			require.Error(t, err)
			assert.Equal(t, core.KindPrint, core.KindOf(err))
			assert.Equal(t, 1, dev.closes, "device must be closed on the error path")
		})
	}
}

// writeHugeGIFHeader writes a GIF whose screen descriptor claims 65535x65535
// pixels; only the header is present.
func writeHugeGIFHeader(t *testing.T) *core.LocalImage {
	t.Helper()
	header := []byte("GIF89a")
	header = append(header, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00)
	path := filepath.Join(t.TempDir(), "huge.gif")
	require.NoError(t, os.WriteFile(path, header, 0o600))
	return &core.LocalImage{Path: path}
}

func TestRender_RejectsOversizedImageBeforeWriting(t *testing.T) {
	exec, err := NewExecutor(printerConfig(3, 0), testLogger)
	require.NoError(t, err)

	dev := &recordingDevice{}
	err = exec.Render(context.Background(), dev, writeHugeGIFHeader(t))
	require.Error(t, err)
	assert.Equal(t, core.KindPrint, core.KindOf(err))
	assert.Contains(t, err.Error(), "exceeds")
	assert.Zero(t, dev.writes)
	assert.Equal(t, 1, dev.closes)
}

func TestNewExecutor_InvalidMode(t *testing.T) {
	cfg := printerConfig(3, 0)
	cfg.ImageMode = "D48"
	_, err := NewExecutor(cfg, testLogger)
	assert.Error(t, err)
}
