// Package printer manages the TCP session with the receipt printer and renders
// images onto it.
package printer

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"
)

var ErrDeviceClosed = errors.New("device is closed")

// netDevice is a core.Device backed by a TCP connection.
type netDevice struct {
	conn         net.Conn
	writeTimeout time.Duration

	mu       sync.Mutex
	closed   bool
	closeErr error
}

func newNetDevice(conn net.Conn, writeTimeout time.Duration) *netDevice {
	return &netDevice{conn: conn, writeTimeout: writeTimeout}
}

// Write sends data with a deadline of writeTimeout, or the context deadline if
// that comes first.
func (d *netDevice) Write(ctx context.Context, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDeviceClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var deadline time.Time
	if d.writeTimeout > 0 {
		deadline = time.Now().Add(d.writeTimeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	_ = d.conn.SetWriteDeadline(deadline)

	_, err := d.conn.Write(data)
	return err
}

// Close releases the connection. Later calls return the first result.
func (d *netDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.closeErr
	}
	d.closed = true
	d.closeErr = d.conn.Close()
	return d.closeErr
}
