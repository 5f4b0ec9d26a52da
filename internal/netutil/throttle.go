// Package netutil wraps net.Conn with optional bandwidth throttling, used by
// the client to cap outbound chunk traffic per node and by a node to cap what
// it accepts from a single connection.
package netutil

import (
	"context"
	"net"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ThrottledConn rate-limits Read and Write independently. A zero limiter on
// either side means that direction is unthrottled.
type ThrottledConn struct {
	net.Conn
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter
	logger       *zap.Logger
}

// NewThrottledConn wraps conn, limiting each direction to bytesPerSecond. A
// bytesPerSecond of 0 disables throttling for that direction.
func NewThrottledConn(conn net.Conn, readBytesPerSecond, writeBytesPerSecond int, logger *zap.Logger) *ThrottledConn {
	tc := &ThrottledConn{Conn: conn, logger: logger}
	if readBytesPerSecond > 0 {
		tc.readLimiter = rate.NewLimiter(rate.Limit(readBytesPerSecond), readBytesPerSecond)
	}
	if writeBytesPerSecond > 0 {
		tc.writeLimiter = rate.NewLimiter(rate.Limit(writeBytesPerSecond), writeBytesPerSecond)
	}
	return tc
}

func (tc *ThrottledConn) Read(p []byte) (int, error) {
	if tc.readLimiter != nil && len(p) > tc.readLimiter.Burst() {
		p = p[:tc.readLimiter.Burst()]
	}
	n, err := tc.Conn.Read(p)
	if n > 0 && tc.readLimiter != nil {
		if waitErr := tc.readLimiter.WaitN(context.Background(), n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}

func (tc *ThrottledConn) Write(p []byte) (int, error) {
	if tc.writeLimiter == nil {
		return tc.Conn.Write(p)
	}
	written := 0
	for written < len(p) {
		end := written + tc.writeLimiter.Burst()
		if end > len(p) {
			end = len(p)
		}
		n, err := tc.Conn.Write(p[written:end])
		written += n
		if n > 0 {
			if waitErr := tc.writeLimiter.WaitN(context.Background(), n); waitErr != nil {
				return written, waitErr
			}
		}
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// DialThrottled connects to addr over TCP and wraps the connection with the
// given per-direction byte rates.
func DialThrottled(ctx context.Context, addr string, readBytesPerSecond, writeBytesPerSecond int, logger *zap.Logger) (*ThrottledConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewThrottledConn(conn, readBytesPerSecond, writeBytesPerSecond, logger), nil
}
