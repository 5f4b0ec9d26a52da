package netutil

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestThrottledConn(t *testing.T) {
	t.Run("throttles reads to roughly the configured rate", func(t *testing.T) {
		// Arrange
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()

		// The limiter starts with a full one-second burst, so the first
		// 5 KiB pass at once and only the second 5 KiB are paced.
		dataSize := 10 * 1024
		data := make([]byte, dataSize)
		for i := range data {
			data[i] = byte(i % 256)
		}
		go func() {
			_, _ = server.Write(data)
		}()

		throttled := NewThrottledConn(client, 5*1024, 0, zap.NewNop())

		// Act
		start := time.Now()
		buf := make([]byte, 512)
		total := 0
		for total < dataSize {
			n, err := throttled.Read(buf)
			total += n
			if err != nil {
				break
			}
		}
		duration := time.Since(start)

		// Assert
		assert.Equal(t, dataSize, total)
		assert.GreaterOrEqual(t, duration.Seconds(), 0.5, "read too fast for 5KB/s limit")
	})

	t.Run("zero rate leaves a direction unthrottled", func(t *testing.T) {
		// Arrange
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()

		go func() {
			_, _ = server.Write([]byte("hello"))
		}()
		throttled := NewThrottledConn(client, 0, 0, zap.NewNop())

		// Act
		buf := make([]byte, 5)
		n, err := throttled.Read(buf)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})
}
