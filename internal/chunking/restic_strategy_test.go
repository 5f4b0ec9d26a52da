package chunking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResticRabinStrategy(t *testing.T) {
	t.Run("rejects invalid bounds", func(t *testing.T) {
		_, err := NewResticRabinStrategy(0, 100)
		assert.Error(t, err)

		_, err = NewResticRabinStrategy(100, 10)
		assert.Error(t, err)
	})

	t.Run("splits data into contiguous chunks covering the whole input", func(t *testing.T) {
		// Arrange
		strategy, err := NewResticRabinStrategy(512*1024, 8*1024*1024)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(1))
		data := make([]byte, 4*1024*1024)
		_, _ = rng.Read(data)

		// Act
		chunks := strategy.Split(data)

		// Assert
		offset := 0
		for _, c := range chunks {
			assert.Equal(t, offset, c.Offset)
			offset += c.Length
		}
		assert.Equal(t, len(data), offset)
	})
}
