package chunking

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedFastCDC64(t *testing.T) {
	t.Run("empty input emits nothing", func(t *testing.T) {
		// Arrange
		var data []byte

		// Act
		chunks := Split(data)

		// Assert
		assert.Empty(t, chunks)
	})

	t.Run("short tail under MinSize is a single chunk", func(t *testing.T) {
		// Arrange
		data := bytes.Repeat([]byte{0x41}, 4096)

		// Act
		chunks := Split(data)

		// Assert
		require.Len(t, chunks, 1)
		assert.Equal(t, 4096, chunks[0].Length)
		assert.Equal(t, 0, chunks[0].Offset)
	})

	t.Run("reassembly and size bounds hold over random data", func(t *testing.T) {
		// Arrange
		rng := rand.New(rand.NewSource(42))
		data := make([]byte, 10*1024*1024)
		_, _ = rng.Read(data)

		// Act
		chunks := Split(data)

		// Assert
		offset := 0
		for i, c := range chunks {
			require.Equal(t, offset, c.Offset)
			if i != len(chunks)-1 {
				assert.GreaterOrEqual(t, c.Length, MinSize, "interior chunk too small")
			}
			assert.LessOrEqual(t, c.Length, MaxSize, "chunk exceeds MaxSize")
			offset += c.Length
		}
		assert.Equal(t, len(data), offset, "concatenation must equal original length")
	})

	t.Run("deterministic across repeated invocations", func(t *testing.T) {
		// Arrange
		rng := rand.New(rand.NewSource(7))
		data := make([]byte, 512*1024)
		_, _ = rng.Read(data)

		// Act
		first := Split(data)
		second := Split(data)

		// Assert
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i], second[i])
		}
	})

	t.Run("boundary stability under insertion away from the edit", func(t *testing.T) {
		// Arrange
		rng := rand.New(rand.NewSource(99))
		original := make([]byte, 1024*1024)
		_, _ = rng.Read(original)

		insertAt := 512 * 1024
		inserted := make([]byte, 256)
		_, _ = rng.Read(inserted)
		edited := append(append(append([]byte{}, original[:insertAt]...), inserted...), original[insertAt:]...)

		// Act
		before := Split(original)
		after := Split(edited)

		// Assert: boundaries near the very end of the file (far past the
		// edit once MaxSize worth of resynchronization has happened) match
		// up to a constant length shift.
		var beforeTailOffsets, afterTailOffsets []int
		for _, c := range before {
			if c.Offset > insertAt+2*MaxSize {
				beforeTailOffsets = append(beforeTailOffsets, c.Offset)
			}
		}
		for _, c := range after {
			if c.Offset > insertAt+2*MaxSize+len(inserted) {
				afterTailOffsets = append(afterTailOffsets, c.Offset-len(inserted))
			}
		}
		require.NotEmpty(t, beforeTailOffsets)
		require.NotEmpty(t, afterTailOffsets)
		assert.Equal(t, beforeTailOffsets, afterTailOffsets, "boundaries beyond the recovery distance should re-sync")
	})

	t.Run("weak_fp collisions do not imply equal content", func(t *testing.T) {
		// Two distinct buffers can legally share a weak_fp; strong_fp
		// (computed elsewhere) is what the protocol trusts. This test only
		// asserts the chunker doesn't itself claim content equality from fp
		// equality — it has no opinion on content at all.
		a := bytes.Repeat([]byte{0x01}, 8192)
		b := bytes.Repeat([]byte{0x02}, 8192)

		chunksA := Split(a)
		chunksB := Split(b)

		require.Len(t, chunksA, 1)
		require.Len(t, chunksB, 1)
		assert.NotEqual(t, a, b)
	})
}

func TestSplitFunctionUsesDefaultStrategy(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox "), 2000)

	direct := NormalizedFastCDC64{}.Split(data)
	viaHelper := Split(data)

	assert.Equal(t, direct, viaHelper)
}
