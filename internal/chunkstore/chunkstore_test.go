package chunkstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type zstdCompressor struct{}

func (zstdCompressor) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func (zstdCompressor) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

func TestStore(t *testing.T) {
	t.Run("write then read round-trips the same bytes", func(t *testing.T) {
		// Arrange
		store, err := New(t.TempDir(), zap.NewNop())
		require.NoError(t, err)
		data := []byte("chunk payload")

		// Act
		err = store.Write(context.Background(), 0xdeadbeef, data)
		require.NoError(t, err)
		got, err := store.Read(context.Background(), 0xdeadbeef)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("exists reflects writes and deletes", func(t *testing.T) {
		// Arrange
		store, err := New(t.TempDir(), zap.NewNop())
		require.NoError(t, err)

		// Act / Assert
		assert.False(t, store.Exists(1))
		require.NoError(t, store.Write(context.Background(), 1, []byte("x")))
		assert.True(t, store.Exists(1))
		require.NoError(t, store.Delete(context.Background(), 1))
		assert.False(t, store.Exists(1))
	})

	t.Run("deleting a missing fingerprint is not an error", func(t *testing.T) {
		store, err := New(t.TempDir(), zap.NewNop())
		require.NoError(t, err)

		assert.NoError(t, store.Delete(context.Background(), 999))
	})

	t.Run("filenames are zero-padded 16-hex-digit fingerprints", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		store, err := New(dir, zap.NewNop())
		require.NoError(t, err)

		// Act
		require.NoError(t, store.Write(context.Background(), 0xAB, []byte("x")))

		// Assert
		_, statErr := os.Stat(filepath.Join(dir, "00000000000000ab.chunk"))
		assert.NoError(t, statErr)
	})

	t.Run("list returns every held fingerprint sorted, ignoring stray files", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		store, err := New(dir, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), 5, []byte("a")))
		require.NoError(t, store.Write(context.Background(), 1, []byte("b")))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "not-a-chunk.txt"), []byte("x"), 0o600))

		// Act
		fps, err := store.List(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 5}, fps)
	})

	t.Run("write leaves no temp file behind in the directory", func(t *testing.T) {
		// The write path always goes through a temp file in the same
		// directory, then rename; once Write returns no .tmp- file remains.
		dir := t.TempDir()
		store, err := New(dir, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, store.Write(context.Background(), 2, []byte("y")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, filepathHasTmpPrefix(e.Name()))
		}
	})

	t.Run("compressor applies transparently across write and read", func(t *testing.T) {
		// Arrange
		store, err := New(t.TempDir(), zap.NewNop(), WithCompressor(zstdCompressor{}))
		require.NoError(t, err)
		data := []byte("compressible compressible compressible compressible")

		// Act
		require.NoError(t, store.Write(context.Background(), 77, data))
		got, err := store.Read(context.Background(), 77)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("reading an absent chunk fails", func(t *testing.T) {
		store, err := New(t.TempDir(), zap.NewNop())
		require.NoError(t, err)

		_, err = store.Read(context.Background(), 42)
		assert.Error(t, err)
	})
}

func filepathHasTmpPrefix(name string) bool {
	return len(name) >= 5 && name[:5] == ".tmp-"
}
