// Package chunkstore implements the node-local, content-addressed directory
// store: one flat directory of %016x.chunk files, each written atomically via
// a temp file and rename so a crash mid-write never leaves a partial chunk
// visible under its final name.
package chunkstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/FairForge/chunkstore/internal/chunkerr"
)

// Compressor compresses and decompresses chunk bytes before they touch disk.
// A node can run with compression disabled by passing NoopCompressor.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// NoopCompressor writes chunks uncompressed.
type NoopCompressor struct{}

func (NoopCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoopCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

// Store is a single node's on-disk chunk directory.
type Store struct {
	dir        string
	compressor Compressor
	logger     *zap.Logger
	fsync      bool
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithCompressor overrides the default NoopCompressor.
func WithCompressor(c Compressor) Option {
	return func(s *Store) { s.compressor = c }
}

// WithFsync forces an fsync of the temp file before rename. Off by default;
// a storage round that crashes mid-write is recovered by re-running Ingest,
// not by durability guarantees the spec never asked for.
func WithFsync(enabled bool) Option {
	return func(s *Store) { s.fsync = enabled }
}

// New creates a Store rooted at dir, creating it if necessary.
func New(dir string, logger *zap.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, chunkerr.NewIOError("mkdir", dir, err)
	}
	s := &Store{dir: dir, compressor: NoopCompressor{}, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) path(fp uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%016x.chunk", fp))
}

// Exists reports whether a chunk with the given fingerprint is already held.
func (s *Store) Exists(fp uint64) bool {
	_, err := os.Stat(s.path(fp))
	return err == nil
}

// Read loads and decompresses a chunk's bytes.
func (s *Store) Read(ctx context.Context, fp uint64) ([]byte, error) {
	raw, err := os.ReadFile(s.path(fp))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, chunkerr.NewIOError("read", s.path(fp), chunkerr.ErrShortRead)
		}
		return nil, chunkerr.NewIOError("read", s.path(fp), err)
	}
	return s.compressor.Decompress(raw)
}

// Write compresses and atomically stores data under fp, via a temp file in
// the same directory followed by rename so readers never observe a partial
// chunk. Writing the same fp twice replaces the first call's data with the
// second's.
func (s *Store) Write(ctx context.Context, fp uint64, data []byte) error {
	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return chunkerr.Wrap(err, "compress chunk")
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return chunkerr.NewIOError("create-temp", s.dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(compressed); err != nil {
		_ = tmp.Close()
		return chunkerr.NewIOError("write", tmpPath, err)
	}

	if s.fsync {
		if err := unix.Fsync(int(tmp.Fd())); err != nil {
			_ = tmp.Close()
			return chunkerr.NewIOError("fsync", tmpPath, err)
		}
	}

	if err := tmp.Close(); err != nil {
		return chunkerr.NewIOError("close", tmpPath, err)
	}

	finalPath := s.path(fp)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return chunkerr.NewIOError("rename", finalPath, err)
	}
	tmpPath = ""

	s.logger.Debug("chunk written", zap.Uint64("fp", fp), zap.Int("bytes", len(compressed)))
	return nil
}

// Delete removes a single chunk by fingerprint. It is idempotent: deleting a
// fingerprint that is already absent is not an error.
func (s *Store) Delete(ctx context.Context, fp uint64) error {
	if err := os.Remove(s.path(fp)); err != nil && !os.IsNotExist(err) {
		return chunkerr.NewIOError("delete", s.path(fp), err)
	}
	return nil
}

// List returns every fingerprint currently held, parsed from filenames.
// Unrecognized entries (not matching %016x.chunk) are skipped, not errored —
// a stray file left by an operator should not break reclaim.
func (s *Store) List(ctx context.Context) ([]uint64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, chunkerr.NewIOError("readdir", s.dir, err)
	}

	fps := make([]uint64, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".chunk") || strings.HasPrefix(name, ".") {
			continue
		}
		hexPart := strings.TrimSuffix(name, ".chunk")
		if len(hexPart) != 16 || strings.ToLower(hexPart) != hexPart {
			continue
		}
		fp, err := strconv.ParseUint(hexPart, 16, 64)
		if err != nil {
			continue
		}
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })
	return fps, nil
}
