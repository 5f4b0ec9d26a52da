// Package client implements the orchestrator side of the dedup protocol: it
// connects to every configured node, drives the three-phase round in
// parallel across them, performs local SHA-1 verification of weak-fp
// candidates, assigns misses to nodes, uploads, and reports statistics.
package client

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // protocol-mandated digest, not a security boundary
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/FairForge/chunkstore/internal/chunkerr"
	"github.com/FairForge/chunkstore/internal/chunking"
	"github.com/FairForge/chunkstore/internal/config"
	"github.com/FairForge/chunkstore/internal/netutil"
	"github.com/FairForge/chunkstore/internal/roundctx"
	"github.com/FairForge/chunkstore/internal/weakindex"
	"github.com/FairForge/chunkstore/internal/wire"
)

const defaultMaxFileSize = 100 * 1024 * 1024

// Dialer connects to a node address. Swappable in tests.
type Dialer func(ctx context.Context, addr string) (net.Conn, error)

// Orchestrator drives one dedup round across a fixed set of nodes.
type Orchestrator struct {
	Nodes        []config.NodeConfig
	Logger       *zap.Logger
	MaxFileSize  int64
	RoundTimeout time.Duration
	Dial         Dialer

	// RateLimitBytesPerSec caps each node connection's read and write
	// throughput. Zero (the default) leaves connections unthrottled.
	RateLimitBytesPerSec int
}

// New builds an Orchestrator with production defaults: a 100 MiB file cap,
// a 60s round timeout, and a plain TCP dialer.
func New(nodes []config.NodeConfig, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		Nodes:        nodes,
		Logger:       logger,
		MaxFileSize:  defaultMaxFileSize,
		RoundTimeout: 60 * time.Second,
		Dial: func(ctx context.Context, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "tcp", addr)
		},
	}
}

// Stats is the user-visible report for one round, per §7's statistics block.
type Stats struct {
	FileSize            int64
	ChunkCount          int
	PerNodeMatched      map[int32]int
	PerNodeMatchedBytes map[int32]int64
	PerNodeUploaded     map[int32]int
	PerNodeFailed       map[int32]bool
	UnionMatchedBytes   int64
	RedundancyPercent   float64
	Duration            time.Duration
}

func newStats() *Stats {
	return &Stats{
		PerNodeMatched:      make(map[int32]int),
		PerNodeMatchedBytes: make(map[int32]int64),
		PerNodeUploaded:     make(map[int32]int),
		PerNodeFailed:       make(map[int32]bool),
	}
}

// nodeSession is the per-node state threaded through one round. candidates
// tracks what this node has advertised (weak_fp-only) and later confirms
// (weak_fp+strong_fp, after a verified SHA-1 match).
type nodeSession struct {
	node       config.NodeConfig
	conn       net.Conn
	candidates *weakindex.Index
	failed     bool
	err        error
}

// Run loads path fully into memory, chunks it, and executes one round
// against every configured node, returning a statistics report.
func (o *Orchestrator) Run(ctx context.Context, path string) (*Stats, error) {
	start := time.Now()

	roundID := roundctx.NewRoundID()
	ctx = roundctx.WithRoundID(ctx, roundID)
	logger := o.Logger.With(zap.String("round_id", roundID))

	data, err := readCapped(path, o.MaxFileSize)
	if err != nil {
		return nil, err
	}

	chunks := chunking.Split(data)
	stats := newStats()
	stats.FileSize = int64(len(data))
	stats.ChunkCount = len(chunks)
	logger.Info("round starting",
		zap.String("file", path), zap.Int64("file_size", stats.FileSize), zap.Int("chunk_count", stats.ChunkCount))

	sessions := o.connectAll(ctx)

	var announceErr error
	name := filepath.Base(path)
	var wg sync.WaitGroup
	for _, sess := range sessions {
		if sess.failed {
			continue
		}
		wg.Add(1)
		go func(sess *nodeSession) {
			defer wg.Done()
			if err := o.phaseAnnounce(sess, name, data); err != nil {
				sess.failed = true
				sess.err = err
			}
		}(sess)
	}
	wg.Wait()

	for _, sess := range sessions {
		if sess.failed {
			logger.Warn("node failed during announce", zap.Int32("node_id", sess.node.ID), zap.Error(sess.err))
			announceErr = multierr.Append(announceErr, sess.err)
			stats.PerNodeFailed[sess.node.ID] = true
		}
	}

	fileFPs := make([]uint64, len(chunks))
	for i, c := range chunks {
		fileFPs[i] = c.FP
	}

	verified := make([]bool, len(chunks))
	var verifyErr error
	for _, sess := range sessions {
		if sess.failed {
			continue
		}
		wg.Add(1)
		go func(sess *nodeSession) {
			defer wg.Done()
			if err := o.phaseVerify(sess, chunks, fileFPs, data, verified, stats); err != nil {
				sess.failed = true
				sess.err = err
			}
		}(sess)
	}
	wg.Wait()
	for _, sess := range sessions {
		if sess.failed && sess.err != nil {
			logger.Warn("node failed during verify", zap.Int32("node_id", sess.node.ID), zap.Error(sess.err))
			verifyErr = multierr.Append(verifyErr, sess.err)
			stats.PerNodeFailed[sess.node.ID] = true
		}
	}

	assignments := assignMisses(chunks, verified, len(o.Nodes))

	var ingestErr error
	for _, sess := range sessions {
		wg.Add(1)
		go func(sess *nodeSession) {
			defer wg.Done()
			if sess.failed {
				return
			}
			if err := o.phaseIngest(sess, chunks, data, assignments, stats); err != nil {
				sess.failed = true
				sess.err = err
			}
			_ = sess.conn.Close()
		}(sess)
	}
	wg.Wait()
	for _, sess := range sessions {
		if sess.failed && sess.err != nil {
			logger.Warn("node failed during ingest", zap.Int32("node_id", sess.node.ID), zap.Error(sess.err))
			ingestErr = multierr.Append(ingestErr, sess.err)
			stats.PerNodeFailed[sess.node.ID] = true
		}
	}

	for i := range chunks {
		if verified[i] {
			stats.UnionMatchedBytes += int64(chunks[i].Length)
		}
	}
	if stats.FileSize > 0 {
		stats.RedundancyPercent = 100 * float64(stats.UnionMatchedBytes) / float64(stats.FileSize)
	}
	stats.Duration = time.Since(start)
	logger.Info("round complete",
		zap.Duration("duration", stats.Duration), zap.Float64("redundancy_percent", stats.RedundancyPercent))

	return stats, multierr.Combine(announceErr, verifyErr, ingestErr)
}

func readCapped(path string, max int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, chunkerr.NewIOError("stat", path, err)
	}
	if info.Size() > max {
		return nil, chunkerr.NewResourceError("file-size", int(max))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, chunkerr.NewIOError("open", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, chunkerr.NewIOError("read", path, err)
	}
	return data, nil
}

func (o *Orchestrator) connectAll(ctx context.Context) []*nodeSession {
	sessions := make([]*nodeSession, len(o.Nodes))
	var wg sync.WaitGroup
	for i, n := range o.Nodes {
		sessions[i] = &nodeSession{node: n}
		wg.Add(1)
		go func(i int, n config.NodeConfig) {
			defer wg.Done()
			conn, err := o.Dial(ctx, n.Addr())
			if err != nil {
				sessions[i].failed = true
				sessions[i].err = chunkerr.NewIOError("dial", n.Addr(), err)
				return
			}
			if o.RateLimitBytesPerSec > 0 {
				conn = netutil.NewThrottledConn(conn, o.RateLimitBytesPerSec, o.RateLimitBytesPerSec, o.Logger)
			}
			deadline := time.Now().Add(o.RoundTimeout)
			_ = conn.SetDeadline(deadline)
			sessions[i].conn = conn
		}(i, n)
	}
	wg.Wait()
	return sessions
}

func (o *Orchestrator) phaseAnnounce(sess *nodeSession, name string, data []byte) error {
	conn := sess.conn
	if err := wire.WriteUint32(conn, uint32(len(name))); err != nil {
		return err
	}
	if err := wire.WriteBytes(conn, []byte(name)); err != nil {
		return err
	}
	if err := wire.WriteInt64(conn, int64(len(data))); err != nil {
		return err
	}
	if err := wire.WriteBytes(conn, data); err != nil {
		return err
	}

	records, err := wire.ReadRecords(conn)
	if err != nil {
		return err
	}
	sess.candidates = weakindex.New()
	for _, r := range records {
		sess.candidates.Confirm(r.WeakFP, weakindex.Location{NodeID: r.NodeID})
	}
	return nil
}

// phaseVerify sends the full fingerprint set and this node's candidate
// matches, then reconciles returned digests against locally recomputed
// SHA-1 sums, marking shared `verified` slots true on a match.
func (o *Orchestrator) phaseVerify(sess *nodeSession, chunks []chunking.Chunk, fileFPs []uint64, data []byte, verified []bool, stats *Stats) error {
	conn := sess.conn
	if err := wire.WriteWeakFPs(conn, fileFPs); err != nil {
		return err
	}

	type matchSlot struct {
		chunkIndex int
		record     wire.Record
	}
	var matches []matchSlot
	for i, c := range chunks {
		locs := sess.candidates.Candidates(c.FP)
		if len(locs) == 0 {
			continue
		}
		matches = append(matches, matchSlot{chunkIndex: i, record: wire.Record{WeakFP: c.FP, NodeID: locs[0].NodeID}})
	}

	records := make([]wire.Record, len(matches))
	for i, m := range matches {
		records[i] = m.record
	}
	if err := wire.WriteRecords(conn, records); err != nil {
		return err
	}

	for _, m := range matches {
		digest, err := wire.ReadDigest(conn)
		if err != nil {
			return err
		}
		c := chunks[m.chunkIndex]
		local := sha1.Sum(data[c.Offset : c.Offset+c.Length]) //nolint:gosec
		if digest != [wire.DigestSize]byte{} && bytes.Equal(digest[:], local[:]) {
			verified[m.chunkIndex] = true
			sess.candidates.Confirm(c.FP, weakindex.Location{NodeID: m.record.NodeID, StrongFP: weakindex.StrongFP(local)})
			stats.PerNodeMatched[sess.node.ID]++
			stats.PerNodeMatchedBytes[sess.node.ID] += int64(c.Length)
		}
	}
	return nil
}

// assignMisses implements §4.6 step 9: chunk j, if unmatched everywhere, is
// assigned to node j mod N.
func assignMisses(chunks []chunking.Chunk, verified []bool, n int) map[int][]int {
	assignments := make(map[int][]int)
	if n == 0 {
		return assignments
	}
	for j := range chunks {
		if verified[j] {
			continue
		}
		node := j % n
		assignments[node] = append(assignments[node], j)
	}
	return assignments
}

func (o *Orchestrator) phaseIngest(sess *nodeSession, chunks []chunking.Chunk, data []byte, assignments map[int][]int, stats *Stats) error {
	conn := sess.conn

	nodeIndex := -1
	for i, n := range o.Nodes {
		if n.ID == sess.node.ID {
			nodeIndex = i
			break
		}
	}
	indices := assignments[nodeIndex]

	if err := wire.WriteUint32(conn, uint32(len(indices))); err != nil {
		return err
	}
	for _, idx := range indices {
		c := chunks[idx]
		chunkData := data[c.Offset : c.Offset+c.Length]
		if err := wire.WriteUint64(conn, c.FP); err != nil {
			return err
		}
		if err := wire.WriteUint32(conn, uint32(len(chunkData))); err != nil {
			return err
		}
		if err := wire.WriteBytes(conn, chunkData); err != nil {
			return err
		}
		stats.PerNodeUploaded[sess.node.ID]++
	}
	return nil
}

// Summary renders the statistics block as a human-readable report: file
// size, chunk count, union redundancy, wall time, then one line per node that
// matched, uploaded or failed, with its match count, upload count and failure
// flag. Per-node matched byte totals and the union matched byte total are
// kept in Stats but not printed, and no per-node redundancy is computed; node
// lines are in no particular order.
func (s *Stats) Summary() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "file size:        %d bytes\n", s.FileSize)
	fmt.Fprintf(&b, "chunk count:      %d\n", s.ChunkCount)
	fmt.Fprintf(&b, "union redundancy: %.2f%%\n", s.RedundancyPercent)
	fmt.Fprintf(&b, "wall time:        %s\n", s.Duration)
	ids := make(map[int32]bool)
	for id := range s.PerNodeMatched {
		ids[id] = true
	}
	for id := range s.PerNodeUploaded {
		ids[id] = true
	}
	for id := range s.PerNodeFailed {
		ids[id] = true
	}
	for id := range ids {
		fmt.Fprintf(&b, "node %d: matched=%d uploaded=%d failed=%v\n",
			id, s.PerNodeMatched[id], s.PerNodeUploaded[id], s.PerNodeFailed[id])
	}
	return b.String()
}
