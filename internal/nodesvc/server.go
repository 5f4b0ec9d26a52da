// Package nodesvc implements the storage node side of the three-phase
// dedup protocol: one TCP listener, one worker goroutine per connection,
// each round executing Announce, Verify, then Ingest against a single
// shared chunk store.
package nodesvc

import (
	"context"
	"crypto/sha1" //nolint:gosec // protocol-mandated digest, not a security boundary
	"net"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/FairForge/chunkstore/internal/chunkerr"
	"github.com/FairForge/chunkstore/internal/chunkstore"
	"github.com/FairForge/chunkstore/internal/netutil"
	"github.com/FairForge/chunkstore/internal/reclaim"
	"github.com/FairForge/chunkstore/internal/roundctx"
	"github.com/FairForge/chunkstore/internal/wire"
)

const (
	defaultRoundTimeout = 60 * time.Second
	maxChunkSize        = 32 * 1024 * 1024
	defaultMaxConns     = 64
)

// Server is one node's protocol endpoint: a numeric identity, its chunk
// store, and the bookkeeping needed to run concurrent rounds against it.
type Server struct {
	ID           int32
	Store        *chunkstore.Store
	Logger       *zap.Logger
	Metrics      *Metrics
	RoundTimeout time.Duration
	MaxConns     int

	// RateLimitBytesPerSec caps each accepted connection's read and write
	// throughput. Zero (the default) leaves connections unthrottled.
	RateLimitBytesPerSec int

	connSlots chan struct{}
}

// NewServer builds a Server ready to Serve connections.
func NewServer(id int32, store *chunkstore.Store, logger *zap.Logger, metrics *Metrics) *Server {
	s := &Server{
		ID:           id,
		Store:        store,
		Logger:       logger,
		Metrics:      metrics,
		RoundTimeout: defaultRoundTimeout,
		MaxConns:     defaultMaxConns,
	}
	s.connSlots = make(chan struct{}, s.MaxConns)
	return s
}

// Listen binds addr, returning the listener so callers (such as tests picking
// an ephemeral port with ":0") can learn the bound address before serving.
func (s *Server) Listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, chunkerr.NewIOError("listen", addr, err)
	}
	return ln, nil
}

// ListenAndServe binds addr and serves connections until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := s.Listen(ctx, addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is canceled, running one
// protocol round per connection on its own goroutine.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	s.Logger.Info("node listening", zap.String("addr", ln.Addr().String()), zap.Int32("node_id", s.ID))

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return chunkerr.NewIOError("accept", ln.Addr().String(), err)
			}
		}
		if s.RateLimitBytesPerSec > 0 {
			conn = netutil.NewThrottledConn(conn, s.RateLimitBytesPerSec, s.RateLimitBytesPerSec, s.Logger)
		}

		select {
		case s.connSlots <- struct{}{}:
			go func() {
				defer func() { <-s.connSlots }()
				s.handleConn(ctx, conn)
			}()
		default:
			s.Logger.Warn("rejecting connection: node at capacity",
				zap.Int("max_conns", s.MaxConns))
			_ = conn.Close()
		}
	}
}

// handleConn executes exactly one protocol round and closes the connection.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	roundID := roundctx.NewRoundID()
	ctx = roundctx.WithRoundID(ctx, roundID)
	logger := s.Logger.With(zap.String("round_id", roundID), zap.Int32("node_id", s.ID))

	if err := conn.SetDeadline(start.Add(s.RoundTimeout)); err != nil {
		logger.Warn("set deadline failed", zap.Error(err))
	}

	result := "completed"
	if err := s.runRound(ctx, conn, logger); err != nil {
		result = "aborted"
		logger.Warn("round aborted", zap.Error(err))
	}

	if s.Metrics != nil {
		s.Metrics.RoundsTotal.WithLabelValues(result).Inc()
		s.Metrics.RoundDuration.Observe(time.Since(start).Seconds())
	}
}

func (s *Server) runRound(ctx context.Context, conn net.Conn, logger *zap.Logger) error {
	if err := s.phaseAnnounce(ctx, conn); err != nil {
		return chunkerr.Wrap(err, "announce")
	}

	fileFPs, matches, err := s.phaseVerify(ctx, conn)
	if err != nil {
		return chunkerr.Wrap(err, "verify")
	}

	uploaded, writeErr := s.phaseIngest(ctx, conn)
	if writeErr != nil {
		logger.Warn("ingest had write failures", zap.Error(writeErr))
	}

	if len(uploaded) > 0 || len(matches) > 0 {
		keep := make([]uint64, 0, len(fileFPs)+len(uploaded))
		keep = append(keep, fileFPs...)
		keep = append(keep, uploaded...)
		reclaimed, err := reclaim.Execute(ctx, s.Store, keep)
		if err != nil {
			logger.Warn("reclaim had failures", zap.Error(err))
		}
		if s.Metrics != nil {
			s.Metrics.ChunksReclaimedTotal.Add(float64(len(reclaimed)))
		}
	}

	return writeErr
}

// phaseAnnounce implements §4.5 Phase A.
func (s *Server) phaseAnnounce(ctx context.Context, conn net.Conn) error {
	nameLen, err := wire.ReadUint32(conn)
	if err != nil {
		return err
	}
	if _, err := wire.ReadBytes(conn, int(nameLen)); err != nil {
		return err
	}

	fileSize, err := wire.ReadInt64(conn)
	if err != nil {
		return err
	}
	if fileSize < 0 {
		return chunkerr.NewProtocolError("announce", "negative file_size")
	}
	if err := wire.Discard(conn, fileSize); err != nil {
		return err
	}

	held, err := s.Store.List(ctx)
	if err != nil {
		return err
	}
	records := make([]wire.Record, len(held))
	for i, fp := range held {
		records[i] = wire.Record{WeakFP: fp, NodeID: s.ID}
	}
	return wire.WriteRecords(conn, records)
}

// phaseVerify implements §4.5 Phase B. It returns the client's full file
// fingerprint set (needed later for reclaim) and the match records it
// verified against.
func (s *Server) phaseVerify(ctx context.Context, conn net.Conn) ([]uint64, []wire.Record, error) {
	fileFPs, err := wire.ReadWeakFPs(conn)
	if err != nil {
		return nil, nil, err
	}

	matches, err := wire.ReadRecords(conn)
	if err != nil {
		return nil, nil, err
	}

	for _, match := range matches {
		var digest [wire.DigestSize]byte
		if s.Store.Exists(match.WeakFP) {
			data, readErr := s.Store.Read(ctx, match.WeakFP)
			if readErr == nil {
				digest = sha1.Sum(data) //nolint:gosec
				if s.Metrics != nil {
					s.Metrics.ChunksMatchedTotal.Inc()
				}
			}
		}
		if err := wire.WriteDigest(conn, digest); err != nil {
			return nil, nil, err
		}
	}

	return fileFPs, matches, nil
}

// phaseIngest implements §4.5 Phase C. It returns the fingerprints it
// accepted and aggregates any per-chunk write failures without aborting the
// rest of the round.
func (s *Server) phaseIngest(ctx context.Context, conn net.Conn) (uploaded []uint64, err error) {
	uploadCount, rerr := wire.ReadUint32(conn)
	if rerr != nil {
		return nil, rerr
	}

	for i := uint32(0); i < uploadCount; i++ {
		fp, rerr := wire.ReadUint64(conn)
		if rerr != nil {
			return uploaded, rerr
		}
		chunkSize, rerr := wire.ReadUint32(conn)
		if rerr != nil {
			return uploaded, rerr
		}
		if chunkSize == 0 || chunkSize > maxChunkSize {
			return uploaded, chunkerr.NewProtocolError("ingest", "chunk_size out of bounds")
		}
		data, rerr := wire.ReadBytes(conn, int(chunkSize))
		if rerr != nil {
			return uploaded, rerr
		}

		if writeErr := s.Store.Write(ctx, fp, data); writeErr != nil {
			err = multierr.Append(err, writeErr)
			continue
		}
		uploaded = append(uploaded, fp)
		if s.Metrics != nil {
			s.Metrics.ChunksUploadedTotal.Inc()
			s.Metrics.BytesUploadedTotal.Add(float64(chunkSize))
		}
	}

	return uploaded, err
}
