// cmd/node/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/chunkstore/internal/chunkstore"
	"github.com/FairForge/chunkstore/internal/config"
	"github.com/FairForge/chunkstore/internal/nodesvc"
)

const defaultPort = 9000

// Storage directory is fixed by build configuration per §6; operators
// override it with CHUNKSTORE_DATA_DIR rather than a CLI flag.
const defaultDataDir = "/var/lib/chunkstore/node"

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	rateLimit := flag.Int("rate-limit", 0, "per-connection bandwidth cap in bytes/sec (0 = unlimited)")
	flag.Parse()

	port := defaultPort
	if args := flag.Args(); len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fatal("invalid port argument", zap.String("arg", args[0]), zap.Error(err))
		}
		port = p
	}

	nodeID := int32(0)
	if idStr := config.GetEnvOrDefault("CHUNKSTORE_NODE_ID", ""); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			logger.Fatal("invalid CHUNKSTORE_NODE_ID", zap.String("value", idStr), zap.Error(err))
		}
		nodeID = int32(id)
	}

	dataDir := config.GetEnvOrDefault("CHUNKSTORE_DATA_DIR", defaultDataDir)
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		logger.Fatal("failed to create storage directory", zap.String("dir", dataDir), zap.Error(err))
	}

	var opts []chunkstore.Option
	if config.GetEnvOrDefault("CHUNKSTORE_FSYNC", "") == "1" {
		opts = append(opts, chunkstore.WithFsync(true))
	}

	store, err := chunkstore.New(dataDir, logger, opts...)
	if err != nil {
		logger.Fatal("failed to open chunk store", zap.Error(err))
	}

	watcher, err := chunkstore.WatchDir(dataDir, logger)
	if err != nil {
		logger.Warn("diagnostic directory watch disabled", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	metrics := nodesvc.NewMetrics()
	srv := nodesvc.NewServer(nodeID, store, logger, metrics)
	srv.RateLimitBytesPerSec = *rateLimit

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf("0.0.0.0:%d", port)
	httpAddr := config.GetEnvOrDefault("CHUNKSTORE_DIAG_ADDR", fmt.Sprintf("0.0.0.0:%d", port+1))

	httpServer := &http.Server{Addr: httpAddr, Handler: srv.DiagnosticsMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("diagnostics listening", zap.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("diagnostics server failed", zap.Error(err))
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down node")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
		cancel()
	}()

	logger.Info("node starting",
		zap.Int32("node_id", nodeID),
		zap.String("addr", addr),
		zap.String("data_dir", dataDir))

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Fatal("node server failed", zap.Error(err))
	}
}
