// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/FairForge/chunkstore/internal/client"
	"github.com/FairForge/chunkstore/internal/config"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	rateLimit := flag.Int("rate-limit", 0, "per-connection bandwidth cap in bytes/sec (0 = unlimited)")
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: client [-rate-limit bytes/sec] <file> | client [-rate-limit bytes/sec] <old_file> <new_file>")
		os.Exit(1)
	}

	clusterPath := config.GetEnvOrDefault("CHUNKSTORE_CLUSTER_FILE", "cluster.conf")
	cluster, err := config.Load(clusterPath)
	if err != nil {
		logger.Fatal("failed to load cluster configuration", zap.String("path", clusterPath), zap.Error(err))
	}

	orch := client.New(cluster.Nodes, logger)
	orch.RateLimitBytesPerSec = *rateLimit
	ctx := context.Background()

	if len(args) == 1 {
		stats, err := orch.Run(ctx, args[0])
		if err != nil {
			logger.Error("round finished with errors", zap.Error(err))
		}
		if stats != nil {
			fmt.Print(stats.Summary())
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}

	// Two-file form: a seed round against the old file primes every node's
	// chunk store, then the measuring round against the new file reports
	// how much of it the seed round already covers.
	seedPath, newPath := args[0], args[1]

	logger.Info("seeding cluster", zap.String("file", seedPath))
	if _, err := orch.Run(ctx, seedPath); err != nil {
		logger.Fatal("seed round failed", zap.Error(err))
	}

	stats, err := orch.Run(ctx, newPath)
	if err != nil {
		logger.Error("measuring round finished with errors", zap.Error(err))
	}
	if stats != nil {
		fmt.Print(stats.Summary())
	}
	if err != nil {
		os.Exit(1)
	}
}
