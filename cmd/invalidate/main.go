// Command invalidate publishes a cache invalidation pattern to the queue.
// This is the administrative, out-of-band path for dropping cache entries
// before their TTL expires, e.g. after an upstream data correction:
//
//	invalidate -pattern 'reelgate:content_details:movie:*' -by ops
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/reelworks/reelgate/internal/config"
	"github.com/reelworks/reelgate/internal/domain/repository"
	"github.com/reelworks/reelgate/internal/infrastructure/queue"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	pattern := flag.String("pattern", "", "glob pattern of cache keys to invalidate (required)")
	requestedBy := flag.String("by", "", "who requested the invalidation")
	flag.Parse()

	if *pattern == "" {
		return fmt.Errorf("-pattern is required")
	}

	cfg, err := config.LoadRabbitMQ()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Enabled() {
		return fmt.Errorf("RABBITMQ_HOST is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.URL()))
	if err != nil {
		return err
	}
	defer client.Close()

	req := repository.InvalidationRequest{
		Pattern:     *pattern,
		RequestedBy: *requestedBy,
		RequestedAt: time.Now().UTC(),
	}
	if err := client.PublishInvalidation(ctx, req); err != nil {
		return err
	}

	fmt.Printf("published invalidation for pattern %q\n", *pattern)
	return nil
}
