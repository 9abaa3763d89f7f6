// Command purge-selections removes expired or stale selection blobs from
// Redis. Keys written by current builds carry a TTL, but blobs imported from
// the browser-storage era have none; this sweep ages them out by timestamp.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	selectionKeyPattern = "teams_selected_user:*"
	scanCount           = 100
)

type storedSelection struct {
	ID        int   `json:"id"`
	Timestamp int64 `json:"timestamp"`
}

func main() {
	var (
		redisURL = flag.String("redis", os.Getenv("REDIS_URL"), "Redis URL (or set REDIS_URL env)")
		maxAge   = flag.Duration("max-age", 30*24*time.Hour, "Selections older than this are purged")
		dryRun   = flag.Bool("dry-run", false, "Dry run mode (don't delete anything)")
		verbose  = flag.Bool("verbose", false, "Verbose logging")
	)
	flag.Parse()

	if *redisURL == "" {
		log.Fatal("Redis URL required (--redis or REDIS_URL env)")
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	opts, err := goredis.ParseURL(*redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	rdb := goredis.NewClient(opts)
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	if err := purgeStaleSelections(ctx, rdb, *maxAge, *dryRun); err != nil {
		log.Fatalf("Purge failed: %v", err)
	}

	slog.Info("Purge complete")
}

func purgeStaleSelections(ctx context.Context, rdb *goredis.Client, maxAge time.Duration, dryRun bool) error {
	start := time.Now()
	cutoff := start.Add(-maxAge).UnixMilli()
	var cursor uint64
	var scanned, purged, kept int

	slog.Info("Starting purge", "max_age", maxAge, "dry_run", dryRun)

	for {
		keys, nextCursor, err := rdb.Scan(ctx, cursor, selectionKeyPattern, scanCount).Result()
		if err != nil {
			return err
		}

		for _, key := range keys {
			scanned++

			data, err := rdb.Get(ctx, key).Bytes()
			if err != nil {
				slog.Debug("Skipping unreadable key", "key", key, "error", err)
				continue
			}

			var sel storedSelection
			stale := false
			if err := json.Unmarshal(data, &sel); err != nil {
				slog.Debug("Unparseable blob, purging", "key", key)
				stale = true
			} else if sel.Timestamp < cutoff {
				stale = true
			}

			if !stale {
				kept++
				continue
			}

			purged++
			if dryRun {
				slog.Info("Would purge", "key", key, "timestamp", sel.Timestamp)
				continue
			}
			if err := rdb.Del(ctx, key).Err(); err != nil {
				slog.Warn("Failed to delete key", "key", key, "error", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	slog.Info("Scan finished",
		"scanned", scanned,
		"purged", purged,
		"kept", kept,
		"elapsed", time.Since(start),
	)
	return nil
}
