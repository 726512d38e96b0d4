package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const snapshotPrefix = "availability:"

// Snapshots is a Redis-backed cache for rendered availability responses.
// It serves the read side only; the reservation create path never consults
// it. A nil *Snapshots degrades every operation to a no-op so the API runs
// without Redis.
type Snapshots struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSnapshots(addr string, ttl time.Duration, logger *zap.Logger) (*Snapshots, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", addr))
	return &Snapshots{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Get returns a cached snapshot, or ok=false on miss, error or nil cache.
func (c *Snapshots) Get(ctx context.Context, date string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	body, err := c.rdb.Get(ctx, snapshotPrefix+date).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *Snapshots) Set(ctx context.Context, date string, body []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, snapshotPrefix+date, body, c.ttl).Err(); err != nil {
		c.logger.Warn("availability snapshot cache write failed", zap.String("date", date), zap.Error(err))
	}
}

// Invalidate drops the snapshot for a date after a committed reservation
// change. Best-effort; the TTL bounds staleness if the delete fails.
func (c *Snapshots) Invalidate(ctx context.Context, date string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, snapshotPrefix+date).Err(); err != nil {
		c.logger.Warn("availability snapshot invalidation failed", zap.String("date", date), zap.Error(err))
	}
}

// TTL is the freshness window advertised to clients alongside cached data.
func (c *Snapshots) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

func (c *Snapshots) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
