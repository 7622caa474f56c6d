// Package ratelimit implements a sliding-window request counter shared by
// every API instance through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "ratelimit:chat:"

// SlidingWindow admits at most limit calls per key over any window-long interval.
// Each admitted call is a member of a sorted set scored by its arrival time.
type SlidingWindow struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewSlidingWindow(client redis.Cmdable, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		client: client,
		limit:  limit,
		window: window,
		prefix: defaultPrefix,
		now:    time.Now,
	}
}

// WithPrefix namespaces keys, mostly so tests do not collide.
func (l *SlidingWindow) WithPrefix(prefix string) *SlidingWindow {
	l.prefix = prefix
	return l
}

func (l *SlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return false, nil
	}

	now := l.now()
	redisKey := l.prefix + key
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())
	windowStart := now.Add(-l.window).UnixMicro()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", "("+strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMicro()), Member: member})
	pipe.PExpire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit window for %s: %w", key, err)
	}

	if count.Val() >= int64(l.limit) {
		// Rejected calls do not occupy the window.
		if err := l.client.ZRem(ctx, redisKey, member).Err(); err != nil {
			return false, fmt.Errorf("rate limit release for %s: %w", key, err)
		}
		return false, nil
	}

	return true, nil
}
