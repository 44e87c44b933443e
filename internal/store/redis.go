package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis-backed gateway.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	Prefix   string // prepended to every key, e.g. "tastequest:"
}

// RedisGateway implements Gateway on a Redis server.
type RedisGateway struct {
	Client *redis.Client
	prefix string
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*RedisGateway, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	gw := NewRedisGateway(rdb, opts.Prefix)
	if err := gw.Ping(ctx); err != nil {
		rdb.Close()
		return nil, err
	}
	return gw, nil
}

// NewRedisGateway wraps an existing client.
func NewRedisGateway(client *redis.Client, prefix string) *RedisGateway {
	return &RedisGateway{Client: client, prefix: prefix}
}

// Ping tests the Redis connection.
func (g *RedisGateway) Ping(ctx context.Context) error {
	if err := g.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Healthy reports whether Redis answers a ping.
func (g *RedisGateway) Healthy(ctx context.Context) error {
	return g.Ping(ctx)
}

// Close closes the Redis connection.
func (g *RedisGateway) Close() error {
	return g.Client.Close()
}

// Get implements Gateway.
func (g *RedisGateway) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := g.Client.Get(ctx, g.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set implements Gateway. Values never expire.
func (g *RedisGateway) Set(ctx context.Context, key string, value []byte) error {
	if err := g.Client.Set(ctx, g.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// historyKey holds decision records as a capped list, newest at the head.
const historyKey = "decision-history"

// HistoryLimit caps the number of decisions Redis retains.
const HistoryLimit = 1000

// RecordDecision implements History.
func (g *RedisGateway) RecordDecision(ctx context.Context, rec DecisionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}
	key := g.prefix + historyKey
	pipe := g.Client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, HistoryLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// RecentDecisions implements History.
func (g *RedisGateway) RecentDecisions(ctx context.Context, limit int) ([]DecisionRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := g.Client.LRange(ctx, g.prefix+historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("recent decisions: %w", err)
	}
	out := make([]DecisionRecord, 0, len(raw))
	for _, item := range raw {
		var rec DecisionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode decision: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
