package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// StatsKey è la chiave unica della dashboard: le mutazioni sulle gift
// card la invalidano.
const StatsKey = "giftcard:stats"

// StatsCache è una cache-aside per la dashboard. Con addr vuoto resta nil
// e ogni chiamata è un no-op: la dashboard ricalcola dal database.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *StatsCache {
	if addr == "" {
		return nil
	}

	return &StatsCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func (c *StatsCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *StatsCache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	// Errori di scrittura ignorati: la cache non è mai sul percorso critico.
	c.rdb.Set(ctx, key, raw, c.ttl)
}

func (c *StatsCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
