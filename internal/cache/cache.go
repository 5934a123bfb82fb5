package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const resolveTTL = 24 * time.Hour

// Cache guarda URLs de produto já resolvidas, para pular o buscador em
// execuções repetidas. Com rdb nulo todas as operações viram no-op.
type Cache struct {
	rdb *redis.Client
}

func New(redisURL string) *Cache {
	if redisURL == "" {
		return &Cache{}
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return &Cache{}
	}
	return &Cache{rdb: redis.NewClient(opts)}
}

func (c *Cache) GetURL(ctx context.Context, code string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	// redis.Nil e cache indisponível tratados igual: segue para o buscador
	v, err := c.rdb.Get(ctx, "resolve:"+code).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *Cache) SetURL(ctx context.Context, code, url string) {
	if c == nil || c.rdb == nil || url == "" {
		return
	}
	c.rdb.Set(ctx, "resolve:"+code, url, resolveTTL)
}
