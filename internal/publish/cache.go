package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	siteKeyPrefix = "publish:site:" // Cached HTML blob: publish:site:{subdomain}
	siteCacheTTL  = 1 * time.Hour
)

// Cache keeps served HTML blobs in redis so public traffic does not hit
// postgres on every request. Both publish paths invalidate the entry,
// so whichever path wrote last is what gets served.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) siteKey(subdomain string) string {
	return siteKeyPrefix + subdomain
}

// Get returns the cached HTML, "" on a miss.
func (c *Cache) Get(ctx context.Context, subdomain string) (string, error) {
	if c == nil || c.client == nil {
		return "", nil
	}

	html, err := c.client.Get(ctx, c.siteKey(subdomain)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	return html, nil
}

func (c *Cache) Set(ctx context.Context, subdomain, html string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Set(ctx, c.siteKey(subdomain), html, siteCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, subdomain string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, c.siteKey(subdomain)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
