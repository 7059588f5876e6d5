package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/matchday/socialgraph/pkg/config"
	"github.com/matchday/socialgraph/pkg/logging"
)

// keyNamespace prefixes every cache key
const keyNamespace = "socialgraph"

// unreadTTL bounds how stale a cached unread count may get; writes also
// invalidate eagerly.
const unreadTTL = 30 * time.Second

// countersTTL bounds staleness for cached counter reads. The read path is
// allowed to trail recent writes (relaxed consistency), so a short TTL is
// enough.
const countersTTL = 10 * time.Second

// Cache wraps Redis client
type Cache struct {
	client *redis.Client
	ctx    context.Context
}

// New creates a new Redis cache client
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Cache{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// HashKey builds a stable MD5 hex digest for arbitrary key parts
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

// NamespaceKey prefixes a key with the application namespace
func (c *Cache) NamespaceKey(key string) string {
	return keyNamespace + ":" + key
}

// Get retrieves a value from cache
func (c *Cache) Get(key string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrCacheDisabled
	}
	return c.client.Get(c.ctx, c.NamespaceKey(key)).Result()
}

// Set sets a value in cache with TTL
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Set(c.ctx, c.NamespaceKey(key), value, ttl).Err()
}

// Delete removes a key from cache
func (c *Cache) Delete(key string) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Del(c.ctx, c.NamespaceKey(key)).Err()
}

// Exists checks if a key exists
func (c *Cache) Exists(key string) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrCacheDisabled
	}
	count, err := c.client.Exists(c.ctx, c.NamespaceKey(key)).Result()
	return count > 0, err
}

func unreadKey(profileID int64) string {
	return "unread:" + strconv.FormatInt(profileID, 10)
}

func countersKey(contentID int64) string {
	return "counters:" + strconv.FormatInt(contentID, 10)
}

// GetUnread returns a cached unread count, with ok=false on miss or when the
// cache is disabled.
func (c *Cache) GetUnread(profileID int64) (int64, bool) {
	val, err := c.Get(unreadKey(profileID))
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetUnread caches an unread count
func (c *Cache) SetUnread(profileID, count int64) {
	_ = c.Set(unreadKey(profileID), count, unreadTTL)
}

// InvalidateUnread drops the cached unread count after a dispatch or a
// mark-read.
func (c *Cache) InvalidateUnread(profileID int64) {
	_ = c.Delete(unreadKey(profileID))
}

// GetCounters returns cached "likes:comments:saves" counters, with ok=false
// on miss.
func (c *Cache) GetCounters(contentID int64) (likes, comments, saves int64, ok bool) {
	val, err := c.Get(countersKey(contentID))
	if err != nil {
		return 0, 0, 0, false
	}
	parts := strings.Split(val, ":")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int64, 3)
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}

// SetCounters caches counters for a content item
func (c *Cache) SetCounters(contentID, likes, comments, saves int64) {
	val := fmt.Sprintf("%d:%d:%d", likes, comments, saves)
	_ = c.Set(countersKey(contentID), val, countersTTL)
}

// InvalidateCounters drops cached counters after a fact mutation
func (c *Cache) InvalidateCounters(contentID int64) {
	_ = c.Delete(countersKey(contentID))
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Cache) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}

var (
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = fmt.Errorf("cache is disabled")
)
