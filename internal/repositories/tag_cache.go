package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
)

// ErrCacheMiss is returned when the tag list is not cached.
var ErrCacheMiss = errors.New("cache miss")

const tagsCacheKey = "tags:all"

// TagCacheRepository caches the full tag list in Redis
type TagCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for the cached list
}

// NewTagCacheRepository creates a new repository instance with the given TTL
func NewTagCacheRepository(client *redis.Client, expiration time.Duration) *TagCacheRepository {
	return &TagCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// Get returns the cached tag list
func (r *TagCacheRepository) Get(ctx context.Context) ([]models.Tag, error) {
	val, err := r.client.Get(ctx, tagsCacheKey).Bytes()
	if err != nil {
		logger.Log.Debugw("tag cache get", "key", tagsCacheKey, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get cached tags: %w", err)
	}

	var tags []models.Tag
	if err := json.Unmarshal(val, &tags); err != nil {
		logger.Log.Debugw("tag cache decode", "key", tagsCacheKey, "error", err)
		return nil, ErrCacheMiss
	}

	logger.Log.Debugw("tag cache get", "key", tagsCacheKey, "count", len(tags))
	return tags, nil
}

// Set caches tags with the repository's expiration
func (r *TagCacheRepository) Set(ctx context.Context, tags []models.Tag) error {
	if tags == nil {
		tags = []models.Tag{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, tagsCacheKey, data, r.exp).Err()
	logger.Log.Debugw("tag cache set", "key", tagsCacheKey, "count", len(tags), "error", err)
	if err != nil {
		return fmt.Errorf("cache tags: %w", err)
	}
	return nil
}

// Invalidate drops the cached list
func (r *TagCacheRepository) Invalidate(ctx context.Context) error {
	err := r.client.Del(ctx, tagsCacheKey).Err()
	logger.Log.Debugw("tag cache invalidate", "key", tagsCacheKey, "error", err)
	if err != nil {
		return fmt.Errorf("invalidate tag cache: %w", err)
	}
	return nil
}
