package services

//go:generate mockgen -source=tags.go -destination=tags_mock.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/geo-articles/internal/logger"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
)

// TagCache stores the full tag list.
type TagCache interface {
	Get(ctx context.Context) ([]models.Tag, error)
	Set(ctx context.Context, tags []models.Tag) error
	Invalidate(ctx context.Context) error
}

// TagStore is the database side of tags.
type TagStore interface {
	LinkArticleTags(ctx context.Context, articleID int64, names []string) error
	ReplaceArticleTags(ctx context.Context, articleID int64, names []string) error
	List(ctx context.Context) ([]models.Tag, error)
}

// CachedTags serves the tag list from a cache in front of the database.
// Linking tags to an article drops the cached list once the surrounding
// transaction has committed. Cache failures only cost a database read.
type CachedTags struct {
	store       TagStore
	cache       TagCache
	afterCommit Deferrer
}

// NewCachedTags creates a CachedTags. A nil afterCommit invalidates immediately.
func NewCachedTags(store TagStore, cache TagCache, afterCommit Deferrer) *CachedTags {
	if afterCommit == nil {
		afterCommit = runNow
	}
	return &CachedTags{store: store, cache: cache, afterCommit: afterCommit}
}

// List returns every tag ordered by name.
func (c *CachedTags) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := c.cache.Get(ctx)
	if err == nil {
		return tags, nil
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		logger.Log.Warnw("tag cache unavailable", "error", err)
	}

	tags, err = c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, tags); err != nil {
		logger.Log.Warnw("failed to cache tags", "error", err)
	}
	return tags, nil
}

// LinkArticleTags links names to an article and schedules invalidation.
func (c *CachedTags) LinkArticleTags(ctx context.Context, articleID int64, names []string) error {
	if err := c.store.LinkArticleTags(ctx, articleID, names); err != nil {
		return err
	}
	if len(names) > 0 {
		c.invalidateAfterCommit(ctx)
	}
	return nil
}

// ReplaceArticleTags replaces an article's tags and schedules invalidation.
func (c *CachedTags) ReplaceArticleTags(ctx context.Context, articleID int64, names []string) error {
	if err := c.store.ReplaceArticleTags(ctx, articleID, names); err != nil {
		return err
	}
	if len(names) > 0 {
		c.invalidateAfterCommit(ctx)
	}
	return nil
}

func (c *CachedTags) invalidateAfterCommit(ctx context.Context) {
	c.afterCommit(ctx, func() {
		if err := c.cache.Invalidate(ctx); err != nil {
			logger.Log.Warnw("failed to invalidate tag cache", "error", err)
		}
	})
}
