package services_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/geo-articles/internal/models"
	"github.com/sbilibin2017/geo-articles/internal/repositories"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedTags_List(t *testing.T) {
	tags := []models.Tag{{ID: 1, Name: "city"}, {ID: 2, Name: "sea"}}

	tests := []struct {
		name       string
		setupMocks func(store *services.MockTagStore, cache *services.MockTagCache)
		want       []models.Tag
		wantErr    error
	}{
		{
			name: "cache hit",
			setupMocks: func(store *services.MockTagStore, cache *services.MockTagCache) {
				cache.EXPECT().Get(gomock.Any()).Return(tags, nil)
			},
			want: tags,
		},
		{
			name: "cache miss fills the cache",
			setupMocks: func(store *services.MockTagStore, cache *services.MockTagCache) {
				cache.EXPECT().Get(gomock.Any()).Return(nil, repositories.ErrCacheMiss)
				store.EXPECT().List(gomock.Any()).Return(tags, nil)
				cache.EXPECT().Set(gomock.Any(), tags).Return(nil)
			},
			want: tags,
		},
		{
			name: "cache down falls back to the database",
			setupMocks: func(store *services.MockTagStore, cache *services.MockTagCache) {
				cache.EXPECT().Get(gomock.Any()).Return(nil, assert.AnError)
				store.EXPECT().List(gomock.Any()).Return(tags, nil)
				cache.EXPECT().Set(gomock.Any(), tags).Return(assert.AnError)
			},
			want: tags,
		},
		{
			name: "database failure",
			setupMocks: func(store *services.MockTagStore, cache *services.MockTagCache) {
				cache.EXPECT().Get(gomock.Any()).Return(nil, repositories.ErrCacheMiss)
				store.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := services.NewMockTagStore(ctrl)
			cache := services.NewMockTagCache(ctrl)
			tt.setupMocks(store, cache)

			got, err := services.NewCachedTags(store, cache, nil).List(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCachedTags_InvalidatesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := services.NewMockTagStore(ctrl)
	cache := services.NewMockTagCache(ctrl)

	var deferred []func()
	untilCommit := func(_ context.Context, fn func()) { deferred = append(deferred, fn) }
	tags := services.NewCachedTags(store, cache, untilCommit)
	ctx := context.Background()

	store.EXPECT().LinkArticleTags(gomock.Any(), int64(1), []string{"a"}).Return(nil)
	store.EXPECT().ReplaceArticleTags(gomock.Any(), int64(1), []string{"b"}).Return(nil)
	require.NoError(t, tags.LinkArticleTags(ctx, 1, []string{"a"}))
	require.NoError(t, tags.ReplaceArticleTags(ctx, 1, []string{"b"}))

	// nothing is dropped until the transaction commits
	require.Len(t, deferred, 2)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil)
	cache.EXPECT().Invalidate(gomock.Any()).Return(assert.AnError)
	for _, fn := range deferred {
		fn()
	}
}

func TestCachedTags_NoInvalidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := services.NewMockTagStore(ctrl)
	cache := services.NewMockTagCache(ctrl)
	tags := services.NewCachedTags(store, cache, nil)
	ctx := context.Background()

	t.Run("clearing tags creates none", func(t *testing.T) {
		store.EXPECT().ReplaceArticleTags(gomock.Any(), int64(1), []string{}).Return(nil)
		assert.NoError(t, tags.ReplaceArticleTags(ctx, 1, []string{}))
	})

	t.Run("store failure", func(t *testing.T) {
		store.EXPECT().LinkArticleTags(gomock.Any(), int64(1), []string{"a"}).Return(assert.AnError)
		assert.ErrorIs(t, tags.LinkArticleTags(ctx, 1, []string{"a"}), assert.AnError)

		store.EXPECT().ReplaceArticleTags(gomock.Any(), int64(1), []string{"a"}).Return(assert.AnError)
		assert.ErrorIs(t, tags.ReplaceArticleTags(ctx, 1, []string{"a"}), assert.AnError)
	})
}

func TestCachedTags_NilDeferrerInvalidatesNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := services.NewMockTagStore(ctrl)
	cache := services.NewMockTagCache(ctrl)

	store.EXPECT().LinkArticleTags(gomock.Any(), int64(3), []string{"x"}).Return(nil)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil)

	assert.NoError(t, services.NewCachedTags(store, cache, nil).LinkArticleTags(context.Background(), 3, []string{"x"}))
}
