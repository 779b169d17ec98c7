package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom-gallery/internal/manifest"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(context.Background(), filepath.Join(t.TempDir(), "gallery.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheStoreAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t)

	stored := manifest.LoadResult{
		Items: []manifest.Item{
			{ID: 2, RID: "B-2", Name: "second", DisplayName: "مغاسل", Category: "مغاسل",
				Type: manifest.ItemTypeImage, Src: "/b.jpg", Tags: "لامع", Year: "2023", Month: "04"},
			{ID: 1, Name: "first", Type: manifest.ItemTypeVideo, Src: "/a.mp4"},
		},
		Source:   manifest.SourceJSON,
		LoadedAt: time.Now(),
	}
	require.NoError(t, cache.Store(ctx, stored))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	// Original manifest order is preserved, not id order.
	require.Len(t, loaded, 2)
	assert.Equal(t, stored.Items, loaded)
}

func TestCacheStoreReplacesPrevious(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t)

	first := manifest.LoadResult{
		Items:    []manifest.Item{{ID: 1, Src: "/a.jpg", Type: manifest.ItemTypeImage}},
		Source:   manifest.SourceJSON,
		LoadedAt: time.Now(),
	}
	second := manifest.LoadResult{
		Items: []manifest.Item{
			{ID: 5, Src: "/x.jpg", Type: manifest.ItemTypeImage},
			{ID: 6, Src: "/y.jpg", Type: manifest.ItemTypeImage},
		},
		Source:   manifest.SourceCSV,
		Degraded: true,
		LoadedAt: time.Now(),
	}
	require.NoError(t, cache.Store(ctx, first))
	require.NoError(t, cache.Store(ctx, second))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(5), loaded[0].ID)
}

func TestCacheEmptyLoad(t *testing.T) {
	t.Parallel()

	loaded, err := openTestCache(t).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCacheHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		result := manifest.LoadResult{
			Items:    []manifest.Item{{ID: int64(i + 1), Src: "/a.jpg", Type: manifest.ItemTypeImage}},
			Source:   manifest.SourceJSON,
			LoadedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, cache.Store(ctx, result))
	}

	records, err := cache.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	assert.True(t, records[0].LoadedAt.After(records[1].LoadedAt))
	assert.Equal(t, manifest.SourceJSON, records[0].Source)
	assert.Equal(t, 1, records[0].ItemCount)
}
