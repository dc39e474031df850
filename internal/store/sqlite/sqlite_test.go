package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscout/internal/model"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func openMem(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	db.nowFn = func() time.Time { return fixedNow }
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func video(id, kw string, age time.Duration, views int) model.VideoRecord {
	return model.VideoRecord{
		VideoID:        id,
		AuthorUsername: "chef",
		AuthorVerified: true,
		Caption:        "caption " + id,
		AudioTitle:     "Original Sound",
		Counts:         model.Counts{Likes: 10, Comments: 2, Shares: 1, Views: views},
		EngagementRate: 1.3,
		CreatedAt:      fixedNow.Add(-age),
		SearchKeyword:  kw,
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trends.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	// reopening runs the idempotent migration again
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestTikTokPostsUpsertAndQuery(t *testing.T) {
	db := openMem(t)
	ctx := context.Background()
	require.NoError(t, db.UpsertTikTokPost(ctx, video("a", "pasta", 2*time.Hour, 100)))
	require.NoError(t, db.UpsertTikTokPost(ctx, video("b", "pasta", 30*time.Minute, 200)))
	require.NoError(t, db.UpsertTikTokPost(ctx, video("c", "salad", time.Hour, 300)))
	require.NoError(t, db.UpsertTikTokPost(ctx, video("old", "pasta", 20*24*time.Hour, 400)))

	// same id replaces counters
	updated := video("a", "pasta", 2*time.Hour, 5000)
	require.NoError(t, db.UpsertTikTokPost(ctx, updated))

	got, err := db.TikTokPosts(ctx, "pasta", 7, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].VideoID)
	assert.Equal(t, "a", got[1].VideoID)
	assert.Equal(t, 5000, got[1].Views)
	assert.True(t, got[1].AuthorVerified)
	assert.Equal(t, fixedNow.Add(-2*time.Hour), got[1].CreatedAt)

	all, err := db.TikTokPosts(ctx, "", 7, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := db.TikTokPosts(ctx, "", 30, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "b", limited[0].VideoID)
}

func TestInstagramPostsUpsertAndQuery(t *testing.T) {
	db := openMem(t)
	ctx := context.Background()
	p := model.InstagramPost{
		Shortcode:     "AAA",
		OwnerUsername: "cook",
		PostURL:       "https://www.instagram.com/p/AAA/",
		AudioID:       "au1",
		Counts:        model.Counts{Likes: 90, Comments: 10, Views: 1000},
		CreatedAt:     fixedNow.Add(-time.Hour),
		SearchKeyword: "mealprep",
	}
	require.NoError(t, db.UpsertInstagramPost(ctx, p))
	p.Likes = 150
	require.NoError(t, db.UpsertInstagramPost(ctx, p))
	// no timestamp is stored as NULL and excluded from recency queries
	require.NoError(t, db.UpsertInstagramPost(ctx, model.InstagramPost{Shortcode: "NOTS", SearchKeyword: "mealprep"}))

	got, err := db.InstagramPosts(ctx, "mealprep", 7, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 150, got[0].Likes)
	assert.Equal(t, "au1", got[0].AudioID)
	assert.Equal(t, "https://www.instagram.com/p/AAA/", got[0].PostURL)
}

func TestAudioTracks(t *testing.T) {
	db := openMem(t)
	ctx := context.Background()
	require.NoError(t, db.UpsertAudioTrack(ctx, model.AudioTrack{AudioID: "s1", Title: "One", Platform: "tiktok", UsageCount: 2}))
	require.NoError(t, db.UpsertAudioTrack(ctx, model.AudioTrack{AudioID: "s2", Title: "Two", Platform: "tiktok", UsageCount: 5, IsTrending: true}))
	require.NoError(t, db.UpsertAudioTrack(ctx, model.AudioTrack{AudioID: "s3", Title: "Three", Platform: "instagram", UsageCount: 9}))
	require.NoError(t, db.UpsertAudioTrack(ctx, model.AudioTrack{AudioID: "s1", Title: "One", Platform: "tiktok", UsageCount: 7}))

	got, err := db.TopAudioTracks(ctx, "tiktok", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].AudioID)
	assert.Equal(t, 7, got[0].UsageCount)
	assert.True(t, got[1].IsTrending)

	all, err := db.TopAudioTracks(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSnapshots(t *testing.T) {
	db := openMem(t)
	ctx := context.Background()
	require.NoError(t, db.PutSnapshot(ctx, model.Snapshot{Platform: "tiktok", VideoID: "v", Counts: model.Counts{Views: 10}, At: fixedNow.Add(-time.Hour)}))
	require.NoError(t, db.PutSnapshot(ctx, model.Snapshot{Platform: "tiktok", VideoID: "v", Counts: model.Counts{Views: 40}}))
	require.NoError(t, db.PutSnapshot(ctx, model.Snapshot{Platform: "tiktok", VideoID: "other", Counts: model.Counts{Views: 1}}))

	got, err := db.Snapshots(ctx, "tiktok", "v")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].Views)
	assert.Equal(t, 40, got[1].Views)
	assert.Equal(t, fixedNow, got[1].At)
}

func TestSearchHistory(t *testing.T) {
	db := openMem(t)
	ctx := context.Background()
	require.NoError(t, db.PutSearchHistory(ctx, SearchRecord{RunID: "r1", Keyword: "pasta", ResultCount: 3, SearchedAt: fixedNow.Add(-2 * time.Hour)}))
	require.NoError(t, db.PutSearchHistory(ctx, SearchRecord{RunID: "r2", Keyword: "salad", ResultCount: 5}))

	n, err := db.CountSearchesWithin(ctx, fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = db.CountSearchesWithin(ctx, fixedNow.Add(-24*time.Hour), fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recent, err := db.RecentSearches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "salad", recent[0].Keyword)
	assert.Equal(t, "r1", recent[1].RunID)
	assert.Equal(t, 3, recent[1].ResultCount)
}
