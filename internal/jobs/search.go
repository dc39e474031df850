package jobs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"trendscout/internal/analytics"
	"trendscout/internal/budget"
	"trendscout/internal/config"
	"trendscout/internal/logging"
	"trendscout/internal/metrics"
	"trendscout/internal/model"
	"trendscout/internal/scraper"
	"trendscout/internal/store/sqlite"
)

// Platform names stored with audio tracks and snapshots.
const (
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
)

// SearchParams controls one keyword search. Zero values take the config defaults,
// except MinViews and MinInteractions where zero disables the quality filter.
type SearchParams struct {
	Keyword         string
	MaxResults      int
	DaysAgo         int
	SortBy          string
	MinViews        int
	MinInteractions int
}

func (p SearchParams) withDefaults(cfg config.SearchConfig) SearchParams {
	p.Keyword = strings.TrimSpace(p.Keyword)
	if p.MaxResults <= 0 {
		p.MaxResults = cfg.MaxResults
	}
	if p.DaysAgo <= 0 {
		p.DaysAgo = cfg.DaysAgo
	}
	if p.SortBy == "" {
		p.SortBy = cfg.SortBy
	}
	return p
}

// SearchResult is what a search returns to the caller after persistence.
type SearchResult struct {
	RunID   string              `json:"run_id"`
	Keyword string              `json:"keyword"`
	Fetched int                 `json:"fetched"`
	Videos  []model.VideoRecord `json:"videos"`
}

// HashtagSearcher finds recent Instagram posts for a hashtag.
type HashtagSearcher interface {
	PostsByHashtag(ctx context.Context, hashtag string, limit, daysAgo int) ([]model.InstagramPost, error)
}

// RunKeywordSearch runs a budgeted TikTok search for p.Keyword, stores every fetched record with a
// snapshot and its audio track, and returns the records in the window sorted by p.SortBy.
func RunKeywordSearch(ctx context.Context, db *sqlite.DB, tt scraper.TikTok, cfg config.Config, p SearchParams, runID string) (SearchResult, error) {
	p = p.withDefaults(cfg.Search)
	if p.Keyword == "" {
		return SearchResult{}, fmt.Errorf("keyword search: keyword is required")
	}
	now := time.Now().UTC()
	if err := budget.Check(ctx, db, cfg.Budget, now); err != nil {
		return SearchResult{}, err
	}
	start := time.Now()
	defer metrics.ObserveSearchDuration(start)

	videos, err := tt.SearchByKeyword(ctx, p.Keyword, p.MaxResults, p.DaysAgo)
	if err != nil {
		return SearchResult{}, err
	}
	for _, v := range videos {
		if err := db.UpsertTikTokPost(ctx, v); err != nil {
			return SearchResult{}, err
		}
		if err := db.PutSnapshot(ctx, model.Snapshot{Platform: PlatformTikTok, VideoID: v.VideoID, Counts: v.Counts, At: now}); err != nil {
			return SearchResult{}, err
		}
	}
	for _, t := range analytics.AudioTracks(videos, PlatformTikTok) {
		if err := db.UpsertAudioTrack(ctx, t); err != nil {
			return SearchResult{}, err
		}
	}

	kept := analytics.FilterByDateRange(videos, p.DaysAgo, now)
	if p.MinViews > 0 || p.MinInteractions > 0 {
		kept = analytics.FilterByQuality(kept, p.MinViews, p.MinInteractions)
	}
	kept = analytics.SortByMetric(kept, p.SortBy)

	if err := db.PutSearchHistory(ctx, sqlite.SearchRecord{RunID: runID, Keyword: p.Keyword, ResultCount: len(kept), SearchedAt: now}); err != nil {
		return SearchResult{}, err
	}
	logging.Info("keyword_search", map[string]any{
		"run_id":  runID,
		"keyword": p.Keyword,
		"fetched": len(videos),
		"kept":    len(kept),
		"sort_by": p.SortBy,
	})
	return SearchResult{RunID: runID, Keyword: p.Keyword, Fetched: len(videos), Videos: kept}, nil
}

// RunInstagramSearch is RunKeywordSearch for an Instagram hashtag. Posts are ordered by engagement rate.
func RunInstagramSearch(ctx context.Context, db *sqlite.DB, ig HashtagSearcher, cfg config.Config, p SearchParams, runID string) ([]model.InstagramPost, error) {
	p = p.withDefaults(cfg.Search)
	if p.Keyword == "" {
		return nil, fmt.Errorf("instagram search: hashtag is required")
	}
	now := time.Now().UTC()
	if err := budget.Check(ctx, db, cfg.Budget, now); err != nil {
		return nil, err
	}
	start := time.Now()
	defer metrics.ObserveSearchDuration(start)

	posts, err := ig.PostsByHashtag(ctx, p.Keyword, p.MaxResults, p.DaysAgo)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if err := db.UpsertInstagramPost(ctx, post); err != nil {
			return nil, err
		}
		if err := db.PutSnapshot(ctx, model.Snapshot{Platform: PlatformInstagram, VideoID: post.Shortcode, Counts: post.Counts, At: now}); err != nil {
			return nil, err
		}
	}
	for _, t := range analytics.InstagramAudioTracks(posts, PlatformInstagram) {
		if err := db.UpsertAudioTrack(ctx, t); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].EngagementRate > posts[j].EngagementRate })
	if err := db.PutSearchHistory(ctx, sqlite.SearchRecord{RunID: runID, Keyword: "#" + p.Keyword, ResultCount: len(posts), SearchedAt: now}); err != nil {
		return nil, err
	}
	logging.Info("instagram_search", map[string]any{"run_id": runID, "hashtag": p.Keyword, "posts": len(posts)})
	return posts, nil
}
