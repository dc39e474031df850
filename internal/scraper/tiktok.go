package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trendscout/internal/logging"
	"trendscout/internal/model"
)

// TikTok is the video search collaborator.
type TikTok interface {
	SearchByKeyword(ctx context.Context, keyword string, maxResults, daysAgo int) ([]model.VideoRecord, error)
	SearchByUsername(ctx context.Context, username string, maxResults int) ([]model.VideoRecord, error)
}

// ApifyTikTok searches TikTok through an Apify actor.
type ApifyTikTok struct {
	client *ApifyClient
	actor  string
	nowFn  func() time.Time
}

func NewApifyTikTok(client *ApifyClient, actor string) *ApifyTikTok {
	return &ApifyTikTok{client: client, actor: actor, nowFn: time.Now}
}

func (t *ApifyTikTok) requireToken(feature string) error {
	if !t.client.Configured() {
		return fmt.Errorf("%w: %s requires Apify; set APIFY_API_TOKEN in .env to enable it", ErrSearchUnavailable, feature)
	}
	return nil
}

// SearchByKeyword returns at most maxResults videos for keyword created within daysAgo days.
func (t *ApifyTikTok) SearchByKeyword(ctx context.Context, keyword string, maxResults, daysAgo int) ([]model.VideoRecord, error) {
	if err := t.requireToken("TikTok search"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("search by keyword: keyword is required")
	}
	input := map[string]any{
		"searchQueries":        []string{keyword},
		"resultsPerPage":       maxResults,
		"shouldDownloadVideos": false,
		"shouldDownloadCovers": false,
	}
	items, err := t.client.RunActor(ctx, t.actor, input)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrSearchUnavailable, keyword, err)
	}
	now := t.nowFn()
	cutoff := now.AddDate(0, 0, -daysAgo)
	out := make([]model.VideoRecord, 0, len(items))
	for _, raw := range items {
		v, err := parseVideo(raw, keyword, now)
		if err != nil {
			logging.Warn("tiktok_item_skipped", map[string]any{"error": err.Error()})
			continue
		}
		if !v.CreatedAt.Before(cutoff) {
			out = append(out, v)
		}
		if len(out) >= maxResults {
			break
		}
	}
	return out, nil
}

// SearchByUsername returns up to maxResults recent videos of one creator.
func (t *ApifyTikTok) SearchByUsername(ctx context.Context, username string, maxResults int) ([]model.VideoRecord, error) {
	if err := t.requireToken("Profile deep dive"); err != nil {
		return nil, err
	}
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("search by username: username is required")
	}
	input := map[string]any{
		"profiles":               []string{username},
		"profilesResultsPerPage": maxResults,
		"shouldDownloadVideos":   false,
		"shouldDownloadCovers":   false,
	}
	items, err := t.client.RunActor(ctx, t.actor, input)
	if err != nil {
		return nil, fmt.Errorf("%w: profile @%s: %v", ErrSearchUnavailable, username, err)
	}
	now := t.nowFn()
	out := make([]model.VideoRecord, 0, len(items))
	for _, raw := range items {
		v, err := parseVideo(raw, "profile:"+username, now)
		if err != nil {
			logging.Warn("tiktok_item_skipped", map[string]any{"error": err.Error()})
			continue
		}
		out = append(out, v)
		if len(out) >= maxResults {
			break
		}
	}
	return out, nil
}

// parseVideo maps an actor item to a VideoRecord. A missing createTime is taken as now.
func parseVideo(raw json.RawMessage, keyword string, now time.Time) (model.VideoRecord, error) {
	var it tiktokItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return model.VideoRecord{}, fmt.Errorf("decode tiktok item: %w", err)
	}
	author := it.AuthorMeta.Name
	if author == "" {
		author = "unknown"
	}
	audioTitle := it.MusicMeta.MusicName
	if audioTitle == "" {
		audioTitle = "Original Sound"
	}
	created := now
	if it.CreateTime > 0 {
		created = time.Unix(it.CreateTime, 0).UTC()
	}
	counts := model.Counts{Likes: it.DiggCount, Comments: it.CommentCount, Shares: it.ShareCount, Views: it.PlayCount}
	return model.VideoRecord{
		VideoID:         it.ID,
		AuthorUsername:  author,
		AuthorFollowers: it.AuthorMeta.Fans,
		AuthorVerified:  it.AuthorMeta.Verified,
		Caption:         it.Text,
		VideoURL:        it.WebVideoURL,
		DownloadURL:     it.VideoMeta.DownloadAddr,
		CoverURL:        it.VideoMeta.CoverURL,
		AudioID:         it.MusicMeta.MusicID,
		AudioTitle:      audioTitle,
		AudioAuthor:     it.MusicMeta.MusicAuthor,
		Counts:          counts,
		EngagementRate:  model.EngagementRate(counts.Likes, counts.Comments, counts.Shares, counts.Views),
		CreatedAt:       created,
		SearchKeyword:   keyword,
	}, nil
}
