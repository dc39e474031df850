package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trendscout/internal/config"
	"trendscout/internal/logging"
	"trendscout/internal/model"
	"trendscout/internal/util"
)

// MaxExpansionHashtags caps how many seed hashtags are scanned for candidates.
const MaxExpansionHashtags = 4

// RelatedResult is the outcome of the native related-accounts fetch.
// Err is set when the fetch failed; Candidates is then empty.
type RelatedResult struct {
	Candidates []model.Profile
	Err        error
}

// HashtagResult is the outcome of hashtag expansion. Failures maps a hashtag to the error
// that made it contribute nothing; the other hashtags still contribute candidates.
type HashtagResult struct {
	Candidates []model.Profile
	Failures   map[string]error
}

// Instagram is the account discovery collaborator.
type Instagram interface {
	SeedProfile(ctx context.Context, username string) (model.Profile, error)
	NativeRelated(ctx context.Context, username string) RelatedResult
	HashtagCandidates(ctx context.Context, hashtags []string, limitPerTag int) HashtagResult
}

// ApifyInstagram discovers accounts through Apify actors.
type ApifyInstagram struct {
	client        *ApifyClient
	postsActor    string
	relatedActor  string
	seedPostLimit int
}

func NewApifyInstagram(client *ApifyClient, postsActor, relatedActor string, seedPostLimit int) *ApifyInstagram {
	if seedPostLimit <= 0 {
		seedPostLimit = 12
	}
	return &ApifyInstagram{client: client, postsActor: postsActor, relatedActor: relatedActor, seedPostLimit: seedPostLimit}
}

func postsInput(url string, limit int) map[string]any {
	return map[string]any{
		"directUrls":           []string{url},
		"resultsType":          "posts",
		"resultsLimit":         limit,
		"shouldDownloadVideos": false,
		"shouldDownloadPhotos": false,
	}
}

// SeedProfile builds the seed profile from its most recent posts.
func (g *ApifyInstagram) SeedProfile(ctx context.Context, username string) (model.Profile, error) {
	if !g.client.Configured() {
		return model.Profile{}, fmt.Errorf("%w: %w: set APIFY_API_TOKEN in .env to enable similar-account search", ErrProfileUnavailable, config.ErrMissingCredential)
	}
	items, err := g.client.RunActor(ctx, g.postsActor, postsInput("https://www.instagram.com/"+username+"/", g.seedPostLimit))
	if err != nil {
		return model.Profile{}, fmt.Errorf("%w: @%s: %v", ErrProfileUnavailable, username, err)
	}
	posts := make([]instagramPost, 0, len(items))
	for _, raw := range items {
		var p instagramPost
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if p.Error != "" {
			return model.Profile{}, fmt.Errorf("%w: @%s: %s %s", ErrProfileUnavailable, username, p.Error, p.ErrorDescription)
		}
		posts = append(posts, p)
	}
	return profileFromPosts(posts, username), nil
}

// NativeRelated fetches the accounts Instagram itself lists as similar. It never fails;
// errors are reported in the result.
func (g *ApifyInstagram) NativeRelated(ctx context.Context, username string) RelatedResult {
	if !g.client.Configured() {
		return RelatedResult{Err: fmt.Errorf("native related: apify token not configured")}
	}
	items, err := g.client.RunActor(ctx, g.relatedActor, map[string]any{"usernames": []string{username}})
	if err != nil {
		return RelatedResult{Err: fmt.Errorf("native related @%s: %w", username, err)}
	}
	out := make([]model.Profile, 0, len(items))
	for _, raw := range items {
		var a relatedAccount
		if err := json.Unmarshal(raw, &a); err != nil || a.Username == "" {
			continue
		}
		followers := a.Followers
		if followers == 0 {
			followers = a.FollowerCount
		}
		out = append(out, model.Profile{
			Username:   a.Username,
			FullName:   a.FullName,
			Biography:  a.Biography,
			Followers:  followers,
			ProfilePic: a.ProfilePicURL,
			Hashtags:   util.Dedupe(lowerAll(a.Hashtags)),
		})
	}
	return RelatedResult{Candidates: out}
}

// HashtagCandidates scans recent posts under up to four hashtags and returns one partial
// profile per post owner, accumulating hashtags across that owner's posts.
func (g *ApifyInstagram) HashtagCandidates(ctx context.Context, hashtags []string, limitPerTag int) HashtagResult {
	res := HashtagResult{Failures: map[string]error{}}
	if len(hashtags) > MaxExpansionHashtags {
		hashtags = hashtags[:MaxExpansionHashtags]
	}
	profiles := make(map[string]*model.Profile)
	var order []string
	for _, tag := range hashtags {
		if !g.client.Configured() {
			res.Failures[tag] = fmt.Errorf("apify token not configured")
			continue
		}
		items, err := g.client.RunActor(ctx, g.postsActor, postsInput("https://www.instagram.com/explore/tags/"+tag+"/", limitPerTag))
		if err != nil {
			res.Failures[tag] = err
			logging.Warn("hashtag_scan_failed", map[string]any{"hashtag": tag, "error": err.Error()})
			continue
		}
		for _, raw := range items {
			var p instagramPost
			if err := json.Unmarshal(raw, &p); err != nil {
				continue
			}
			uname := firstNonEmpty(p.OwnerUsername, p.Owner.Username)
			if uname == "" {
				continue
			}
			existing, ok := profiles[uname]
			if !ok {
				pp := partialProfileFromPost(p, uname)
				profiles[uname] = &pp
				order = append(order, uname)
				continue
			}
			existing.Hashtags = util.Dedupe(append(existing.Hashtags, util.ExtractHashtags(p.Caption)...))
		}
	}
	res.Candidates = make([]model.Profile, 0, len(order))
	for _, u := range order {
		res.Candidates = append(res.Candidates, *profiles[u])
	}
	return res
}

// PostsByHashtag returns up to limit recent posts tagged with hashtag, newer than daysAgo days.
// Posts without a parsable timestamp are kept with a zero CreatedAt.
func (g *ApifyInstagram) PostsByHashtag(ctx context.Context, hashtag string, limit, daysAgo int) ([]model.InstagramPost, error) {
	if !g.client.Configured() {
		return nil, fmt.Errorf("%w: Instagram search requires Apify; set APIFY_API_TOKEN in .env to enable it", ErrSearchUnavailable)
	}
	tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hashtag), "#"))
	if tag == "" {
		return nil, fmt.Errorf("posts by hashtag: hashtag is required")
	}
	items, err := g.client.RunActor(ctx, g.postsActor, postsInput("https://www.instagram.com/explore/tags/"+tag+"/", limit))
	if err != nil {
		return nil, fmt.Errorf("%w: hashtag #%s: %v", ErrSearchUnavailable, tag, err)
	}
	cutoff := time.Now().AddDate(0, 0, -daysAgo)
	out := make([]model.InstagramPost, 0, len(items))
	for _, raw := range items {
		var p instagramPost
		if err := json.Unmarshal(raw, &p); err != nil || p.ShortCode == "" {
			continue
		}
		post := parsePost(p, tag)
		if daysAgo > 0 && !post.CreatedAt.IsZero() && post.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, post)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func parsePost(p instagramPost, keyword string) model.InstagramPost {
	counts := model.Counts{
		Likes:    p.LikesCount,
		Comments: p.CommentsCount,
		Views:    firstPositive(p.VideoViewCount, p.VideoPlayCount),
	}
	post := model.InstagramPost{
		Shortcode:      p.ShortCode,
		OwnerUsername:  firstNonEmpty(p.OwnerUsername, p.Owner.Username),
		Caption:        p.Caption,
		PostURL:        firstNonEmpty(p.URL, "https://www.instagram.com/p/"+p.ShortCode+"/"),
		VideoURL:       p.VideoURL,
		ThumbnailURL:   p.DisplayURL,
		AudioID:        p.MusicInfo.AudioID,
		AudioName:      p.MusicInfo.SongName,
		AudioArtist:    p.MusicInfo.ArtistName,
		Counts:         counts,
		EngagementRate: model.EngagementRate(counts.Likes, counts.Comments, 0, counts.Views),
		SearchKeyword:  keyword,
	}
	if ts, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
		post.CreatedAt = ts.UTC()
	}
	return post
}

func profileFromPosts(posts []instagramPost, username string) model.Profile {
	if len(posts) == 0 {
		return model.Profile{Username: username, Hashtags: []string{}}
	}
	first := posts[0]
	var tags []string
	var likes, comments, views int
	for _, p := range posts {
		tags = append(tags, util.ExtractHashtags(p.Caption)...)
		likes += p.LikesCount
		comments += p.CommentsCount
		views += p.VideoViewCount
	}
	n := float64(len(posts))
	return model.Profile{
		Username:    username,
		FullName:    firstNonEmpty(first.OwnerFullName, first.Owner.FullName),
		Biography:   firstNonEmpty(first.OwnerBiography, first.Biography),
		Followers:   firstPositive(first.OwnerFollowers, first.FollowersCount),
		ProfilePic:  firstNonEmpty(first.OwnerProfilePicURL, first.ProfilePicURL),
		Hashtags:    util.Dedupe(tags),
		AvgLikes:    float64(likes) / n,
		AvgComments: float64(comments) / n,
		AvgViews:    float64(views) / n,
		PostCount:   len(posts),
	}
}

func partialProfileFromPost(p instagramPost, username string) model.Profile {
	return model.Profile{
		Username:    username,
		FullName:    firstNonEmpty(p.OwnerFullName, p.Owner.FullName),
		Biography:   p.OwnerBiography,
		Followers:   firstPositive(p.OwnerFollowers, p.Owner.FollowersCount),
		ProfilePic:  firstNonEmpty(p.OwnerProfilePicURL, p.Owner.ProfilePicURL),
		Hashtags:    util.Dedupe(util.ExtractHashtags(p.Caption)),
		AvgLikes:    float64(p.LikesCount),
		AvgComments: float64(p.CommentsCount),
		AvgViews:    float64(p.VideoViewCount),
		PostCount:   1,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimPrefix(s, "#")))
	}
	return out
}
