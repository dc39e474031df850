package model

import "time"

// Counts holds the raw interaction counters of a post. Missing upstream values are 0.
type Counts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Views    int `json:"views"`
}

// Interactions is likes + comments + shares.
func (c Counts) Interactions() int { return c.Likes + c.Comments + c.Shares }

// VideoRecord represents a scraped short-form video. Records are never mutated by analytics code.
type VideoRecord struct {
	VideoID         string `json:"video_id"`
	AuthorUsername  string `json:"author_username"`
	AuthorFollowers int    `json:"author_followers"`
	AuthorVerified  bool   `json:"author_verified"`
	Caption         string `json:"caption"`
	VideoURL        string `json:"video_url"`
	DownloadURL     string `json:"download_url,omitempty"`
	CoverURL        string `json:"cover_url,omitempty"`
	AudioID         string `json:"audio_id,omitempty"`
	AudioTitle      string `json:"audio_title"`
	AudioAuthor     string `json:"audio_author,omitempty"`
	Counts
	EngagementRate float64 `json:"engagement_rate"` // percentage
	// CreatedAt is the zero time when the upstream timestamp was missing or unparsable.
	CreatedAt     time.Time `json:"created_at"`
	SearchKeyword string    `json:"search_keyword,omitempty"`
}

// BestVideo is the condensed top video of a creator.
type BestVideo struct {
	Caption        string  `json:"caption"`
	Views          int     `json:"views"`
	EngagementRate float64 `json:"engagement_rate"`
	URL            string  `json:"url"`
}

// CreatorSummary aggregates the videos of one author within a result set.
type CreatorSummary struct {
	Username      string        `json:"username"`
	VideoCount    int           `json:"video_count"`
	AvgViews      float64       `json:"avg_views"`
	AvgEngagement float64       `json:"avg_engagement"`
	AvgLikes      float64       `json:"avg_likes"`
	AvgComments   float64       `json:"avg_comments"`
	AvgShares     float64       `json:"avg_shares"`
	TotalViews    int           `json:"total_views"`
	BestVideo     BestVideo     `json:"best_video"`
	Videos        []VideoRecord `json:"videos,omitempty"`
}

// Profile is a seed or candidate Instagram account.
type Profile struct {
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Biography   string   `json:"biography"`
	Followers   int      `json:"followers"`
	ProfilePic  string   `json:"profile_pic,omitempty"`
	Hashtags    []string `json:"hashtags"` // deduplicated, first-seen order
	AvgLikes    float64  `json:"avg_likes"`
	AvgComments float64  `json:"avg_comments"`
	AvgViews    float64  `json:"avg_views"`
	PostCount   int      `json:"post_count"`
}

// ScoredCandidate is a candidate profile ranked against a seed.
type ScoredCandidate struct {
	Profile
	SimilarityScore   float64  `json:"similarity_score"`
	SimilarityReasons []string `json:"similarity_reasons"`
	IsNativeRelated   bool     `json:"is_native_related"`
	InstagramURL      string   `json:"instagram_url"`
}

// AudioTrack is the per-sound usage summary stored alongside posts.
type AudioTrack struct {
	AudioID       string  `json:"audio_id"`
	Title         string  `json:"title"`
	Artist        string  `json:"artist"`
	Platform      string  `json:"platform"`
	UsageCount    int     `json:"usage_count"`
	AvgEngagement float64 `json:"avg_engagement"`
	IsTrending    bool    `json:"is_trending"`
}

// Snapshot captures counters of a video at a point in time.
type Snapshot struct {
	Platform string `json:"platform"`
	VideoID  string `json:"video_id"`
	Counts
	At time.Time `json:"at"`
}

// InstagramPost is a scraped Instagram post or reel.
type InstagramPost struct {
	Shortcode     string `json:"shortcode"`
	OwnerUsername string `json:"owner_username"`
	Caption       string `json:"caption"`
	PostURL       string `json:"post_url"`
	VideoURL      string `json:"video_url,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	AudioID       string `json:"audio_id,omitempty"`
	AudioName     string `json:"audio_name,omitempty"`
	AudioArtist   string `json:"audio_artist,omitempty"`
	Counts
	EngagementRate float64   `json:"engagement_rate"`
	CreatedAt      time.Time `json:"created_at"`
	SearchKeyword  string    `json:"search_keyword,omitempty"`
}
