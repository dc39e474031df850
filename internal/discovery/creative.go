package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrUpstreamUnavailable means the trending-hashtag source could not be reached or refused the request.
var ErrUpstreamUnavailable = errors.New("discovery: upstream unavailable")

const CreativeCenterURL = "https://ads.tiktok.com/creative_center/api/v1/hashtag/chart/"

// genericHashtags appear on nearly every video and say nothing about a topic.
var genericHashtags = map[string]struct{}{
	"fyp": {}, "foryou": {}, "foryoupage": {}, "viral": {}, "trending": {}, "fy": {},
	"tiktok": {}, "parati": {}, "fypシ": {}, "blowthisup": {}, "explore": {},
	"humor": {}, "comedy": {}, "meme": {}, "funny": {}, "fun": {}, "cute": {}, "cool": {},
	"entertainment": {}, "fypシ゚viral": {}, "goviral": {}, "tiktokviral": {},
}

// IsGeneric reports whether tag is a catch-all hashtag.
func IsGeneric(tag string) bool {
	_, ok := genericHashtags[strings.ToLower(strings.Trim(tag, "#"))]
	return ok
}

// Hashtag is one entry of the weekly trending chart.
type Hashtag struct {
	Name         string `json:"hashtag_name"`
	ViewSum      int64  `json:"view_sum"`
	PublishCount int64  `json:"publish_cnt"`
}

// TrendSource lists trending hashtags for a country.
type TrendSource interface {
	TrendingHashtags(ctx context.Context, country string, limit int) ([]Hashtag, error)
}

// CreativeCenter reads the public TikTok Creative Center hashtag chart (last 7 days).
type CreativeCenter struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCreativeCenter paces requests at rps with the given burst; unset values mean one request
// every two seconds.
func NewCreativeCenter(baseURL string, rps float64, burst int) *CreativeCenter {
	if baseURL == "" {
		baseURL = CreativeCenterURL
	}
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 1
	}
	return &CreativeCenter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type chartResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		List []Hashtag `json:"list"`
	} `json:"data"`
}

// TrendingHashtags returns the chart with generic hashtags removed.
func (c *CreativeCenter) TrendingHashtags(ctx context.Context, country string, limit int) ([]Hashtag, error) {
	q := url.Values{}
	q.Set("period", "7")
	q.Set("country_code", country)
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://ads.tiktok.com/creative_center/trending-hashtags/pc/en")
	req.Header.Set("Origin", "https://ads.tiktok.com")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: creative center unreachable: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: creative center status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode chart: %v", ErrUpstreamUnavailable, err)
	}
	if body.Code != 0 {
		return nil, fmt.Errorf("%w: creative center returned error %d: %s", ErrUpstreamUnavailable, body.Code, body.Msg)
	}
	out := make([]Hashtag, 0, len(body.Data.List))
	for _, h := range body.Data.List {
		if h.Name == "" || IsGeneric(h.Name) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}
