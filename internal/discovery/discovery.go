package discovery

import (
	"context"
	"strings"
	"time"

	"trendscout/internal/llm"
	"trendscout/internal/logging"
)

// Discoverer turns the trending chart of a country into search keywords.
type Discoverer struct {
	Source TrendSource
	Gen    llm.Generator
	// Cache is optional.
	Cache    Cache
	CacheTTL time.Duration
	Limit    int
}

// Discover returns up to ten keywords for country. Only a failing TrendSource is an error;
// cache and conversion problems degrade to an uncached or raw-hashtag result.
func (d *Discoverer) Discover(ctx context.Context, country string) ([]string, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		country = "US"
	}
	if d.Cache != nil {
		kws, ok, err := d.Cache.Get(ctx, country)
		if err != nil {
			logging.Warn("discover_cache_read_failed", map[string]any{"country": country, "error": err.Error()})
		} else if ok {
			logging.Debug("discover_cache_hit", map[string]any{"country": country, "keywords": len(kws)})
			return kws, nil
		}
	}
	limit := d.Limit
	if limit <= 0 {
		limit = 35
	}
	tags, err := d.Source.TrendingHashtags(ctx, country, limit)
	if err != nil {
		return nil, err
	}
	logging.Info("discover_hashtags", map[string]any{"country": country, "relevant": len(tags)})
	kws := ConvertToKeywords(ctx, d.Gen, tags)
	if d.Cache != nil && len(kws) > 0 {
		if err := d.Cache.Set(ctx, country, kws, d.CacheTTL); err != nil {
			logging.Warn("discover_cache_write_failed", map[string]any{"country": country, "error": err.Error()})
		}
	}
	return kws, nil
}
