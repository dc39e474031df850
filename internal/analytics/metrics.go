package analytics

import (
	"sort"
	"time"

	"trendscout/internal/model"
)

// Metric names accepted by SortByMetric.
const (
	MetricViews          = "views"
	MetricComments       = "comments"
	MetricShares         = "shares"
	MetricEngagementRate = "engagement_rate"
	MetricTrendScore     = "trend_score"
)

// FilterByQuality keeps posts with at least minViews views and minInteractions likes+comments+shares.
func FilterByQuality(posts []model.VideoRecord, minViews, minInteractions int) []model.VideoRecord {
	out := make([]model.VideoRecord, 0, len(posts))
	for _, p := range posts {
		if p.Views >= minViews && p.Interactions() >= minInteractions {
			out = append(out, p)
		}
	}
	return out
}

// FilterByDateRange keeps posts created within the last daysAgo days of now.
// Posts without a known creation time are dropped.
func FilterByDateRange(posts []model.VideoRecord, daysAgo int, now time.Time) []model.VideoRecord {
	cutoff := now.AddDate(0, 0, -daysAgo)
	out := make([]model.VideoRecord, 0, len(posts))
	for _, p := range posts {
		if p.CreatedAt.IsZero() {
			continue
		}
		if !p.CreatedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// MetricValue returns the value SortByMetric orders by. Unknown names fall back to engagement rate.
func MetricValue(p model.VideoRecord, metric string) float64 {
	switch metric {
	case MetricViews:
		return float64(p.Views)
	case MetricComments:
		return float64(p.Comments)
	case MetricShares:
		return float64(p.Shares)
	case MetricTrendScore:
		return model.CompositeScore(p)
	default:
		return p.EngagementRate
	}
}

// SortByMetric returns a new slice ordered descending by metric. Ties keep input order.
func SortByMetric(posts []model.VideoRecord, metric string) []model.VideoRecord {
	out := make([]model.VideoRecord, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return MetricValue(out[i], metric) > MetricValue(out[j], metric)
	})
	return out
}
