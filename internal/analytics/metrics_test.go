package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscout/internal/model"
)

func video(id, author string, views, likes, comments, shares int) model.VideoRecord {
	return model.VideoRecord{
		VideoID:        id,
		AuthorUsername: author,
		Counts:         model.Counts{Views: views, Likes: likes, Comments: comments, Shares: shares},
		EngagementRate: model.EngagementRate(likes, comments, shares, views),
	}
}

func ids(vs []model.VideoRecord) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.VideoID)
	}
	return out
}

func samplePosts() []model.VideoRecord {
	return []model.VideoRecord{
		video("a", "x", 5_000, 400, 50, 10),
		video("b", "y", 20_000, 300, 100, 100),
		video("c", "x", 50_000, 2_000, 200, 300),
		video("d", "z", 12_000, 100, 10, 5),
		video("e", "y", 0, 10, 0, 0),
	}
}

func TestFilterByQuality(t *testing.T) {
	got := FilterByQuality(samplePosts(), 10_000, 500)
	assert.Equal(t, []string{"b", "c"}, ids(got))
}

func TestFilterByQualityMonotonic(t *testing.T) {
	posts := samplePosts()
	prev := len(posts) + 1
	for _, minViews := range []int{0, 1_000, 10_000, 20_000, 100_000} {
		n := len(FilterByQuality(posts, minViews, 0))
		assert.LessOrEqual(t, n, prev)
		prev = n
	}
	prev = len(posts) + 1
	for _, minInter := range []int{0, 100, 500, 2_000, 10_000} {
		n := len(FilterByQuality(posts, 0, minInter))
		assert.LessOrEqual(t, n, prev)
		prev = n
	}
}

func TestFilterByDateRangeDropsUnknownTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	posts := samplePosts()
	posts[0].CreatedAt = now.Add(-24 * time.Hour)
	posts[1].CreatedAt = now.AddDate(0, 0, -10)
	posts[2].CreatedAt = now.AddDate(0, 0, -11)
	posts[3].CreatedAt = time.Time{}
	posts[4].CreatedAt = now.Add(-time.Minute)
	got := FilterByDateRange(posts, 10, now)
	assert.Equal(t, []string{"a", "b", "e"}, ids(got))
}

func TestSortByMetricViews(t *testing.T) {
	posts := samplePosts()
	got := SortByMetric(posts, MetricViews)
	require.Len(t, got, len(posts))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Views, got[i].Views)
	}
	assert.ElementsMatch(t, ids(posts), ids(got))
	assert.Equal(t, ids(got), ids(SortByMetric(got, MetricViews)))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(posts))
}

func TestSortByMetricStableTies(t *testing.T) {
	posts := []model.VideoRecord{
		video("first", "a", 100, 1, 0, 0),
		video("second", "b", 100, 2, 0, 0),
		video("big", "c", 900, 1, 0, 0),
	}
	got := SortByMetric(posts, MetricViews)
	assert.Equal(t, []string{"big", "first", "second"}, ids(got))
}

func TestSortByMetricUnknownFallsBackToEngagement(t *testing.T) {
	posts := samplePosts()
	assert.Equal(t, ids(SortByMetric(posts, MetricEngagementRate)), ids(SortByMetric(posts, "nonsense")))
}

func TestSortByMetricTrendScore(t *testing.T) {
	posts := []model.VideoRecord{
		{VideoID: "viral-low-reach", EngagementRate: 40, Counts: model.Counts{Views: 1_000}},
		{VideoID: "big-reach", EngagementRate: 3, Counts: model.Counts{Views: 8_000_000}},
	}
	got := SortByMetric(posts, MetricTrendScore)
	assert.Equal(t, []string{"big-reach", "viral-low-reach"}, ids(got))
}
