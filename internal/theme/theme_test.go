package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trendscout/internal/analytics"
	"trendscout/internal/model"
)

func TestBanner(t *testing.T) {
	assert.Contains(t, Banner(), "short-form trends")
}

func TestVideosTableLimitsRows(t *testing.T) {
	videos := []model.VideoRecord{
		{AuthorUsername: "first", Counts: model.Counts{Views: 1_500_000}, EngagementRate: 4.5, Caption: "hello\n  world"},
		{AuthorUsername: "second"},
	}
	out := VideosTable(videos, 1)
	assert.Contains(t, out, "@first")
	assert.Contains(t, out, "1.5M")
	assert.Contains(t, out, "4.50%")
	assert.Contains(t, out, "hello world")
	assert.NotContains(t, out, "@second")
}

func TestCreatorsTable(t *testing.T) {
	out := CreatorsTable([]model.CreatorSummary{{Username: "chef", VideoCount: 3, AvgViews: 2_000_000, AvgEngagement: 6, TotalViews: 6_000_000}})
	assert.Contains(t, out, "@chef")
	assert.Contains(t, out, analytics.TierTopPerformer)
}

func TestSimilarTableMarksNative(t *testing.T) {
	out := SimilarTable([]model.ScoredCandidate{{
		Profile:           model.Profile{Username: "alpha", Followers: 15_000},
		SimilarityScore:   76,
		SimilarityReasons: []string{"Similar audience size"},
		IsNativeRelated:   true,
	}})
	assert.Contains(t, out, "@alpha *")
	assert.Contains(t, out, "15K")
	assert.Contains(t, out, "76.0")
	assert.Contains(t, out, "Similar audience size")
}

func TestDeepDiveReport(t *testing.T) {
	s, ok := analytics.DeepDive("chef", []model.VideoRecord{
		{AudioTitle: "Song", Counts: model.Counts{Views: 10}, VideoURL: "https://v/1"},
		{AudioTitle: "Song", Counts: model.Counts{Views: 5}},
	})
	assert.True(t, ok)
	out := DeepDiveReport(s)
	assert.Contains(t, out, "@chef")
	assert.Contains(t, out, "https://v/1")
	assert.Contains(t, out, "Reuse rate: 50%")
	assert.Contains(t, out, "Frequently reuses sounds")
}

func TestKeywordList(t *testing.T) {
	assert.Equal(t, " 1. meal prep\n 2. air fryer\n", KeywordList([]string{"meal prep", "air fryer"}))
}
