package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscout/internal/model"
	"trendscout/internal/scraper"
)

type fakeInstagram struct {
	seed        model.Profile
	seedErr     error
	related     scraper.RelatedResult
	hashtag     scraper.HashtagResult
	gotTags     []string
	gotLimit    int
	hashtagCall bool
}

func (f *fakeInstagram) SeedProfile(ctx context.Context, username string) (model.Profile, error) {
	if f.seedErr != nil {
		return model.Profile{}, f.seedErr
	}
	return f.seed, nil
}

func (f *fakeInstagram) NativeRelated(ctx context.Context, username string) scraper.RelatedResult {
	return f.related
}

func (f *fakeInstagram) HashtagCandidates(ctx context.Context, hashtags []string, limitPerTag int) scraper.HashtagResult {
	f.hashtagCall = true
	f.gotTags = hashtags
	f.gotLimit = limitPerTag
	return f.hashtag
}

func names(cs []model.ScoredCandidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Username)
	}
	return out
}

func TestFindSimilarSeedFailureIsFatal(t *testing.T) {
	ig := &fakeInstagram{seedErr: scraper.ErrProfileUnavailable}
	_, err := FindSimilar(context.Background(), ig, "ghost", Options{})
	require.ErrorIs(t, err, scraper.ErrProfileUnavailable)
}

func TestFindSimilarDedupKeepsNativeFlag(t *testing.T) {
	ig := &fakeInstagram{
		seed: model.Profile{Username: "seed", Hashtags: []string{"gym", "fitness", "workout", "protein", "yoga"}, Followers: 10_000},
		related: scraper.RelatedResult{Candidates: []model.Profile{
			{Username: "both", Followers: 9_000},
		}},
		hashtag: scraper.HashtagResult{Candidates: []model.Profile{
			{Username: "both", Hashtags: []string{"gym"}, Followers: 1},
			{Username: "seed", Hashtags: []string{"gym"}},
			{Username: "tagonly", Hashtags: []string{"gym", "fitness"}, Followers: 11_000},
		}},
	}
	res, err := FindSimilar(context.Background(), ig, "@seed", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"gym", "fitness", "workout", "protein"}, ig.gotTags)
	assert.Equal(t, DefaultLimitPerTag, ig.gotLimit)
	require.ElementsMatch(t, []string{"both", "tagonly"}, names(res.Similar))

	for _, c := range res.Similar {
		switch c.Username {
		case "both":
			assert.True(t, c.IsNativeRelated)
			// first occurrence keeps its profile data
			assert.Equal(t, 9_000, c.Followers)
			assert.Equal(t, ReasonNative, c.SimilarityReasons[0])
		case "tagonly":
			assert.False(t, c.IsNativeRelated)
			assert.Equal(t, "https://www.instagram.com/tagonly/", c.InstagramURL)
		}
	}
}

func TestFindSimilarAbsorbsDegradedSources(t *testing.T) {
	ig := &fakeInstagram{
		seed:    model.Profile{Username: "seed", Hashtags: []string{"food", "travel"}},
		related: scraper.RelatedResult{Err: errors.New("actor timed out")},
		hashtag: scraper.HashtagResult{
			Candidates: []model.Profile{{Username: "c1", Hashtags: []string{"food"}}},
			Failures:   map[string]error{"travel": errors.New("502")},
		},
	}
	res, err := FindSimilar(context.Background(), ig, "seed", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, names(res.Similar))
	assert.False(t, res.Similar[0].IsNativeRelated)
}

func TestFindSimilarSkipsExpansionWithoutHashtags(t *testing.T) {
	ig := &fakeInstagram{seed: model.Profile{Username: "seed"}}
	res, err := FindSimilar(context.Background(), ig, "seed", Options{})
	require.NoError(t, err)
	assert.False(t, ig.hashtagCall)
	assert.NotNil(t, res.Similar)
	assert.Empty(t, res.Similar)
}

func TestFindSimilarRanksAndTruncates(t *testing.T) {
	seed := model.Profile{Username: "seed", Hashtags: []string{"a", "b"}, Followers: 1000}
	ig := &fakeInstagram{
		seed: seed,
		hashtag: scraper.HashtagResult{Candidates: []model.Profile{
			{Username: "low", Hashtags: []string{"z"}, Followers: 1_000_000},
			{Username: "high", Hashtags: []string{"a", "b"}, Followers: 1000},
			{Username: "mid", Hashtags: []string{"a"}, Followers: 1000},
		}},
	}
	res, err := FindSimilar(context.Background(), ig, "seed", Options{MaxResults: 2, LimitPerTag: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, ig.gotLimit)
	assert.Equal(t, []string{"high", "mid"}, names(res.Similar))
	assert.GreaterOrEqual(t, res.Similar[0].SimilarityScore, res.Similar[1].SimilarityScore)
	assert.Equal(t, seed, res.Seed)
}
