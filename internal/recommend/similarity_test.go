package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscout/internal/model"
)

func TestHashtagOverlapBounds(t *testing.T) {
	seed := model.Profile{Hashtags: []string{"gym", "fitness"}}

	same := Score(seed, model.Profile{Hashtags: []string{"fitness", "gym"}}, false)
	assert.Equal(t, 1.0, same.Hashtag)

	disjoint := Score(seed, model.Profile{Hashtags: []string{"cooking"}}, false)
	assert.Equal(t, 0.0, disjoint.Hashtag)

	empty := Score(seed, model.Profile{}, false)
	assert.Equal(t, 0.0, empty.Hashtag)
}

func TestHashtagOverlapUsesFirstThirtyTags(t *testing.T) {
	var seedTags []string
	for i := 0; i < 30; i++ {
		seedTags = append(seedTags, string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	seed := model.Profile{Hashtags: append(seedTags, "late")}
	b := Score(seed, model.Profile{Hashtags: []string{"late"}}, false)
	assert.Equal(t, 0.0, b.Hashtag)
}

func TestFollowerProximity(t *testing.T) {
	assert.Equal(t, 1.0, FollowerProximity(5000, 5000))
	assert.Equal(t, 0.3, FollowerProximity(0, 5000))
	assert.Equal(t, 0.3, FollowerProximity(5000, -1))
	assert.InDelta(t, 0.0, FollowerProximity(1_000, 1_000_000), 1e-12)
	assert.Equal(t, 0.0, FollowerProximity(10, 10_000_000))
	assert.InDelta(t, 2.0/3.0, FollowerProximity(1_000, 10_000), 1e-12)
}

func TestScoreEndToEndNativeCandidate(t *testing.T) {
	seed := model.Profile{Username: "seed", Hashtags: []string{"gym", "fitness", "workout"}, Followers: 10_000}
	cand := model.Profile{Username: "cand", Hashtags: []string{"gym", "fitness"}, Followers: 12_000}

	b := Score(seed, cand, true)
	assert.InDelta(t, 2.0/3.0, b.Hashtag, 1e-9)
	assert.InDelta(t, 0.9736, b.Follower, 1e-4)
	assert.Equal(t, 0.0, b.Bio)
	// 0.6667*0.55 + 0.9736*0.25 + 0.15
	assert.Equal(t, 76.0, b.Score)
	require.Len(t, b.Reasons, 3)
	assert.Equal(t, ReasonNative, b.Reasons[0])
	assert.Equal(t, "Shared hashtags: #gym, #fitness", b.Reasons[1])
	assert.Equal(t, ReasonAudience, b.Reasons[2])
}

func TestScoreNativeBoostIsClamped(t *testing.T) {
	p := model.Profile{Hashtags: []string{"a"}, Followers: 100, Biography: "vegan recipes daily"}
	b := Score(p, p, true)
	assert.Equal(t, 100.0, b.Score)
	assert.Contains(t, b.Reasons, ReasonBio)
}

func TestScoreFallbackReason(t *testing.T) {
	seed := model.Profile{Hashtags: []string{"a"}, Followers: 10}
	cand := model.Profile{Hashtags: []string{"b"}, Followers: 10_000_000}
	b := Score(seed, cand, false)
	assert.Equal(t, []string{ReasonFallback}, b.Reasons)
	assert.Equal(t, 0.0, b.Score)
}

func TestSharedHashtagReasonListsAtMostThree(t *testing.T) {
	tags := []string{"a", "b", "c", "d"}
	b := Score(model.Profile{Hashtags: tags}, model.Profile{Hashtags: tags}, false)
	assert.Contains(t, b.Reasons, "Shared hashtags: #a, #b, #c")
}

func TestBioOverlapIgnoresStopwordsAndShortWords(t *testing.T) {
	seed := model.Profile{Biography: "I am the chef of my kitchen"}
	cand := model.Profile{Biography: "Chef and kitchen lover"}
	b := Score(seed, cand, false)
	// {chef, kitchen} vs {chef, kitchen, lover}
	assert.InDelta(t, 2.0/3.0, b.Bio, 1e-9)
}
