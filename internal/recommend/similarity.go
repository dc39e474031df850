package recommend

import (
	"math"
	"strings"

	"trendscout/internal/model"
	"trendscout/internal/util"
)

const (
	hashtagWeight  = 0.55
	followerWeight = 0.25
	bioWeight      = 0.20
	nativeBoost    = 0.15

	// Only the first maxScoredTags hashtags of each profile take part in the overlap.
	maxScoredTags = 30
	// Shared-hashtag reasons name at most this many tags.
	maxReasonTags = 3
)

const (
	ReasonNative   = "native platform recommendation"
	ReasonAudience = "Similar audience size"
	ReasonBio      = "Bio keywords overlap"
	ReasonFallback = "Active in the same niche hashtags"
)

// Breakdown is one seed-vs-candidate comparison.
type Breakdown struct {
	Hashtag  float64
	Follower float64
	Bio      float64
	// Score is on a 0-100 scale rounded to one decimal.
	Score   float64
	Reasons []string
}

// Score compares candidate against seed. Reasons are never empty.
func Score(seed, candidate model.Profile, isNative bool) Breakdown {
	seedTags := firstN(seed.Hashtags, maxScoredTags)
	candTags := firstN(candidate.Hashtags, maxScoredTags)
	b := Breakdown{
		Hashtag:  jaccard(toSet(seedTags), toSet(candTags)),
		Follower: FollowerProximity(seed.Followers, candidate.Followers),
		Bio:      jaccard(util.BioKeywords(seed.Biography), util.BioKeywords(candidate.Biography)),
	}
	raw := b.Hashtag*hashtagWeight + b.Follower*followerWeight + b.Bio*bioWeight
	if isNative {
		raw = math.Min(1.0, raw+nativeBoost)
		b.Reasons = append(b.Reasons, ReasonNative)
	}
	if b.Hashtag > 0.15 {
		b.Reasons = append(b.Reasons, "Shared hashtags: #"+strings.Join(sharedTags(seedTags, candTags, maxReasonTags), ", #"))
	}
	if b.Follower > 0.7 {
		b.Reasons = append(b.Reasons, ReasonAudience)
	}
	if b.Bio > 0.15 {
		b.Reasons = append(b.Reasons, ReasonBio)
	}
	if len(b.Reasons) == 0 {
		b.Reasons = append(b.Reasons, ReasonFallback)
	}
	b.Score = math.Round(raw*1000) / 10
	return b
}

// FollowerProximity is 1 for equal audiences and decays to 0 at three orders of magnitude apart.
// Unknown counts (<= 0) score a neutral 0.3.
func FollowerProximity(a, b int) float64 {
	if a <= 0 || b <= 0 {
		return 0.3
	}
	diff := math.Abs(math.Log10(float64(a)) - math.Log10(float64(b)))
	return math.Max(0, 1-diff/3)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func toSet(xs []string) map[string]struct{} {
	out := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		out[x] = struct{}{}
	}
	return out
}

func firstN(xs []string, n int) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

// sharedTags lists tags present in both, in seed order.
func sharedTags(seed, cand []string, limit int) []string {
	in := toSet(cand)
	var out []string
	for _, t := range util.Dedupe(seed) {
		if _, ok := in[t]; !ok {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
