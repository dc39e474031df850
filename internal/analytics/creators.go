package analytics

import (
	"sort"

	"trendscout/internal/model"
	"trendscout/internal/util"
)

// Creator tiers, most to least notable.
const (
	TierTopPerformer = "Top Performer"
	TierStrong       = "Strong"
	TierRising       = "Rising"
	TierEmerging     = "Emerging"
	TierStandard     = "Standard"
)

const unknownAuthor = "unknown"

type creatorAcc struct {
	videos          []model.VideoRecord
	views           int
	likes           int
	comments        int
	shares          int
	engagementTotal float64
}

// AggregateCreators groups videos by author and returns one summary per author,
// ordered by average engagement descending. The best video is the one with the most
// views; on equal views the first one in input order wins.
func AggregateCreators(videos []model.VideoRecord) []model.CreatorSummary {
	if len(videos) == 0 {
		return []model.CreatorSummary{}
	}
	groups := make(map[string]*creatorAcc)
	var order []string
	for _, v := range videos {
		name := v.AuthorUsername
		if name == "" {
			name = unknownAuthor
		}
		acc, ok := groups[name]
		if !ok {
			acc = &creatorAcc{}
			groups[name] = acc
			order = append(order, name)
		}
		acc.videos = append(acc.videos, v)
		acc.views += v.Views
		acc.likes += v.Likes
		acc.comments += v.Comments
		acc.shares += v.Shares
		acc.engagementTotal += v.EngagementRate
	}

	out := make([]model.CreatorSummary, 0, len(groups))
	for _, name := range order {
		acc := groups[name]
		n := len(acc.videos)
		if n == 0 {
			continue
		}
		best := bestByViews(acc.videos)
		out = append(out, model.CreatorSummary{
			Username:      name,
			VideoCount:    n,
			AvgViews:      float64(acc.views) / float64(n),
			AvgEngagement: acc.engagementTotal / float64(n),
			AvgLikes:      float64(acc.likes) / float64(n),
			AvgComments:   float64(acc.comments) / float64(n),
			AvgShares:     float64(acc.shares) / float64(n),
			TotalViews:    acc.views,
			BestVideo: model.BestVideo{
				Caption:        util.Truncate(best.Caption, 50, "") + "...",
				Views:          best.Views,
				EngagementRate: best.EngagementRate,
				URL:            best.VideoURL,
			},
			Videos: acc.videos,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgEngagement > out[j].AvgEngagement })
	return out
}

// bestByViews returns the first video holding the maximum view count. videos must be non-empty.
func bestByViews(videos []model.VideoRecord) model.VideoRecord {
	best := videos[0]
	for _, v := range videos[1:] {
		if v.Views > best.Views {
			best = v
		}
	}
	return best
}

// ClassifyCreatorTier labels a creator; the first matching rule wins.
func ClassifyCreatorTier(avgViews float64, videoCount int, avgEngagement float64) string {
	switch {
	case avgViews > 1_000_000 && avgEngagement > 5.0:
		return TierTopPerformer
	case avgViews > 500_000 || avgEngagement > 8.0:
		return TierStrong
	case videoCount >= 3 && avgEngagement > 6.0:
		return TierRising
	case avgEngagement > 7.0:
		return TierEmerging
	default:
		return TierStandard
	}
}

// Default micro-influencer thresholds.
const (
	DefaultMicroMinEngagement = 7.0
	DefaultMicroMaxAvgViews   = 500_000
)

// FindMicroInfluencers keeps creators with high engagement, modest reach and at least two videos.
func FindMicroInfluencers(summaries []model.CreatorSummary, minEngagement, maxAvgViews float64) []model.CreatorSummary {
	out := make([]model.CreatorSummary, 0)
	for _, c := range summaries {
		if c.AvgEngagement >= minEngagement && c.AvgViews <= maxAvgViews && c.VideoCount >= 2 {
			out = append(out, c)
		}
	}
	return out
}
