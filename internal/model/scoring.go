package model

import "math"

// EngagementRate returns (likes+comments+shares)/views as a percentage, or 0 when views is 0.
func EngagementRate(likes, comments, shares, views int) float64 {
	if views <= 0 {
		return 0
	}
	return float64(likes+comments+shares) / float64(views) * 100
}

// CompositeScore blends capped engagement (40%) and capped reach (60%) into a 0-100 trend score.
// An engagement rate of 10% and 10M views each saturate their term.
func CompositeScore(v VideoRecord) float64 {
	engagement := math.Min(v.EngagementRate*10, 100)
	views := math.Min(float64(v.Views)/100_000, 100)
	return engagement*0.4 + views*0.6
}
