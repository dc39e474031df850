package analytics

import (
	"sort"

	"trendscout/internal/model"
)

const unknownAudio = "Unknown"

// AudioUsage is how often one sound appears in a creator's videos.
type AudioUsage struct {
	Title string
	Count int
}

// DeepDiveSummary describes a single creator's recent videos.
type DeepDiveSummary struct {
	Username           string
	VideoCount         int
	TotalViews         int
	AvgViews           float64
	AvgEngagement      float64
	AvgLikes           float64
	TopVideo           model.VideoRecord
	TopAudios          []AudioUsage
	UniqueAudioCount   int
	AudioReuseRate     float64
	FrequentAudioReuse bool
}

// DeepDive summarises one creator's videos. ok is false for an empty input.
func DeepDive(username string, videos []model.VideoRecord) (DeepDiveSummary, bool) {
	if len(videos) == 0 {
		return DeepDiveSummary{Username: username}, false
	}
	n := float64(len(videos))
	var views, likes int
	var eng float64
	counts := make(map[string]int)
	var order []string
	for _, v := range videos {
		views += v.Views
		likes += v.Likes
		eng += v.EngagementRate
		title := v.AudioTitle
		if title == "" {
			title = unknownAudio
		}
		if _, ok := counts[title]; !ok {
			order = append(order, title)
		}
		counts[title]++
	}
	usages := make([]AudioUsage, 0, len(order))
	for _, t := range order {
		usages = append(usages, AudioUsage{Title: t, Count: counts[t]})
	}
	sort.SliceStable(usages, func(i, j int) bool { return usages[i].Count > usages[j].Count })
	unique := len(usages)
	if len(usages) > 5 {
		usages = usages[:5]
	}
	reuse := 1 - float64(unique)/n
	return DeepDiveSummary{
		Username:           username,
		VideoCount:         len(videos),
		TotalViews:         views,
		AvgViews:           float64(views) / n,
		AvgEngagement:      eng / n,
		AvgLikes:           float64(likes) / n,
		TopVideo:           bestByViews(videos),
		TopAudios:          usages,
		UniqueAudioCount:   unique,
		AudioReuseRate:     reuse,
		FrequentAudioReuse: reuse > 0.4,
	}, true
}

// AudioUse is the sound of one post as seen by the track aggregation.
type AudioUse struct {
	ID             string
	Title          string
	Artist         string
	EngagementRate float64
}

// AudioTracks summarises sound usage in a result set, keyed by audio id in first-seen order.
// Records without an audio id are skipped.
func AudioTracks(videos []model.VideoRecord, platform string) []model.AudioTrack {
	return TracksOf(videos, platform, func(v model.VideoRecord) AudioUse {
		return AudioUse{ID: v.AudioID, Title: v.AudioTitle, Artist: v.AudioAuthor, EngagementRate: v.EngagementRate}
	})
}

// InstagramAudioTracks is AudioTracks for Instagram posts.
func InstagramAudioTracks(posts []model.InstagramPost, platform string) []model.AudioTrack {
	return TracksOf(posts, platform, func(p model.InstagramPost) AudioUse {
		return AudioUse{ID: p.AudioID, Title: p.AudioName, Artist: p.AudioArtist, EngagementRate: p.EngagementRate}
	})
}

// TracksOf groups items by the audio id use reports for them.
func TracksOf[T any](items []T, platform string, use func(T) AudioUse) []model.AudioTrack {
	idx := make(map[string]int)
	var out []model.AudioTrack
	var engTotals []float64
	for _, it := range items {
		a := use(it)
		if a.ID == "" {
			continue
		}
		i, ok := idx[a.ID]
		if !ok {
			i = len(out)
			idx[a.ID] = i
			out = append(out, model.AudioTrack{AudioID: a.ID, Title: a.Title, Artist: a.Artist, Platform: platform})
			engTotals = append(engTotals, 0)
		}
		out[i].UsageCount++
		engTotals[i] += a.EngagementRate
	}
	for i := range out {
		out[i].AvgEngagement = engTotals[i] / float64(out[i].UsageCount)
	}
	return out
}
