package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"trendscout/internal/analytics"
	"trendscout/internal/model"
	"trendscout/internal/util"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// VideosTable renders ranked videos, at most limit rows (all when limit <= 0).
func VideosTable(videos []model.VideoRecord, limit int) string {
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	t := newTable("#", "Creator", "Views", "Likes", "Eng.", "Audio", "Caption")
	for i, v := range videos {
		t.Row(
			fmt.Sprint(i+1),
			"@"+v.AuthorUsername,
			util.FormatNumber(v.Views),
			util.FormatNumber(v.Likes),
			pct(v.EngagementRate),
			util.Truncate(v.AudioTitle, 24, "..."),
			util.Truncate(util.NormalizeWhitespace(v.Caption), 40, "..."),
		)
	}
	return t.Render()
}

// CreatorsTable renders creator summaries with their tier.
func CreatorsTable(creators []model.CreatorSummary) string {
	t := newTable("Creator", "Videos", "Avg views", "Avg eng.", "Total views", "Tier")
	for _, c := range creators {
		t.Row(
			"@"+c.Username,
			fmt.Sprint(c.VideoCount),
			util.FormatNumber(int(c.AvgViews)),
			pct(c.AvgEngagement),
			util.FormatNumber(c.TotalViews),
			analytics.ClassifyCreatorTier(c.AvgViews, c.VideoCount, c.AvgEngagement),
		)
	}
	return t.Render()
}

// SimilarTable renders ranked look-alike accounts.
func SimilarTable(candidates []model.ScoredCandidate) string {
	t := newTable("#", "Account", "Followers", "Score", "Why")
	for i, c := range candidates {
		name := "@" + c.Username
		if c.IsNativeRelated {
			name += " *"
		}
		t.Row(
			fmt.Sprint(i+1),
			name,
			util.FormatNumber(c.Followers),
			fmt.Sprintf("%.1f", c.SimilarityScore),
			strings.Join(c.SimilarityReasons, "; "),
		)
	}
	return t.Render()
}

// DeepDiveReport renders one creator's summary followed by their audio usage.
func DeepDiveReport(s analytics.DeepDiveSummary) string {
	var b strings.Builder
	b.WriteString(Title("@"+s.Username) + "\n")
	fmt.Fprintf(&b, "Videos: %d  Total views: %s  Avg views: %s  Avg likes: %s  Avg eng.: %s\n",
		s.VideoCount, util.FormatNumber(s.TotalViews), util.FormatNumber(int(s.AvgViews)),
		util.FormatNumber(int(s.AvgLikes)), pct(s.AvgEngagement))
	fmt.Fprintf(&b, "Top video: %s views  %s\n", util.FormatNumber(s.TopVideo.Views), s.TopVideo.VideoURL)

	t := newTable("Audio", "Uses")
	for _, a := range s.TopAudios {
		t.Row(util.Truncate(a.Title, 40, "..."), fmt.Sprint(a.Count))
	}
	b.WriteString(t.Render() + "\n")
	fmt.Fprintf(&b, "Unique tracks: %d  Reuse rate: %.0f%%\n", s.UniqueAudioCount, s.AudioReuseRate*100)
	if s.FrequentAudioReuse {
		b.WriteString(goodStyle.Render("Frequently reuses sounds") + "\n")
	}
	return b.String()
}

// KeywordList renders numbered keywords.
func KeywordList(keywords []string) string {
	var b strings.Builder
	for i, k := range keywords {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, k)
	}
	return b.String()
}
