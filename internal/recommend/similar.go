package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"trendscout/internal/logging"
	"trendscout/internal/metrics"
	"trendscout/internal/model"
	"trendscout/internal/scraper"
)

// Options tune a similar-account run. Zero values take the defaults.
type Options struct {
	MaxResults  int
	LimitPerTag int
}

const (
	DefaultMaxResults  = 20
	DefaultLimitPerTag = 25
)

// Result is the ranked outcome of FindSimilar.
type Result struct {
	Seed    model.Profile           `json:"seed"`
	Similar []model.ScoredCandidate `json:"similar"`
}

type candidate struct {
	profile  model.Profile
	isNative bool
}

// FindSimilar ranks accounts similar to seedUsername. Only a seed fetch failure is fatal;
// native-related and per-hashtag failures shrink the candidate pool.
func FindSimilar(ctx context.Context, ig scraper.Instagram, seedUsername string, opts Options) (Result, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.LimitPerTag <= 0 {
		opts.LimitPerTag = DefaultLimitPerTag
	}
	seedUsername = strings.TrimPrefix(strings.TrimSpace(seedUsername), "@")
	metrics.SimilarRuns.Inc()

	seed, err := ig.SeedProfile(ctx, seedUsername)
	if err != nil {
		return Result{}, fmt.Errorf("seed profile @%s: %w", seedUsername, err)
	}
	logging.Info("similar_seed_loaded", map[string]any{"seed": seedUsername, "hashtags": len(seed.Hashtags), "followers": seed.Followers})

	byName := make(map[string]*candidate)
	var order []string
	add := func(p model.Profile, native bool) {
		if p.Username == "" || strings.EqualFold(p.Username, seedUsername) {
			return
		}
		if _, ok := byName[p.Username]; ok {
			return
		}
		byName[p.Username] = &candidate{profile: p, isNative: native}
		order = append(order, p.Username)
	}

	related := ig.NativeRelated(ctx, seedUsername)
	if related.Err != nil {
		metrics.IncDegradation("native_related")
		logging.Warn("native_related_failed", map[string]any{"seed": seedUsername, "error": related.Err.Error()})
	}
	for _, p := range related.Candidates {
		add(p, true)
	}

	if len(seed.Hashtags) > 0 {
		tags := seed.Hashtags
		if len(tags) > scraper.MaxExpansionHashtags {
			tags = tags[:scraper.MaxExpansionHashtags]
		}
		expanded := ig.HashtagCandidates(ctx, tags, opts.LimitPerTag)
		for tag, ferr := range expanded.Failures {
			metrics.IncDegradation("hashtag")
			logging.Warn("hashtag_expansion_failed", map[string]any{"seed": seedUsername, "hashtag": tag, "error": ferr.Error()})
		}
		for _, p := range expanded.Candidates {
			add(p, false)
		}
	}

	scored := make([]model.ScoredCandidate, 0, len(order))
	for _, name := range order {
		c := byName[name]
		b := Score(seed, c.profile, c.isNative)
		scored = append(scored, model.ScoredCandidate{
			Profile:           c.profile,
			SimilarityScore:   b.Score,
			SimilarityReasons: b.Reasons,
			IsNativeRelated:   c.isNative,
			InstagramURL:      "https://www.instagram.com/" + name + "/",
		})
	}
	metrics.AddCandidatesScored(len(scored))
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].SimilarityScore > scored[j].SimilarityScore })
	if len(scored) > opts.MaxResults {
		scored = scored[:opts.MaxResults]
	}
	fields := map[string]any{"seed": seedUsername, "candidates": len(order), "returned": len(scored)}
	if len(scored) > 0 {
		fields["top"] = scored[0].Username
		fields["top_score"] = scored[0].SimilarityScore
	}
	logging.Info("similar_ranked", fields)
	return Result{Seed: seed, Similar: scored}, nil
}
