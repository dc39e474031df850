package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trendscout/internal/analytics"
	"trendscout/internal/jobs"
	"trendscout/internal/model"
	"trendscout/internal/recommend"
)

// maxStoredPosts bounds how many stored posts feed a creators report.
const maxStoredPosts = 1000

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Service: "trendscout"})
}

// intQuery reads a non-negative integer query parameter, def when absent.
func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// SimilarHandler ranks accounts similar to :username.
func (s *Server) SimilarHandler(c *gin.Context) {
	maxResults, err := intQuery(c, "max", s.Config.Similar.MaxResults)
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := recommend.FindSimilar(c.Request.Context(), s.Instagram, c.Param("username"), recommend.Options{
		MaxResults:  maxResults,
		LimitPerTag: s.Config.Similar.LimitPerTag,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SearchHandler runs a keyword search and returns the filtered, sorted videos.
func (s *Server) SearchHandler(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		badRequest(c, fmt.Errorf("keyword is required"))
		return
	}
	p := jobs.SearchParams{Keyword: keyword, SortBy: c.Query("sort")}
	var err error
	if p.DaysAgo, err = intQuery(c, "days", 0); err != nil {
		badRequest(c, err)
		return
	}
	if p.MinViews, err = intQuery(c, "min_views", 0); err != nil {
		badRequest(c, err)
		return
	}
	if p.MinInteractions, err = intQuery(c, "min_interactions", 0); err != nil {
		badRequest(c, err)
		return
	}
	if p.SortBy != "" && !validMetric(p.SortBy) {
		badRequest(c, fmt.Errorf("unknown sort metric %q", p.SortBy))
		return
	}
	res, err := jobs.RunKeywordSearch(c.Request.Context(), s.DB, s.TikTok, s.Config, p, uuid.NewString())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func validMetric(m string) bool {
	switch m {
	case analytics.MetricViews, analytics.MetricComments, analytics.MetricShares,
		analytics.MetricEngagementRate, analytics.MetricTrendScore:
		return true
	}
	return false
}

// CreatorEntry is a creator summary with its tier label.
type CreatorEntry struct {
	model.CreatorSummary
	Tier string `json:"tier"`
}

// CreatorsHandler aggregates stored posts into creator summaries without scraping.
func (s *Server) CreatorsHandler(c *gin.Context) {
	days, err := intQuery(c, "days", s.Config.Search.DaysAgo)
	if err != nil {
		badRequest(c, err)
		return
	}
	posts, err := s.DB.TikTokPosts(c.Request.Context(), strings.TrimSpace(c.Query("keyword")), days, maxStoredPosts)
	if err != nil {
		writeError(c, err)
		return
	}
	summaries := analytics.AggregateCreators(posts)
	creators := make([]CreatorEntry, 0, len(summaries))
	for _, cs := range summaries {
		creators = append(creators, CreatorEntry{CreatorSummary: cs, Tier: analytics.ClassifyCreatorTier(cs.AvgViews, cs.VideoCount, cs.AvgEngagement)})
	}
	micro := analytics.FindMicroInfluencers(summaries, analytics.DefaultMicroMinEngagement, analytics.DefaultMicroMaxAvgViews)
	c.JSON(http.StatusOK, gin.H{"creators": creators, "micro_influencers": micro})
}

// DiscoverHandler returns trending search keywords for ?country= (default US).
func (s *Server) DiscoverHandler(c *gin.Context) {
	kws, err := s.Discovery.Discover(c.Request.Context(), c.Query("country"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": kws})
}
