package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trendscout/internal/budget"
	"trendscout/internal/config"
	"trendscout/internal/discovery"
	"trendscout/internal/logging"
	"trendscout/internal/metrics"
	"trendscout/internal/scraper"
	"trendscout/internal/store/sqlite"
)

// Keywords turns a country's trending chart into search keywords.
type Keywords interface {
	Discover(ctx context.Context, country string) ([]string, error)
}

// Server exposes the search, creator and similar-account features as JSON.
type Server struct {
	DB        *sqlite.DB
	TikTok    scraper.TikTok
	Instagram scraper.Instagram
	Discovery Keywords
	Config    config.Config
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())
	r.Use(cors.Default())

	r.GET("/health", HealthHandler)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/similar/:username", s.SimilarHandler)
		api.GET("/search", s.SearchHandler)
		api.GET("/creators", s.CreatorsHandler)
		api.GET("/discover", s.DiscoverHandler)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logging.Info("api_listening", map[string]any{"addr": addr})
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Info("http_request", map[string]any{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}

// statusFor maps collaborator errors to HTTP status codes. A missing credential wins over
// the error it is wrapped in.
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrMissingCredential), errors.Is(err, scraper.ErrSearchUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, scraper.ErrProfileUnavailable):
		return http.StatusNotFound
	case errors.Is(err, discovery.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, budget.ErrExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error("api_error", map[string]any{"path": c.FullPath(), "error": err.Error()})
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
