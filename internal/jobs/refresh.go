package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"trendscout/internal/budget"
	"trendscout/internal/config"
	"trendscout/internal/logging"
	"trendscout/internal/schedule"
	"trendscout/internal/scraper"
	"trendscout/internal/store/sqlite"
)

// RefreshOnce re-runs the search of each keyword. It stops early when the budget is spent;
// other per-keyword failures are logged and skipped.
func RefreshOnce(ctx context.Context, db *sqlite.DB, tt scraper.TikTok, cfg config.Config, keywords []string) (int, error) {
	done := 0
	for _, kw := range keywords {
		_, err := RunKeywordSearch(ctx, db, tt, cfg, SearchParams{Keyword: kw}, uuid.NewString())
		if errors.Is(err, budget.ErrExceeded) {
			logging.Warn("refresh_budget_exhausted", map[string]any{"keyword": kw, "done": done})
			return done, err
		}
		if err != nil {
			logging.Error("refresh_keyword_failed", map[string]any{"keyword": kw, "error": err.Error()})
			continue
		}
		done++
	}
	return done, nil
}

// RunRefreshLoop runs RefreshOnce on a ticker until ctx is cancelled. Ticks inside
// cfg.Refresh.QuietHours are skipped.
func RunRefreshLoop(ctx context.Context, db *sqlite.DB, tt scraper.TikTok, cfg config.Config, keywords []string, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	tick := func() {
		now := time.Now().UTC()
		if schedule.IsQuiet(now, cfg.Refresh.QuietHours) {
			logging.Info("refresh_quiet_hours", map[string]any{"next_window": schedule.NextWindow(now, cfg.Refresh.QuietHours)})
			return
		}
		if _, err := RefreshOnce(ctx, db, tt, cfg, keywords); err != nil {
			logging.Error("refresh_once_error", map[string]any{"error": err.Error()})
		}
	}
	// run immediately
	tick()
	for {
		select {
		case <-ctx.Done():
			logging.Info("refresh_loop_stop", nil)
			return ctx.Err()
		case <-t.C:
			tick()
		}
	}
}
