package cmdlog

import (
	"time"

	"github.com/google/uuid"

	"trendscout/internal/logging"
	"trendscout/internal/metrics"
)

// Run executes f as command cmd, counting it and logging the outcome under a fresh run id.
func Run(cmd string, f func(runID string) error) error {
	runID := uuid.NewString()
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f(runID)
	fields := map[string]any{"run_id": runID, "duration_ms": time.Since(start).Milliseconds()}
	if err != nil {
		metrics.IncCommandError(cmd)
		fields["error"] = err.Error()
		logging.Error(cmd+"_error", fields)
	} else {
		logging.Info(cmd+"_ok", fields)
	}
	return err
}
