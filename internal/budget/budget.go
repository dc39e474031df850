package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trendscout/internal/config"
)

// ErrExceeded is returned when a paid scraping run would exceed the hourly or daily budget.
var ErrExceeded = errors.New("budget: scraping budget exceeded")

// Counter counts recorded scraping runs in [start, end).
type Counter interface {
	CountSearchesWithin(ctx context.Context, start, end time.Time) (int, error)
}

// Usage is the number of runs in the current UTC hour and day.
type Usage struct {
	Hour int
	Day  int
}

// Current returns run counts for the UTC hour and day containing now.
func Current(ctx context.Context, c Counter, now time.Time) (Usage, error) {
	now = now.UTC()
	startHour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, time.UTC)
	startDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	hourCount, err := c.CountSearchesWithin(ctx, startHour, startHour.Add(time.Hour))
	if err != nil {
		return Usage{}, err
	}
	dayCount, err := c.CountSearchesWithin(ctx, startDay, startDay.Add(24*time.Hour))
	if err != nil {
		return Usage{}, err
	}
	return Usage{Hour: hourCount, Day: dayCount}, nil
}

// Allow reports whether one more run fits the budget. Zero limits are unlimited.
func Allow(ctx context.Context, c Counter, cfg config.BudgetConfig, now time.Time) (bool, error) {
	u, err := Current(ctx, c, now)
	if err != nil {
		return false, err
	}
	if cfg.MaxPerHour > 0 && u.Hour >= cfg.MaxPerHour {
		return false, nil
	}
	if cfg.MaxPerDay > 0 && u.Day >= cfg.MaxPerDay {
		return false, nil
	}
	return true, nil
}

// Check is Allow as an error: ErrExceeded with the usage when the budget is spent.
func Check(ctx context.Context, c Counter, cfg config.BudgetConfig, now time.Time) error {
	u, err := Current(ctx, c, now)
	if err != nil {
		return fmt.Errorf("budget: count runs: %w", err)
	}
	if cfg.MaxPerHour > 0 && u.Hour >= cfg.MaxPerHour {
		return fmt.Errorf("%w: %d/%d runs this hour", ErrExceeded, u.Hour, cfg.MaxPerHour)
	}
	if cfg.MaxPerDay > 0 && u.Day >= cfg.MaxPerDay {
		return fmt.Errorf("%w: %d/%d runs today", ErrExceeded, u.Day, cfg.MaxPerDay)
	}
	return nil
}
