package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscout/internal/config"
	"trendscout/internal/store/sqlite"
)

func TestBudgetWindows(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	cfg := config.BudgetConfig{MaxPerHour: 2, MaxPerDay: 3}

	ok, err := Allow(ctx, db, cfg, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// one earlier today, one in the current hour, one yesterday
	for _, at := range []time.Time{now.Add(-3 * time.Hour), now.Add(-10 * time.Minute), now.Add(-24 * time.Hour)} {
		require.NoError(t, db.PutSearchHistory(ctx, sqlite.SearchRecord{Keyword: "k", SearchedAt: at}))
	}
	u, err := Current(ctx, db, now)
	require.NoError(t, err)
	assert.Equal(t, Usage{Hour: 1, Day: 2}, u)
	require.NoError(t, Check(ctx, db, cfg, now))

	require.NoError(t, db.PutSearchHistory(ctx, sqlite.SearchRecord{Keyword: "k", SearchedAt: now.Add(-time.Minute)}))
	ok, err = Allow(ctx, db, cfg, now)
	require.NoError(t, err)
	assert.False(t, ok)
	err = Check(ctx, db, cfg, now)
	require.True(t, errors.Is(err, ErrExceeded))
	assert.Contains(t, err.Error(), "this hour")

	// next hour frees the hourly window but the day is spent
	err = Check(ctx, db, cfg, now.Add(time.Hour))
	require.True(t, errors.Is(err, ErrExceeded))
	assert.Contains(t, err.Error(), "today")
}

func TestZeroLimitsAreUnlimited(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.PutSearchHistory(ctx, sqlite.SearchRecord{Keyword: "k", SearchedAt: now}))
	}
	require.NoError(t, Check(ctx, db, config.BudgetConfig{}, now))
}

type failingCounter struct{}

func (failingCounter) CountSearchesWithin(context.Context, time.Time, time.Time) (int, error) {
	return 0, errors.New("db closed")
}

func TestCounterFailure(t *testing.T) {
	_, err := Allow(context.Background(), failingCounter{}, config.BudgetConfig{MaxPerHour: 1}, time.Now())
	require.Error(t, err)
	err = Check(context.Background(), failingCounter{}, config.BudgetConfig{MaxPerHour: 1}, time.Now())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrExceeded))
}
