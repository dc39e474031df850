package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementRateZeroViews(t *testing.T) {
	assert.Equal(t, 0.0, EngagementRate(100, 50, 10, 0))
	assert.Equal(t, 0.0, EngagementRate(0, 0, 0, 0))
}

func TestEngagementRate(t *testing.T) {
	assert.InDelta(t, 16.0, EngagementRate(100, 50, 10, 1000), 1e-9)
}

func TestCompositeScoreCapsEachTerm(t *testing.T) {
	tests := []struct {
		name string
		v    VideoRecord
		want float64
	}{
		{"zero", VideoRecord{}, 0},
		{"engagement capped", VideoRecord{EngagementRate: 50, Counts: Counts{Views: 100}}, 40 + 0.0006},
		{"views capped", VideoRecord{Counts: Counts{Views: 50_000_000}}, 60},
		{"both capped", VideoRecord{EngagementRate: 12, Counts: Counts{Views: 20_000_000}}, 100},
		{"mid", VideoRecord{EngagementRate: 5, Counts: Counts{Views: 1_000_000}}, 50*0.4 + 10*0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CompositeScore(tt.v), 1e-9)
		})
	}
}
