package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsQuiet(t *testing.T) {
	quiet := []int{0, 1, 2}
	assert.True(t, IsQuiet(time.Date(2025, 1, 1, 1, 30, 0, 0, time.UTC), quiet))
	assert.False(t, IsQuiet(time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC), quiet))
	assert.False(t, IsQuiet(time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC), nil))
}

func TestNextWindow(t *testing.T) {
	quiet := []int{22, 23, 0, 1}
	open := time.Date(2025, 1, 1, 12, 15, 0, 0, time.UTC)
	assert.Equal(t, open, NextWindow(open, quiet))

	late := time.Date(2025, 1, 1, 22, 40, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 2, 2, 0, 0, 0, time.UTC), NextWindow(late, quiet))

	all := make([]int, 24)
	for i := range all {
		all[i] = i
	}
	assert.Equal(t, late, NextWindow(late, all))
}
