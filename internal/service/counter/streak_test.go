package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	const (
		today     = "2025-03-09"
		yesterday = "2025-03-08"
	)

	tests := []struct {
		name     string
		current  uint64
		lastDate string
		want     uint64
	}{
		{"first jaap ever", 0, "", 1},
		{"second jaap same day", 4, today, 4},
		{"continues from yesterday", 4, yesterday, 5},
		{"gap of two days restarts", 9, "2025-03-07", 1},
		{"long gap restarts", 120, "2024-11-01", 1},
		{"clock skew date in future restarts", 3, "2025-03-10", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.current, tt.lastDate, today, yesterday)
			assert.Equal(t, tt.want, got)
		})
	}
}
