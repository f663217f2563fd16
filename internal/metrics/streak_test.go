package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		lastDate string
		want     int
	}{
		{"first session", 0, "", 1},
		{"same day keeps streak", 4, "2025-03-12", 4},
		{"same day never below one", 0, "2025-03-12", 1},
		{"consecutive day increments", 4, "2025-03-11", 5},
		{"gap resets", 9, "2025-03-09", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextStreak(tc.current, tc.lastDate, "2025-03-12"))
		})
	}
}

func TestNextStreakAcrossMonthBoundary(t *testing.T) {
	assert.Equal(t, 3, NextStreak(2, "2025-02-28", "2025-03-01"))
}

func TestSessionXP(t *testing.T) {
	assert.Equal(t, 54, SessionXP(30))
	assert.Equal(t, 2, SessionXP(1))
	assert.Equal(t, 2592, SessionXP(1440))
}
