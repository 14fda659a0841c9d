package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		age  time.Duration
		want string
	}{
		{0, "just now"},
		{-5 * time.Second, "just now"},
		{12 * time.Second, "12s ago"},
		{90 * time.Second, "1m30s ago"},
		{2*time.Hour + 5*time.Minute, "2h05m ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(now, now.Add(-tt.age)))
		})
	}
}

func TestIsTimestampStale(t *testing.T) {
	now := time.Now()

	assert.False(t, IsTimestampStale(now, now.Add(-10*time.Second), time.Minute))
	assert.True(t, IsTimestampStale(now, now.Add(-2*time.Minute), time.Minute))
}
