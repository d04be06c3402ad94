package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		in   string
		want Horizon
	}{
		{"today", HorizonToday},
		{"", HorizonToday},
		{"Tomorrow", HorizonTomorrow},
		{" week ", HorizonWeek},
		{"month", HorizonMonth},
		{"3", Horizon(3)},
	}
	for _, tt := range tests {
		got, err := ParseHorizon(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"-1", "fortnight"} {
		_, err := ParseHorizon(bad)
		assert.Error(t, err, bad)
	}
}

func TestBoundary_EndOfTargetDay(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.Local)

	assert.Equal(t, time.Date(2026, 10, 16, 23, 59, 59, 0, time.Local), Boundary(now, 0))
	assert.Equal(t, time.Date(2026, 10, 17, 23, 59, 59, 0, time.Local), Boundary(now, 1))
	assert.Equal(t, time.Date(2026, 11, 15, 23, 59, 59, 0, time.Local), Boundary(now, 30))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	done := now

	assert.True(t, Task{EstimatedAt: now.AddDate(0, 0, -1)}.IsOverdue(now))
	assert.False(t, Task{EstimatedAt: now.Add(-time.Hour)}.IsOverdue(now), "earlier today is not overdue")
	assert.False(t, Task{EstimatedAt: now.AddDate(0, 0, -1), DoneAt: &done}.IsOverdue(now))
}
