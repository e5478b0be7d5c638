package storage

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

// TestCurrentStreakConsecutive verifies that sessions today, yesterday and
// the day before count as a 3-day streak.
func TestCurrentStreakConsecutive(t *testing.T) {
	dates := []time.Time{day(0), day(-1), day(-2)}
	if got := CurrentStreak(dates, day(0)); got != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got)
	}
}

// TestCurrentStreakStartsYesterday verifies a streak is still active when the
// last session was yesterday.
func TestCurrentStreakStartsYesterday(t *testing.T) {
	dates := []time.Time{day(-1), day(-2)}
	if got := CurrentStreak(dates, day(0)); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got)
	}
}

// TestCurrentStreakBroken verifies that a session two days ago with nothing
// since yields no active streak.
func TestCurrentStreakBroken(t *testing.T) {
	dates := []time.Time{day(-2)}
	if got := CurrentStreak(dates, day(0)); got != 0 {
		t.Errorf("CurrentStreak = %d, want 0", got)
	}
}

// TestCurrentStreakStopsAtGap verifies the walk stops at the first missing
// day even when older sessions exist.
func TestCurrentStreakStopsAtGap(t *testing.T) {
	dates := []time.Time{day(0), day(-1), day(-3)}
	if got := CurrentStreak(dates, day(0)); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got)
	}
}

func TestCurrentStreakEmpty(t *testing.T) {
	if got := CurrentStreak(nil, day(0)); got != 0 {
		t.Errorf("CurrentStreak = %d, want 0", got)
	}
}

func TestMaxStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"single day", []time.Time{day(-5)}, 1},
		{"gap at D-2", []time.Time{day(0), day(-1), day(-3)}, 2},
		{"longest run in the past", []time.Time{day(0), day(-4), day(-5), day(-6), day(-7)}, 4},
		{"all consecutive", []time.Time{day(0), day(-1), day(-2)}, 3},
		{"no consecutive days", []time.Time{day(0), day(-2), day(-4)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxStreak(tt.dates); got != tt.want {
				t.Errorf("MaxStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCurrentStreakIgnoresTimeOfDay verifies that only the calendar date
// matters, not the completion timestamp's time component.
func TestCurrentStreakIgnoresTimeOfDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	if got := CurrentStreak(dates, now); got != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got)
	}
}
