package storage

import (
	"context"
	"fmt"
	"time"
)

// Streaks holds the two streak figures shown on the profile screen.
type Streaks struct {
	Current int `json:"streak"`
	Max     int `json:"maxStreak"`
}

// GetStreaks computes the user's current and all-time-best workout streaks
// from the distinct calendar days with a completed session.
func (db *DB) GetStreaks(ctx context.Context, userID int64) (Streaks, error) {
	dates, err := db.CompletedSessionDates(ctx, userID)
	if err != nil {
		return Streaks{}, err
	}
	return Streaks{
		Current: CurrentStreak(dates, time.Now()),
		Max:     MaxStreak(dates),
	}, nil
}

// CompletedSessionDates returns the distinct calendar dates on which the user
// completed a session, most recent first.
func (db *DB) CompletedSessionDates(ctx context.Context, userID int64) ([]time.Time, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT data_fim::date
		 FROM treino_sessao
		 WHERE id_users = $1 AND data_fim IS NOT NULL
		 ORDER BY data_fim::date DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying completed session dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning session date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// CurrentStreak counts consecutive calendar days with a completed session,
// walking backwards from today. A streak is still "active" if the last
// session was yesterday, so a day that hasn't been trained yet doesn't reset
// it. Dates must be distinct calendar days, most recent first.
func CurrentStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today := truncateDay(now)
	cursor := today
	if !sameDay(dates[0], today) {
		cursor = today.AddDate(0, 0, -1)
		if !sameDay(dates[0], cursor) {
			return 0
		}
	}

	streak := 0
	for _, d := range dates {
		if !sameDay(d, cursor) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// MaxStreak returns the longest run of consecutive calendar days over the
// whole history. Dates must be distinct calendar days, most recent first.
func MaxStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(dates); i++ {
		// dates are descending, so the previous entry is one day later
		if sameDay(dates[i], dates[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
