// Package leaderboard handles the weekly score boundary and the simulated
// weekly standings shown on the leaderboard screen.
package leaderboard

import (
	"time"

	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/player"
)

// WeekStart returns midnight of the most recent start day at or before t, in t's location.
func WeekStart(t time.Time, start time.Weekday) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	back := (int(day.Weekday()) - int(start) + 7) % 7
	return day.AddDate(0, 0, -back)
}

// WeekID identifies the week containing t.
func WeekID(t time.Time, start time.Weekday) string {
	return core.DateString(WeekStart(t, start))
}

// ResetIfDue zeroes the weekly score when the last reset predates the current
// week boundary. Lifetime score is untouched. It reports whether a reset happened.
func ResetIfDue(s player.State, now time.Time, start time.Weekday) (player.State, bool) {
	boundary := WeekID(now, start)
	last := s.Progression.LastWeeklyReset
	if last == "" {
		last = player.NeverDate
	}
	// YYYY-MM-DD strings order chronologically.
	if last >= boundary {
		return s, false
	}
	next := s.Clone()
	next.Progression.WeeklyScore = 0
	next.Progression.LastWeeklyReset = boundary
	return next, true
}
