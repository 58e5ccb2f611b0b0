// Package stats holds the pure goal/entry/streak computations. Functions
// here never touch storage: they fold an already-fetched snapshot of entries
// into the numbers the renderers display.
//
// A nil steps value means "no entry", which is distinct from zero steps. A
// nil or non-positive goal means "no goal set"; success counts and streaks
// are only meaningful when a goal exists.
package stats

import (
	"github.com/stridebot/stridebot/internal/dateutil"
)

// HasGoal reports whether a goal is actually set. Zero and nil are both
// "no goal" so a stored 0 can never be divided or compared against.
func HasGoal(goal *int) bool {
	return goal != nil && *goal > 0
}

// Window returns n consecutive dates starting at start.
func Window(start dateutil.Date, n int) []dateutil.Date {
	dates := make([]dateutil.Date, n)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}

// MonthWindow returns every date of the month containing d.
func MonthWindow(d dateutil.Date) []dateutil.Date {
	return Window(d.FirstDayOfMonth(), d.DaysInMonth())
}

// WeekReport is the fold of one week of entries.
type WeekReport struct {
	// Days has one slot per date of the window in calendar order; nil slots
	// are days without an entry.
	Days []*int
	// Total sums the present values only.
	Total int
	// CountEntries is the number of present values in the window.
	CountEntries int
	// SuccessCount counts days with steps >= dailyGoal. Nil when no daily
	// goal is set.
	SuccessCount *int
	// Average is the ceiling of Total over filled days, 0 when nothing is
	// filled. Absent days are excluded from the denominator.
	Average int
}

// WeekSummary folds the entries of a 7-day window starting at weekStart.
// entries is keyed by canonical date string.
func WeekSummary(entries map[string]*int, weekStart dateutil.Date, dailyGoal *int) WeekReport {
	return WindowSummary(entries, Window(weekStart, 7), dailyGoal)
}

// MonthSummary folds a full calendar month the same way.
func MonthSummary(entries map[string]*int, anyDayOfMonth dateutil.Date, dailyGoal *int) WeekReport {
	return WindowSummary(entries, MonthWindow(anyDayOfMonth), dailyGoal)
}

// WindowSummary folds an arbitrary date window.
func WindowSummary(entries map[string]*int, window []dateutil.Date, dailyGoal *int) WeekReport {
	r := WeekReport{Days: make([]*int, len(window))}
	successes := 0
	for i, d := range window {
		v := entries[d.String()]
		r.Days[i] = v
		if v == nil {
			continue
		}
		r.Total += *v
		r.CountEntries++
		if HasGoal(dailyGoal) && *v >= *dailyGoal {
			successes++
		}
	}
	if HasGoal(dailyGoal) {
		r.SuccessCount = &successes
	}
	if r.CountEntries > 0 {
		// Ceiling: a week of 63400 steps over 7 days reads as 9058, never
		// rounded below what was actually walked.
		r.Average = (r.Total + r.CountEntries - 1) / r.CountEntries
	}
	return r
}

// CurrentStreak walks backward from reference over successDates (dates where
// the daily goal was met). Every prior day must be exactly one day before
// the previous one; the first gap stops the walk. If reference itself is not
// a success day the streak is 0.
func CurrentStreak(successDates []dateutil.Date, reference dateutil.Date) int {
	set := make(map[string]struct{}, len(successDates))
	for _, d := range successDates {
		set[d.String()] = struct{}{}
	}
	streak := 0
	for {
		d := reference.AddDays(-streak)
		if _, ok := set[d.String()]; !ok {
			return streak
		}
		streak++
	}
}

// BestStreak scans successDates (ascending calendar order) once and returns
// the longest run of consecutive dates.
func BestStreak(successDates []dateutil.Date) int {
	best, run := 0, 0
	for i, d := range successDates {
		if i > 0 && successDates[i-1].AddDays(1).SameDay(d) {
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

// WeeklyProgress describes how far a weekly goal is from being met.
type WeeklyProgress struct {
	Remaining int
	// RemainingDays counts the reference day itself: an entry saved on
	// Wednesday leaves 5 days (Wed..Sun) to spread the remainder over.
	RemainingDays int
}

// WeeklyProgressOf returns nil when no weekly goal is set.
func WeeklyProgressOf(weeklyGoal *int, weekTotal int, reference dateutil.Date) *WeeklyProgress {
	if !HasGoal(weeklyGoal) {
		return nil
	}
	remaining := *weeklyGoal - weekTotal
	if remaining < 0 {
		remaining = 0
	}
	return &WeeklyProgress{
		Remaining:     remaining,
		RemainingDays: 7 - reference.Weekday() + 1,
	}
}

// IsWindowComplete reports whether every date of the window has an entry.
// Used to fire the weekly/monthly summary right after the closing entry.
func IsWindowComplete(entries map[string]*int, window []dateutil.Date) bool {
	for _, d := range window {
		if entries[d.String()] == nil {
			return false
		}
	}
	return true
}
