package image

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/stats"
)

// Theme is the tri-state visual language shared by every card:
// blue = no goal or goal not yet met, green = daily goal met, gold = daily
// and weekly goals both met. Gold always wins over green.
type Theme int

const (
	ThemeBlue Theme = iota
	ThemeGreen
	ThemeGold
)

// Colors returns the gradient stops of a theme.
func (t Theme) Colors() (top, bottom string) {
	switch t {
	case ThemeGold:
		return "#eab308", "#f1dd89"
	case ThemeGreen:
		return "#22c55e", "#84cc16"
	default:
		return "#60a5fa", "#c084fc"
	}
}

func (t Theme) horizontalGradient(x0, x1, y float64) gg.Gradient {
	top, bottom := t.Colors()
	return LinearGradient(x0, y, x1, y, top, bottom)
}

func (t Theme) verticalGradient(x, y0, y1 float64) gg.Gradient {
	top, bottom := t.Colors()
	return LinearGradient(x, y0, x, y1, top, bottom)
}

// WeeklyState carries the weekly-goal progress shown on the daily card's
// bottom bar. Present only when a weekly goal is set.
type WeeklyState struct {
	Goal          int
	Steps         int
	RemainingDays int
}

// Succeeded reports whether the weekly total already meets the goal.
func (w *WeeklyState) Succeeded() bool {
	return w != nil && w.Goal > 0 && w.Steps >= w.Goal
}

// DailyCard is the render input of the card posted right after an entry.
// Goal, Streak and Weekly are three independent optional features; any
// combination of present/absent must render.
type DailyCard struct {
	Date   dateutil.Date
	Steps  int
	Goal   *int
	Streak *int
	Weekly *WeeklyState
	// Avatar is the already-fetched member avatar; nil falls back to the
	// flat background disc.
	Avatar image.Image
}

// SummaryCard is the render input shared by the weekly and monthly cards.
// Days holds one slot per day of the window (7 for a week, 28-31 for a
// month), nil for days without an entry.
type SummaryCard struct {
	Date dateutil.Date // Monday of the week, or 1st of the month
	Days []*int
	// DaysLogged is the member's all-time entry count, not the window's.
	DaysLogged   int
	Goal         *int
	BestStreak   *int
	SuccessCount *int
	WeeklyGoal   *int
	Avatar       image.Image
}

func (c *SummaryCard) total() int {
	total := 0
	for _, v := range c.Days {
		if v != nil {
			total += *v
		}
	}
	return total
}

func (c *SummaryCard) filledCount() int {
	n := 0
	for _, v := range c.Days {
		if v != nil {
			n++
		}
	}
	return n
}

func (c *SummaryCard) weeklySucceeded() bool {
	return stats.HasGoal(c.WeeklyGoal) && c.total() >= *c.WeeklyGoal
}

// allDailySucceeded reports whether every filled day met the daily goal,
// half of the gold-theme condition on summary cards.
func (c *SummaryCard) allDailySucceeded() bool {
	if !stats.HasGoal(c.Goal) || c.filledCount() == 0 {
		return false
	}
	for _, v := range c.Days {
		if v != nil && *v < *c.Goal {
			return false
		}
	}
	return true
}
