package image

import (
	"math"

	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/stats"
)

// RenderDailyCard paints the progress-ring card shown right after an entry
// is saved: avatar disc on the left, ring with the day's count on the right,
// streak badge when the goal is met, weekly progress bar at the bottom.
func RenderDailyCard(card DailyCard) ([]byte, error) {
	goal := 0
	if stats.HasGoal(card.Goal) {
		goal = *card.Goal
	}
	steps := max(card.Steps, 0)
	streak := 0
	if card.Streak != nil && *card.Streak > 0 {
		streak = *card.Streak
	}

	d := NewDraw(CanvasWidth, CanvasHeight)
	w, h := d.W, d.H

	d.Text(lang.DailyCardTitle(card.Date), w/2, 50, "#f8fafc", 44, "center")

	leftX := 0.3 * w
	rightX := 0.7 * w
	centerY := 0.52 * h
	radius := 0.35 * h
	const padding = 6.0
	const arcWidth = 20.0

	d.BackgroundCircle(leftX, centerY, radius)
	d.AvatarCircle(leftX, centerY, radius-padding, card.Avatar)

	d.BackgroundCircle(rightX, centerY, radius)

	widgetRadius := radius - padding - arcWidth/2

	// Partial arcs are scaled by 0.98 so a nearly-done ring never looks
	// closed; only an actually met goal closes the circle.
	progress := 0.0
	if goal != 0 && steps != 0 {
		if steps >= goal {
			progress = 1
		} else {
			progress = float64(steps) / float64(goal) * 0.98
		}
	}

	weeklySucceeded := card.Weekly.Succeeded()
	dailySucceeded := goal > 0 && steps >= goal

	if goal > 0 {
		d.Ring(rightX, centerY, widgetRadius, arcWidth, "#374151")
	}

	if progress == 1 {
		theme := ThemeGreen
		if weeklySucceeded {
			theme = ThemeGold
		}
		d.RingGradient(rightX, centerY, widgetRadius, arcWidth,
			theme.horizontalGradient(rightX-widgetRadius, rightX+widgetRadius, centerY))
	} else if progress > 0 {
		d.Arc(rightX, centerY, widgetRadius, arcWidth,
			ThemeBlue.horizontalGradient(rightX-widgetRadius, rightX+widgetRadius, centerY),
			-0.25, progress-0.25)
	}

	mainY := centerY
	if goal != 0 {
		mainY = centerY - 22
	}
	d.Text(lang.N(steps), rightX, mainY, "#e5e7eb", 80, "center")
	if goal != 0 {
		d.Text(lang.GoalFraction(goal), rightX, centerY+45, "#94a3b8", 34, "center")
	}

	if progress == 1 && streak != 0 {
		badgeX := rightX + widgetRadius - 36
		badgeY := centerY - widgetRadius + 36
		badgeColor := "#16a34a"
		if weeklySucceeded {
			badgeColor = "#eab308"
		}
		d.RoundedRect(badgeX-56, badgeY-24, 112, 48, 14, badgeColor)
		d.Text(lang.StreakBadge(streak), badgeX, badgeY, "#0b1120", 24, "center")
	}

	if card.Weekly != nil && card.Weekly.Goal > 0 {
		weekly := card.Weekly
		remaining := max(weekly.Goal-weekly.Steps, 0)
		ratio := math.Min(1, float64(weekly.Steps)/float64(weekly.Goal))
		remainingDays := max(weekly.RemainingDays, 0)
		perDay := remaining
		if remainingDays > 0 {
			perDay = (remaining + remainingDays - 1) / remainingDays
		}

		const barPadding = 12.0
		barHeight := arcWidth + padding*2
		barRadius := barHeight / 2
		barWidth := w - barPadding*2
		barY := h - barPadding - barHeight

		d.RoundedRectGradient(barPadding, barY, barWidth, barHeight, barRadius,
			LinearGradient(barPadding, barY, barPadding, barY+barHeight, "#0b1220", "#0f172a"))
		d.RoundedRect(barPadding+padding, barY+padding, barWidth-padding*2, barHeight-padding*2, barRadius, "#374151")

		theme := ThemeBlue
		if weeklySucceeded && dailySucceeded {
			theme = ThemeGold
		} else if weeklySucceeded {
			theme = ThemeGreen
		}

		fillWidth := arcWidth + math.Round((barWidth-padding*2-arcWidth)*ratio)
		if fillWidth > 0 {
			d.RoundedRectGradient(barPadding+padding, barY+padding, fillWidth, barHeight-padding*2, barRadius,
				theme.horizontalGradient(barPadding, barPadding+barWidth, barY))
		}

		label := lang.WeeklyBarProgress(weekly.Steps, weekly.Goal)
		if !weeklySucceeded && remainingDays > 1 {
			label += lang.WeeklyRemainingPerDay(perDay)
		} else if !weeklySucceeded && remainingDays == 1 {
			label += lang.WeeklyRemainingLast(perDay)
		}
		d.Text(label, w/2, barY-16, "#e5e7eb", 22, "center")
	}

	return d.PNG()
}
