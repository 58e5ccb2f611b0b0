package image

import (
	"math"

	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/stats"
)

// RenderWeeklyCard paints the weekly summary: avatar and stats card on the
// left, a 7-bar chart on the right, the weekly-goal progress bar at the
// bottom.
func RenderWeeklyCard(card SummaryCard) ([]byte, error) {
	total := card.total()
	filled := card.filledCount()
	average := 0
	if filled > 0 {
		// Ceiling, consistent with stats.WeekSummary.
		average = (total + filled - 1) / filled
	}

	d := NewDraw(CanvasWidth, CanvasHeight)
	w, h := d.W, d.H

	d.Text(lang.WeeklyCardTitle(card.Date), w/2, 40, "#f8fafc", 42, "center")

	const (
		pad           = 32.0
		topPad        = 80.0
		rightMargin   = 48.0
		barAreaHeight = 52.0
		cardW         = 360.0
		cardH         = 210.0
	)
	bottomMargin := 28.0 + barAreaHeight

	hasDailyGoal := stats.HasGoal(card.Goal)
	weeklyGoalValid := stats.HasGoal(card.WeeklyGoal)
	weeklySucceeded := card.weeklySucceeded()
	isGoldTheme := weeklySucceeded && card.allDailySucceeded()

	statsY := h - bottomMargin - cardH

	availableTop := math.Max(0, statsY-topPad)
	avatarDiameter := math.Max(128, math.Min(320, availableTop-16))
	avatarRadius := math.Floor(avatarDiameter / 2)
	avatarX := pad + avatarRadius + (cardW/2 - avatarRadius)
	avatarY := topPad + avatarRadius

	d.BackgroundCircle(avatarX, avatarY, avatarRadius)
	d.AvatarCircle(avatarX, avatarY, avatarRadius-6, card.Avatar)

	d.RoundedRectGradient(pad, statsY, cardW, cardH, 18,
		LinearGradient(pad, statsY, pad+cardW, statsY+cardH, "#0b1220", "#0f172a"))

	lineStart := statsY + 24
	const lineStep = 38.0
	line := 0
	statLine := func(text string) {
		d.Text(text, pad+18, lineStart+float64(line)*lineStep, "#cbd5e1", 26, "left")
		line++
	}
	statLine(lang.FieldDaysEntered(card.DaysLogged))
	if card.Goal != nil {
		if card.SuccessCount != nil {
			statLine(lang.FieldDaysSucceeded(*card.SuccessCount))
		}
		if card.BestStreak != nil {
			statLine(lang.FieldBestStreak(*card.BestStreak))
		}
	}

	chartX := pad + cardW + 24
	chartY := topPad
	chartW := w - chartX - rightMargin
	chartH := h - chartY - bottomMargin
	d.RoundedRectGradient(chartX, chartY, chartW, chartH, 20,
		LinearGradient(chartX, chartY, chartX+chartW, chartY+chartH, "#0b1220", "#0f172a"))

	maxVal := 1
	if hasDailyGoal {
		maxVal = *card.Goal
	}
	for _, v := range card.Days {
		if v != nil && *v > maxVal {
			maxVal = *v
		}
	}

	innerX := chartX + pad
	innerY := chartY + pad
	innerW := chartW - pad*2
	innerH := chartH - pad*2

	const n = 7
	const gap = 18.0
	barW := math.Floor((innerW - gap*(n-1)) / n)
	for i := 0; i < n; i++ {
		var val *int
		if i < len(card.Days) {
			val = card.Days[i]
		}

		bx := innerX + float64(i)*(barW+gap)
		d.RoundedRect(bx, innerY, barW, innerH, 10, "#111827")

		fillH := 0.0
		if val != nil {
			fillH = math.Max(0, math.Round(innerH*float64(*val)/float64(maxVal)))
		}
		by := innerY + innerH - fillH
		if val != nil {
			theme := ThemeBlue
			if isGoldTheme {
				theme = ThemeGold
			} else if hasDailyGoal && *val >= *card.Goal {
				theme = ThemeGreen
			}
			d.RoundedRectGradient(bx, by, barW, fillH, 10, theme.verticalGradient(bx, by, innerY+innerH))
			d.Text(lang.N(*val), bx+barW/2, by-16, "#e5e7eb", 20, "center")
		} else {
			d.Text("-", bx+barW/2, by-16, "#e5e7eb", 20, "center")
		}

		d.Text(dateutil.DayLetters[i], bx+barW/2, chartY+chartH-20, "#94a3b8", 20, "center")
	}

	if hasDailyGoal {
		goalY := innerY + innerH - math.Round(innerH*float64(*card.Goal)/float64(maxVal))
		d.HorizontalDashedLine(chartX, chartX+chartW, goalY, 2, "#94a3b8")
	}

	// Bottom progress bar; filled only when a weekly goal exists, the label
	// always shows total and average.
	const (
		barPadding  = 12.0
		innerBarPad = 6.0
		barHeight   = 32.0
	)
	barRadius := barHeight / 2
	barWidth := w - barPadding*2
	barY := h - barPadding - barHeight

	d.RoundedRectGradient(barPadding, barY, barWidth, barHeight, barRadius,
		LinearGradient(barPadding, barY, barPadding, barY+barHeight, "#0b1220", "#0f172a"))
	d.RoundedRect(barPadding+innerBarPad, barY+innerBarPad, barWidth-innerBarPad*2, barHeight-innerBarPad*2, barRadius, "#374151")

	if weeklyGoalValid {
		theme := ThemeBlue
		if isGoldTheme {
			theme = ThemeGold
		} else if weeklySucceeded {
			theme = ThemeGreen
		}
		minFillWidth := barHeight - innerBarPad*2
		ratio := math.Min(1, float64(total)/float64(*card.WeeklyGoal))
		fillWidth := minFillWidth + math.Round((barWidth-innerBarPad*2-minFillWidth)*ratio)
		d.RoundedRectGradient(barPadding+innerBarPad, barY+innerBarPad, fillWidth, barHeight-innerBarPad*2, barRadius,
			theme.horizontalGradient(barPadding, barPadding+barWidth, barY))
	}
	d.Text(lang.WeeklyBarLabel(total, average), w/2, barY-14, "#e5e7eb", 20, "center")

	return d.PNG()
}
