package image

import (
	"math"

	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/stats"
)

// RenderMonthlyCard paints the monthly summary: the stats column on the
// left and a 7-column grid of day rings on the right, front-padded so
// column one is always Monday.
func RenderMonthlyCard(card SummaryCard) ([]byte, error) {
	total := card.total()
	filled := card.filledCount()
	average := 0
	if filled > 0 {
		// Floor here; the monthly card has always truncated its average.
		average = total / filled
	}

	d := NewDraw(CanvasWidth, CanvasHeight)
	w, h := d.W, d.H

	d.Text(lang.MonthlyCardTitle(card.Date), w/2, 40, "#f8fafc", 42, "center")

	const (
		pad          = 32.0
		topPad       = 80.0
		rightMargin  = 48.0
		bottomMargin = 48.0
		cardW        = 360.0
		cardH        = 200.0
	)

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
	statLine(lang.FieldTotal(total))
	statLine(lang.FieldAverage(average))
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

	const (
		innerPad       = 20.0
		cols           = 7
		labelHeight    = 24.0
		dayLabelHeight = 20.0
		gapX           = 12.0
		gapY           = 16.0
	)
	innerX := chartX + innerPad
	innerY := chartY + innerPad
	innerW := chartW - innerPad*2
	innerH := chartH - innerPad*2

	cellW := (innerW - gapX*(cols-1)) / cols

	firstWeekDay := card.Date.FirstDayOfMonth().Weekday() // 1 = Monday
	daysInMonth := len(card.Days)
	rowsNeeded := (firstWeekDay - 1 + daysInMonth + cols - 1) / cols
	rows := max(4, min(6, rowsNeeded))

	cellH := (innerH - labelHeight - dayLabelHeight - gapY*float64(rows-1)) / float64(rows)
	maxRadius := math.Min(cellW, cellH) / 2

	for col := 0; col < cols; col++ {
		x := innerX + float64(col)*(cellW+gapX) + cellW/2
		d.Text(dateutil.DayLetters[col], x, innerY+12, "#94a3b8", 16, "center")
	}

	hasDailyGoal := stats.HasGoal(card.Goal)
	weeklyGoalValid := stats.HasGoal(card.WeeklyGoal)

	ringWidth := math.Max(4, math.Min(10, maxRadius*0.2))
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		steps := card.Days[dayNum-1]

		gridIndex := firstWeekDay - 1 + dayNum
		col := (gridIndex - 1) % cols
		row := (gridIndex - 1) / cols
		if row >= rows {
			continue
		}

		x := innerX + float64(col)*(cellW+gapX) + cellW/2
		y := innerY + labelHeight + float64(row)*(cellH+gapY) + cellH/2

		d.Ring(x, y, maxRadius*0.8, ringWidth, "#111827")

		if steps != nil {
			// The gold rule for a cell looks at the total of its grid row,
			// i.e. the Monday..Sunday week containing that day.
			weekStartDay := 1 - (firstWeekDay - 1) + row*7 // may be <= 0
			weekTotal := 0
			for dn := weekStartDay; dn <= weekStartDay+6; dn++ {
				if dn < 1 || dn > daysInMonth {
					continue
				}
				if v := card.Days[dn-1]; v != nil {
					weekTotal += *v
				}
			}
			weeklySucceeded := weeklyGoalValid && weekTotal >= *card.WeeklyGoal

			theme := ThemeBlue
			if hasDailyGoal {
				if *steps >= *card.Goal {
					if weeklySucceeded {
						theme = ThemeGold
					} else {
						theme = ThemeGreen
					}
				}
			} else if weeklySucceeded {
				theme = ThemeGold
			}

			d.RingGradient(x, y, maxRadius*0.8, ringWidth, theme.horizontalGradient(x-maxRadius, x+maxRadius, y))
			d.Text(lang.N(*steps), x, y, "#ffffff", 14, "center")
		}

		d.Text(lang.N(dayNum), x, y+maxRadius*0.8+14, "#64748b", 14, "center")
	}

	return d.PNG()
}
