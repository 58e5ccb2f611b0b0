// Dev utility: renders one card of each kind with fixture data into
// ./preview/ so layout changes can be eyeballed without a Discord server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/image"
)

func ptr(n int) *int { return &n }

func main() {
	outDir := "preview"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Printf("Failed to create %s: %v\n", outDir, err)
		os.Exit(1)
	}

	date := dateutil.Now()
	monday := date.StartOfWeek()

	daily := image.DailyCard{
		Date:   date,
		Steps:  7350,
		Goal:   ptr(8000),
		Streak: ptr(4),
		Weekly: &image.WeeklyState{Goal: 50000, Steps: 31200, RemainingDays: 3},
	}

	dailyDone := daily
	dailyDone.Steps = 9100

	weekly := image.SummaryCard{
		Date:         monday,
		Days:         []*int{ptr(8200), ptr(9100), nil, ptr(7600), ptr(12050), ptr(8000), ptr(8437)},
		DaysLogged:   42,
		Goal:         ptr(8000),
		BestStreak:   ptr(9),
		SuccessCount: ptr(5),
		WeeklyGoal:   ptr(50000),
	}

	first := date.FirstDayOfMonth()
	days := make([]*int, first.DaysInMonth())
	for i := range days {
		switch i % 4 {
		case 0:
			days[i] = ptr(8200 + i*37)
		case 1:
			days[i] = ptr(6400 + i*21)
		case 2:
			days[i] = ptr(9050)
		}
	}
	monthly := image.SummaryCard{
		Date:         first,
		Days:         days,
		DaysLogged:   42,
		Goal:         ptr(8000),
		BestStreak:   ptr(9),
		SuccessCount: ptr(14),
		WeeklyGoal:   ptr(50000),
	}

	renders := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"daily.png", func() ([]byte, error) { return image.RenderDailyCard(daily) }},
		{"daily-done.png", func() ([]byte, error) { return image.RenderDailyCard(dailyDone) }},
		{"weekly.png", func() ([]byte, error) { return image.RenderWeeklyCard(weekly) }},
		{"monthly.png", func() ([]byte, error) { return image.RenderMonthlyCard(monthly) }},
	}

	for _, r := range renders {
		png, err := r.render()
		if err != nil {
			fmt.Printf("Failed to render %s: %v\n", r.name, err)
			os.Exit(1)
		}
		path := filepath.Join(outDir, r.name)
		if err := os.WriteFile(path, png, 0644); err != nil {
			fmt.Printf("Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, len(png))
	}
}
