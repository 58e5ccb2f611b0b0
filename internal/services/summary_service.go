package services

import (
	"context"
	"fmt"

	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/image"
	"github.com/stridebot/stridebot/internal/stats"
)

// SummaryService folds goals, entries and streaks into the render-ready
// card structures. It re-reads storage on every call; nothing is cached.
// A member with no record at all yields a card with every optional field
// absent, never an error.
type SummaryService struct {
	goals   *GoalService
	entries *EntryService
}

func NewSummaryService(goals *GoalService, entries *EntryService) *SummaryService {
	return &SummaryService{goals: goals, entries: entries}
}

// DailyCard assembles the card shown right after an entry for date is saved.
// The avatar is left nil; the caller owns the fetch.
func (s *SummaryService) DailyCard(ctx context.Context, userID string, date dateutil.Date) (*image.DailyCard, error) {
	goals, err := s.goals.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	steps, err := s.entries.GetEntry(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	card := &image.DailyCard{Date: date, Goal: goals.Daily}
	if steps != nil {
		card.Steps = *steps
	}

	if stats.HasGoal(goals.Daily) {
		successDates, err := s.entries.SuccessDates(ctx, userID, *goals.Daily)
		if err != nil {
			return nil, err
		}
		streak := stats.CurrentStreak(successDates, date)
		card.Streak = &streak
	}

	if stats.HasGoal(goals.Weekly) {
		window := stats.Window(date.StartOfWeek(), 7)
		entries, err := s.entries.EntriesForDates(ctx, userID, window)
		if err != nil {
			return nil, err
		}
		report := stats.WeekSummary(entries, date.StartOfWeek(), goals.Daily)
		progress := stats.WeeklyProgressOf(goals.Weekly, report.Total, date)
		card.Weekly = &image.WeeklyState{
			Goal:          *goals.Weekly,
			Steps:         report.Total,
			RemainingDays: progress.RemainingDays,
		}
	}

	return card, nil
}

// WeeklyCard assembles the summary of the week starting at monday.
func (s *SummaryService) WeeklyCard(ctx context.Context, userID string, monday dateutil.Date) (*image.SummaryCard, error) {
	return s.periodCard(ctx, userID, monday, stats.Window(monday, 7))
}

// MonthlyCard assembles the summary of the month containing date.
func (s *SummaryService) MonthlyCard(ctx context.Context, userID string, date dateutil.Date) (*image.SummaryCard, error) {
	return s.periodCard(ctx, userID, date.FirstDayOfMonth(), stats.MonthWindow(date))
}

func (s *SummaryService) periodCard(ctx context.Context, userID string, start dateutil.Date, window []dateutil.Date) (*image.SummaryCard, error) {
	goals, err := s.goals.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.EntriesForDates(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	report := stats.WindowSummary(entries, window, goals.Daily)

	daysLogged, err := s.entries.CountEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	card := &image.SummaryCard{
		Date:         start,
		Days:         report.Days,
		DaysLogged:   daysLogged,
		Goal:         goals.Daily,
		SuccessCount: report.SuccessCount,
		WeeklyGoal:   goals.Weekly,
	}

	if stats.HasGoal(goals.Daily) {
		successDates, err := s.entries.SuccessDates(ctx, userID, *goals.Daily)
		if err != nil {
			return nil, err
		}
		best := stats.BestStreak(successDates)
		card.BestStreak = &best
	}

	return card, nil
}

// AfterEntryCards returns the weekly and/or monthly summary cards whose
// window the entry at date just completed, nil otherwise. Saving the last
// missing day of a week (or month) triggers its summary immediately instead
// of waiting for the scheduler.
func (s *SummaryService) AfterEntryCards(ctx context.Context, userID string, date dateutil.Date) (week, month *image.SummaryCard, err error) {
	weekWindow := stats.Window(date.StartOfWeek(), 7)
	weekEntries, err := s.entries.EntriesForDates(ctx, userID, weekWindow)
	if err != nil {
		return nil, nil, err
	}
	if stats.IsWindowComplete(weekEntries, weekWindow) {
		week, err = s.WeeklyCard(ctx, userID, date.StartOfWeek())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to assemble weekly card: %w", err)
		}
	}

	monthWindow := stats.MonthWindow(date)
	monthEntries, err := s.entries.EntriesForDates(ctx, userID, monthWindow)
	if err != nil {
		return nil, nil, err
	}
	if stats.IsWindowComplete(monthEntries, monthWindow) {
		month, err = s.MonthlyCard(ctx, userID, date)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to assemble monthly card: %w", err)
		}
	}

	return week, month, nil
}
