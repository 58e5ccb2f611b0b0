package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryFixture(t *testing.T) (*SummaryService, *GoalService, *EntryService) {
	t.Helper()
	db := newTestDB(t)
	goals := NewGoalService(db)
	entries := NewEntryService(db)
	return NewSummaryService(goals, entries), goals, entries
}

func TestSummaryService_DailyCardNoData(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newSummaryFixture(t)

	card, err := s.DailyCard(ctx, "ghost", date(t, "2026-03-04"))
	require.NoError(t, err)
	assert.Equal(t, 0, card.Steps)
	assert.Nil(t, card.Goal)
	assert.Nil(t, card.Streak)
	assert.Nil(t, card.Weekly)
}

func TestSummaryService_DailyCardWithGoals(t *testing.T) {
	ctx := context.Background()
	s, goals, entries := newSummaryFixture(t)

	require.NoError(t, goals.SetGoals(ctx, "alice", Goals{Daily: ptr(8000), Weekly: ptr(50000)}))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-02"), ptr(8200)))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-03"), ptr(9100)))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-04"), ptr(14000)))

	card, err := s.DailyCard(ctx, "alice", date(t, "2026-03-04"))
	require.NoError(t, err)
	assert.Equal(t, 14000, card.Steps)
	require.NotNil(t, card.Goal)
	assert.Equal(t, 8000, *card.Goal)
	require.NotNil(t, card.Streak)
	assert.Equal(t, 3, *card.Streak)
	require.NotNil(t, card.Weekly)
	assert.Equal(t, 50000, card.Weekly.Goal)
	assert.Equal(t, 31300, card.Weekly.Steps)
	// Wednesday: Wed..Sun, the entry day included.
	assert.Equal(t, 5, card.Weekly.RemainingDays)
}

func TestSummaryService_DailyCardStreakBreaks(t *testing.T) {
	ctx := context.Background()
	s, goals, entries := newSummaryFixture(t)

	require.NoError(t, goals.SetGoals(ctx, "alice", Goals{Daily: ptr(8000)}))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-02"), ptr(9000)))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-03"), ptr(4000)))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-04"), ptr(9000)))

	card, err := s.DailyCard(ctx, "alice", date(t, "2026-03-04"))
	require.NoError(t, err)
	require.NotNil(t, card.Streak)
	assert.Equal(t, 1, *card.Streak)
}

func TestSummaryService_WeeklyCard(t *testing.T) {
	ctx := context.Background()
	s, goals, entries := newSummaryFixture(t)
	monday := date(t, "2026-03-02")

	require.NoError(t, goals.SetGoals(ctx, "alice", Goals{Daily: ptr(8000), Weekly: ptr(50000)}))
	require.NoError(t, entries.SetEntry(ctx, "alice", monday, ptr(8000)))
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-03-04"), ptr(4000)))
	// An older entry outside the window still counts toward DaysLogged.
	require.NoError(t, entries.SetEntry(ctx, "alice", date(t, "2026-02-10"), ptr(9000)))

	card, err := s.WeeklyCard(ctx, "alice", monday)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", card.Date.String())
	require.Len(t, card.Days, 7)
	require.NotNil(t, card.Days[0])
	assert.Equal(t, 8000, *card.Days[0])
	assert.Nil(t, card.Days[1])
	require.NotNil(t, card.Days[2])
	assert.Equal(t, 4000, *card.Days[2])
	assert.Equal(t, 3, card.DaysLogged)
	require.NotNil(t, card.SuccessCount)
	assert.Equal(t, 1, *card.SuccessCount)
	require.NotNil(t, card.BestStreak)
	assert.Equal(t, 1, *card.BestStreak)
	require.NotNil(t, card.WeeklyGoal)
	assert.Equal(t, 50000, *card.WeeklyGoal)
}

func TestSummaryService_WeeklyCardNoGoal(t *testing.T) {
	ctx := context.Background()
	s, _, entries := newSummaryFixture(t)
	monday := date(t, "2026-03-02")

	require.NoError(t, entries.SetEntry(ctx, "bob", monday, ptr(6000)))

	card, err := s.WeeklyCard(ctx, "bob", monday)
	require.NoError(t, err)
	assert.Nil(t, card.Goal)
	assert.Nil(t, card.SuccessCount)
	assert.Nil(t, card.BestStreak)
	assert.Nil(t, card.WeeklyGoal)
	assert.Equal(t, 1, card.DaysLogged)
}

func TestSummaryService_MonthlyCard(t *testing.T) {
	ctx := context.Background()
	s, goals, entries := newSummaryFixture(t)

	require.NoError(t, goals.SetGoals(ctx, "alice", Goals{Daily: ptr(1000)}))
	first := date(t, "2026-02-01")
	for i := 0; i < 28; i++ {
		require.NoError(t, entries.SetEntry(ctx, "alice", first.AddDays(i), ptr(1000+i)))
	}

	card, err := s.MonthlyCard(ctx, "alice", date(t, "2026-02-15"))
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", card.Date.String())
	require.Len(t, card.Days, 28)
	require.NotNil(t, card.SuccessCount)
	assert.Equal(t, 28, *card.SuccessCount)
	require.NotNil(t, card.BestStreak)
	assert.Equal(t, 28, *card.BestStreak)
}

func TestSummaryService_AfterEntryCards(t *testing.T) {
	ctx := context.Background()
	s, _, entries := newSummaryFixture(t)
	monday := date(t, "2026-03-02")

	for i := 0; i < 6; i++ {
		require.NoError(t, entries.SetEntry(ctx, "alice", monday.AddDays(i), ptr(8000)))
	}

	// Six of seven days filled: nothing fires yet.
	week, month, err := s.AfterEntryCards(ctx, "alice", monday.AddDays(5))
	require.NoError(t, err)
	assert.Nil(t, week)
	assert.Nil(t, month)

	// The Sunday entry completes the week.
	require.NoError(t, entries.SetEntry(ctx, "alice", monday.AddDays(6), ptr(8000)))
	week, month, err = s.AfterEntryCards(ctx, "alice", monday.AddDays(6))
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, "2026-03-02", week.Date.String())
	assert.Nil(t, month)
}

func TestSummaryService_AfterEntryCardsMonth(t *testing.T) {
	ctx := context.Background()
	s, _, entries := newSummaryFixture(t)

	first := date(t, "2026-02-01")
	for i := 0; i < 28; i++ {
		require.NoError(t, entries.SetEntry(ctx, "alice", first.AddDays(i), ptr(1000)))
	}

	// 2026-02-28 is a Saturday: the month closes but the week does not.
	week, month, err := s.AfterEntryCards(ctx, "alice", date(t, "2026-02-28"))
	require.NoError(t, err)
	assert.Nil(t, week)
	require.NotNil(t, month)
	assert.Equal(t, "2026-02-01", month.Date.String())
}
