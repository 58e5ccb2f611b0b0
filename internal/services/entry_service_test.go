package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridebot/stridebot/internal/database"
	"github.com/stridebot/stridebot/internal/dateutil"
)

func date(t *testing.T, s string) dateutil.Date {
	t.Helper()
	d, ok := dateutil.Parse(s)
	require.True(t, ok, "bad test date %s", s)
	return d
}

func TestEntryService_SetAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewEntryService(newTestDB(t))
	day := date(t, "2026-03-02")

	// Absent entry reads as nil.
	steps, err := s.GetEntry(ctx, "alice", day)
	require.NoError(t, err)
	assert.Nil(t, steps)

	// An entry can precede any goal: the user row is created implicitly.
	require.NoError(t, s.SetEntry(ctx, "alice", day, ptr(8200)))
	steps, err = s.GetEntry(ctx, "alice", day)
	require.NoError(t, err)
	require.NotNil(t, steps)
	assert.Equal(t, 8200, *steps)

	// Same day again: upsert, not a second row.
	require.NoError(t, s.SetEntry(ctx, "alice", day, ptr(9100)))
	steps, err = s.GetEntry(ctx, "alice", day)
	require.NoError(t, err)
	require.NotNil(t, steps)
	assert.Equal(t, 9100, *steps)

	n, err := s.CountEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Clearing stores nil, which reads back as "no entry".
	require.NoError(t, s.SetEntry(ctx, "alice", day, nil))
	steps, err = s.GetEntry(ctx, "alice", day)
	require.NoError(t, err)
	assert.Nil(t, steps)
}

func TestEntryService_ZeroIsNotNil(t *testing.T) {
	ctx := context.Background()
	s := NewEntryService(newTestDB(t))
	day := date(t, "2026-03-02")

	require.NoError(t, s.SetEntry(ctx, "alice", day, ptr(0)))
	steps, err := s.GetEntry(ctx, "alice", day)
	require.NoError(t, err)
	require.NotNil(t, steps)
	assert.Equal(t, 0, *steps)

	n, err := s.CountEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEntryService_EntriesForDates(t *testing.T) {
	ctx := context.Background()
	s := NewEntryService(newTestDB(t))

	require.NoError(t, s.SetEntry(ctx, "alice", date(t, "2026-03-02"), ptr(8000)))
	require.NoError(t, s.SetEntry(ctx, "alice", date(t, "2026-03-04"), ptr(9000)))
	require.NoError(t, s.SetEntry(ctx, "alice", date(t, "2026-03-05"), nil))
	require.NoError(t, s.SetEntry(ctx, "bob", date(t, "2026-03-03"), ptr(7000)))

	window := []dateutil.Date{
		date(t, "2026-03-02"), date(t, "2026-03-03"), date(t, "2026-03-04"),
		date(t, "2026-03-05"), date(t, "2026-03-06"),
	}
	entries, err := s.EntriesForDates(ctx, "alice", window)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 8000, *entries["2026-03-02"])
	assert.Equal(t, 9000, *entries["2026-03-04"])
	// Cleared and other-member entries stay invisible.
	assert.Nil(t, entries["2026-03-03"])
	assert.Nil(t, entries["2026-03-05"])
}

func TestEntryService_SuccessDates(t *testing.T) {
	ctx := context.Background()
	s := NewEntryService(newTestDB(t))

	require.NoError(t, s.SetEntry(ctx, "alice", date(t, "2026-03-04"), ptr(8000)))
	require.NoError(t, s.SetEntry(ctx, "alice", date(t, "2026-03-02"), ptr(12000)))
	require.NoError(t, s.SetEntry(ctx, "alice", date(t, "2026-03-03"), ptr(4000)))

	dates, err := s.SuccessDates(ctx, "alice", 8000)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2026-03-02", dates[0].String())
	assert.Equal(t, "2026-03-04", dates[1].String())
}

func TestEntryService_CleanDatabase(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	entries := NewEntryService(db)
	goals := NewGoalService(db)

	// alice: goal but no entries. bob: entries only. carol: cleared entry only.
	require.NoError(t, goals.SetGoals(ctx, "alice", Goals{Daily: ptr(8000)}))
	require.NoError(t, entries.SetEntry(ctx, "bob", date(t, "2026-03-02"), ptr(7000)))
	require.NoError(t, entries.SetEntry(ctx, "carol", date(t, "2026-03-02"), ptr(5000)))
	require.NoError(t, entries.SetEntry(ctx, "carol", date(t, "2026-03-02"), nil))

	require.NoError(t, entries.CleanDatabase(ctx))

	users, err := goals.ListUsers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)

	var remaining int64
	require.NoError(t, db.Model(&database.DailyEntry{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
