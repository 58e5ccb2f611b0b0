package scheduler

import (
	"context"
	"errors"
	stdimage "image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridebot/stridebot/internal/database"
	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/services"
)

func ptr(n int) *int { return &n }

type promptCall struct {
	date    string
	userIDs []string
}

type summaryCall struct {
	content  string
	filename string
}

type fakePoster struct {
	prompts   []promptCall
	summaries []summaryCall
	failSends bool
}

func (p *fakePoster) PostDailyPrompt(ctx context.Context, date dateutil.Date, userIDs []string) error {
	if p.failSends {
		return errors.New("gateway down")
	}
	p.prompts = append(p.prompts, promptCall{date: date.String(), userIDs: userIDs})
	return nil
}

func (p *fakePoster) PostSummary(ctx context.Context, content, filename string, png []byte) error {
	if p.failSends {
		return errors.New("gateway down")
	}
	p.summaries = append(p.summaries, summaryCall{content: content, filename: filename})
	return nil
}

func (p *fakePoster) AvatarImage(ctx context.Context, userID string) (stdimage.Image, error) {
	return nil, errors.New("no avatar in tests")
}

type fixture struct {
	sched   *Scheduler
	poster  *fakePoster
	goals   *services.GoalService
	entries *services.EntryService
	meta    *services.MetaService
}

func newFixture(t *testing.T, clock string) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	goals := services.NewGoalService(db)
	entries := services.NewEntryService(db)
	summaries := services.NewSummaryService(goals, entries)
	meta := services.NewMetaService(db)
	poster := &fakePoster{}

	sched := New(goals, entries, summaries, meta, poster)
	sched.now = pinClock(t, clock)
	return &fixture{sched: sched, poster: poster, goals: goals, entries: entries, meta: meta}
}

// pinClock parses "2026-03-02 19:05" in the reference zone.
func pinClock(t *testing.T, s string) func() dateutil.Date {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	require.NoError(t, err)
	return func() dateutil.Date { return dateutil.FromTime(ts) }
}

func TestDailyPromptFiresOnceAfterThreshold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2026-03-04 19:05")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))
	require.NoError(t, f.goals.SetGoals(ctx, "bob", services.Goals{Daily: ptr(6000)}))
	// bob already logged today, alice did not.
	day, _ := dateutil.Parse("2026-03-04")
	require.NoError(t, f.entries.SetEntry(ctx, "bob", day, ptr(7000)))

	f.sched.Tick(ctx)
	require.Len(t, f.poster.prompts, 1)
	assert.Equal(t, "2026-03-04", f.poster.prompts[0].date)
	assert.Equal(t, []string{"alice"}, f.poster.prompts[0].userIDs)

	// Same evening, next poll: the marker suppresses a second send.
	f.sched.Tick(ctx)
	assert.Len(t, f.poster.prompts, 1)

	// Next day the marker differs and the prompt fires again.
	f.sched.now = pinClock(t, "2026-03-05 19:05")
	f.sched.Tick(ctx)
	assert.Len(t, f.poster.prompts, 2)
}

func TestDailyPromptRespectsHourThreshold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2026-03-04 18:59")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))

	f.sched.Tick(ctx)
	assert.Empty(t, f.poster.prompts)
}

func TestDailyPromptSkipsWhenEveryoneLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2026-03-04 19:05")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))
	day, _ := dateutil.Parse("2026-03-04")
	require.NoError(t, f.entries.SetEntry(ctx, "alice", day, ptr(9000)))

	f.sched.Tick(ctx)
	assert.Empty(t, f.poster.prompts)

	// The period is still marked done: nobody gets pinged at 19:06 either.
	v, err := f.meta.Get(ctx, services.MetaLastDailyPrompt)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", v)
}

func TestDailyPromptRetriesAfterSendFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2026-03-04 19:05")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))

	f.poster.failSends = true
	f.sched.Tick(ctx)
	assert.Empty(t, f.poster.prompts)

	// The marker did not advance, so the next poll retries.
	f.poster.failSends = false
	f.sched.Tick(ctx)
	require.Len(t, f.poster.prompts, 1)
}

func TestWeeklySummariesOnMondayMorning(t *testing.T) {
	ctx := context.Background()
	// Monday 2026-03-09, 08:30: summaries cover the week of 2026-03-02.
	f := newFixture(t, "2026-03-09 08:30")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))
	day, _ := dateutil.Parse("2026-03-03")
	require.NoError(t, f.entries.SetEntry(ctx, "alice", day, ptr(9000)))
	// bob has a row but neither goals nor entries: his card would be empty.
	require.NoError(t, f.goals.SetGoals(ctx, "bob", services.Goals{}))

	f.sched.Tick(ctx)
	require.Len(t, f.poster.summaries, 1)
	assert.Equal(t, "weekly-alice-2026-03-02.png", f.poster.summaries[0].filename)

	// Second poll the same morning is a no-op.
	f.sched.Tick(ctx)
	assert.Len(t, f.poster.summaries, 1)
}

func TestWeeklySummariesNotBeforeEight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2026-03-09 07:59")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))
	day, _ := dateutil.Parse("2026-03-03")
	require.NoError(t, f.entries.SetEntry(ctx, "alice", day, ptr(9000)))

	f.sched.Tick(ctx)
	assert.Empty(t, f.poster.summaries)
}

func TestMonthlySummariesOnFirstOfMonth(t *testing.T) {
	ctx := context.Background()
	// Sunday 2026-03-01, 09:00: monthly summaries cover February. It is not
	// a Monday, so no weekly summary goes out with them.
	f := newFixture(t, "2026-03-01 09:00")

	require.NoError(t, f.goals.SetGoals(ctx, "alice", services.Goals{Daily: ptr(8000)}))
	day, _ := dateutil.Parse("2026-02-10")
	require.NoError(t, f.entries.SetEntry(ctx, "alice", day, ptr(9000)))

	f.sched.Tick(ctx)
	require.Len(t, f.poster.summaries, 1)
	assert.Equal(t, "monthly-alice-2026-02-01.png", f.poster.summaries[0].filename)

	v, err := f.meta.Get(ctx, services.MetaLastMonthlySummary)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", v)
}

func TestTickInFlightGuard(t *testing.T) {
	f := newFixture(t, "2026-03-04 12:00")

	assert.False(t, f.sched.TickInFlight())
	require.True(t, f.sched.inFlight.CompareAndSwap(false, true))
	assert.True(t, f.sched.TickInFlight())
	// A second poll arriving now would fail the swap and skip.
	assert.False(t, f.sched.inFlight.CompareAndSwap(false, true))
	f.sched.inFlight.Store(false)
	assert.False(t, f.sched.TickInFlight())
}
