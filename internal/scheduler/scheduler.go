// Package scheduler drives the periodic sends: the evening reminder, the
// weekly summaries on Monday morning and the monthly summaries on the 1st.
// A one-minute poll compares wall-clock conditions against Meta markers so
// each trigger fires exactly once per period, across restarts included.
package scheduler

import (
	"context"
	"fmt"
	stdimage "image"
	"sync/atomic"
	"time"

	"github.com/stridebot/stridebot/internal/dateutil"
	"github.com/stridebot/stridebot/internal/image"
	"github.com/stridebot/stridebot/internal/lang"
	"github.com/stridebot/stridebot/internal/logger"
	"github.com/stridebot/stridebot/internal/services"
	"github.com/stridebot/stridebot/internal/stats"
)

const (
	pollInterval    = time.Minute
	dailyPromptHour = 19
	summaryHour     = 8
)

// Poster is the Discord side of the scheduler, implemented by the bot.
type Poster interface {
	PostDailyPrompt(ctx context.Context, date dateutil.Date, userIDs []string) error
	PostSummary(ctx context.Context, content, filename string, png []byte) error
	AvatarImage(ctx context.Context, userID string) (stdimage.Image, error)
}

type Scheduler struct {
	goals     *services.GoalService
	entries   *services.EntryService
	summaries *services.SummaryService
	meta      *services.MetaService
	poster    Poster

	// now is injectable so tests can pin the clock.
	now func() dateutil.Date

	// inFlight guards against a tick outliving the poll interval; while a
	// tick's fan-out runs, further ticks are skipped.
	inFlight atomic.Bool
}

func New(goals *services.GoalService, entries *services.EntryService, summaries *services.SummaryService, meta *services.MetaService, poster Poster) *Scheduler {
	return &Scheduler{
		goals:     goals,
		entries:   entries,
		summaries: summaries,
		meta:      meta,
		poster:    poster,
		now:       dateutil.Now,
	}
}

// TickInFlight reports whether a tick is currently running.
func (s *Scheduler) TickInFlight() bool {
	return s.inFlight.Load()
}

// Run polls every minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.inFlight.CompareAndSwap(false, true) {
				logger.Warn("Scheduler tick still running, skipping")
				continue
			}
			go func() {
				defer s.inFlight.Store(false)
				s.Tick(ctx)
			}()
		}
	}
}

// Tick evaluates every trigger once against the current clock.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	if now.Hour() >= dailyPromptHour {
		s.fireOnce(ctx, services.MetaLastDailyPrompt, now.String(), func() error {
			return s.sendDailyPrompts(ctx, now)
		})
	}

	if now.Weekday() == 1 && now.Hour() >= summaryHour {
		prevMonday := now.AddDays(-7).StartOfWeek()
		s.fireOnce(ctx, services.MetaLastWeeklySummary, prevMonday.String(), func() error {
			return s.sendWeeklySummaries(ctx, prevMonday)
		})
	}

	if now.Day() == 1 && now.Hour() >= summaryHour {
		prevFirst := now.FirstDayOfMonth().AddDays(-1).FirstDayOfMonth()
		s.fireOnce(ctx, services.MetaLastMonthlySummary, prevFirst.String(), func() error {
			return s.sendMonthlySummaries(ctx, prevFirst)
		})
	}
}

// fireOnce runs send unless the marker already records this period, and
// advances the marker on success.
func (s *Scheduler) fireOnce(ctx context.Context, key, marker string, send func() error) {
	last, err := s.meta.Get(ctx, key)
	if err != nil {
		logger.Error("Scheduler marker read failed", "key", key, "error", err)
		return
	}
	if last == marker {
		return
	}
	if err := send(); err != nil {
		logger.Error("Scheduler trigger failed", "key", key, "error", err)
		return
	}
	if err := s.meta.Set(ctx, key, marker); err != nil {
		logger.Error("Scheduler marker write failed", "key", key, "error", err)
	}
}

// sendDailyPrompts pings every member that has a daily goal but no entry for
// today yet.
func (s *Scheduler) sendDailyPrompts(ctx context.Context, now dateutil.Date) error {
	userIDs, err := s.goals.ListUsersWithDailyGoal(ctx)
	if err != nil {
		return err
	}
	var notFilled []string
	for _, userID := range userIDs {
		steps, err := s.entries.GetEntry(ctx, userID, now)
		if err != nil {
			logger.Error("Failed to read entry for reminder", "user", userID, "error", err)
			continue
		}
		if steps == nil {
			notFilled = append(notFilled, userID)
		}
	}
	if len(notFilled) == 0 {
		return nil
	}
	logger.Info("Sending daily reminders", "date", now.String(), "users", len(notFilled))
	return s.poster.PostDailyPrompt(ctx, now, notFilled)
}

// sendWeeklySummaries posts last week's card for every member. Failures are
// isolated per member: one broken send never blocks the rest.
func (s *Scheduler) sendWeeklySummaries(ctx context.Context, monday dateutil.Date) error {
	userIDs, err := s.goals.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if err := s.sendWeeklySummary(ctx, userID, monday); err != nil {
			logger.Error("Failed to send weekly summary", "user", userID, "error", err)
		}
	}
	return nil
}

func (s *Scheduler) sendWeeklySummary(ctx context.Context, userID string, monday dateutil.Date) error {
	card, err := s.summaries.WeeklyCard(ctx, userID, monday)
	if err != nil {
		return err
	}
	if cardIsEmpty(card) {
		return nil
	}
	s.attachAvatar(ctx, userID, card)
	png, err := image.RenderWeeklyCard(*card)
	if err != nil {
		return err
	}
	return s.poster.PostSummary(ctx,
		lang.WeeklySummaryMessage(userID, monday),
		fmt.Sprintf("weekly-%s-%s.png", userID, monday), png)
}

func (s *Scheduler) sendMonthlySummaries(ctx context.Context, firstDay dateutil.Date) error {
	userIDs, err := s.goals.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if err := s.sendMonthlySummary(ctx, userID, firstDay); err != nil {
			logger.Error("Failed to send monthly summary", "user", userID, "error", err)
		}
	}
	return nil
}

func (s *Scheduler) sendMonthlySummary(ctx context.Context, userID string, firstDay dateutil.Date) error {
	card, err := s.summaries.MonthlyCard(ctx, userID, firstDay)
	if err != nil {
		return err
	}
	if cardIsEmpty(card) {
		return nil
	}
	s.attachAvatar(ctx, userID, card)
	png, err := image.RenderMonthlyCard(*card)
	if err != nil {
		return err
	}
	return s.poster.PostSummary(ctx,
		lang.MonthlySummaryMessage(userID, firstDay),
		fmt.Sprintf("monthly-%s-%s.png", userID, firstDay), png)
}

func (s *Scheduler) attachAvatar(ctx context.Context, userID string, card *image.SummaryCard) {
	avatar, err := s.poster.AvatarImage(ctx, userID)
	if err != nil {
		// A card without an avatar beats no card.
		logger.Warn("Failed to fetch avatar for summary", "user", userID, "error", err)
		return
	}
	card.Avatar = avatar
}

// cardIsEmpty skips members with neither a goal nor a single entry in the
// window; their card would be all placeholders.
func cardIsEmpty(card *image.SummaryCard) bool {
	if stats.HasGoal(card.Goal) || stats.HasGoal(card.WeeklyGoal) {
		return false
	}
	for _, v := range card.Days {
		if v != nil {
			return false
		}
	}
	return true
}
