package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stridebot/stridebot/internal/database"
	"github.com/stridebot/stridebot/internal/dateutil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntryService stores per-(member, day) step counts with upsert semantics.
type EntryService struct {
	db *gorm.DB
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

// SetEntry upserts the step count for one day. steps == nil clears the entry
// (the row stays until the maintenance sweep). The user row is created
// implicitly so an entry can precede any goal.
func (s *EntryService) SetEntry(ctx context.Context, userID string, date dateutil.Date, steps *int) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&database.User{ID: userID}).Error; err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	entry := database.DailyEntry{UserID: userID, Date: date.String(), Steps: steps}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"steps"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

// GetEntry returns the step count for one day, nil when absent or cleared.
func (s *EntryService) GetEntry(ctx context.Context, userID string, date dateutil.Date) (*int, error) {
	var entry database.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.String()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry.Steps, nil
}

// EntriesForDates batch-reads the entries of a date window, keyed by the
// canonical date string. Cleared entries are treated as absent.
func (s *EntryService) EntriesForDates(ctx context.Context, userID string, dates []dateutil.Date) (map[string]*int, error) {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.String()
	}
	var rows []database.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date IN ? AND steps IS NOT NULL", userID, keys).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	entries := make(map[string]*int, len(rows))
	for _, row := range rows {
		entries[row.Date] = row.Steps
	}
	return entries, nil
}

// SuccessDates returns, in ascending calendar order, every date where the
// member logged at least threshold steps. Streak computations consume this.
func (s *EntryService) SuccessDates(ctx context.Context, userID string, threshold int) ([]dateutil.Date, error) {
	var rows []database.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND steps >= ?", userID, threshold).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read success dates: %w", err)
	}
	dates := make([]dateutil.Date, 0, len(rows))
	for _, row := range rows {
		if d, ok := dateutil.Parse(row.Date); ok {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// CountEntries returns the member's all-time number of filled entries, the
// "jours saisis" stat on summary cards.
func (s *EntryService) CountEntries(ctx context.Context, userID string) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&database.DailyEntry{}).
		Where("user_id = ? AND steps IS NOT NULL", userID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return int(n), nil
}

// CleanDatabase removes cleared entries and then members that have neither
// goals nor remaining entries.
func (s *EntryService) CleanDatabase(ctx context.Context) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Where("steps IS NULL").Delete(&database.DailyEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete empty entries: %w", err)
	}
	err := tx.Where(
		"daily_goal IS NULL AND weekly_goal IS NULL AND NOT EXISTS (SELECT 1 FROM daily_entries WHERE daily_entries.user_id = users.id)",
	).Delete(&database.User{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete empty users: %w", err)
	}
	return nil
}
