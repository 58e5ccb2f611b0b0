package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stridebot/stridebot/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Meta keys used by the scheduler.
const (
	MetaLastDailyPrompt    = "lastDailyPrompt"
	MetaLastWeeklySummary  = "lastWeeklySummaryMonday"
	MetaLastMonthlySummary = "lastMonthlySummaryFirstDay"
)

// MetaService is the scheduler's key/value bookkeeping store.
type MetaService struct {
	db *gorm.DB
}

func NewMetaService(db *gorm.DB) *MetaService {
	return &MetaService{db: db}
}

// Get returns the stored value, or "" when the key was never written.
func (s *MetaService) Get(ctx context.Context, key string) (string, error) {
	var row database.Meta
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get meta %s: %w", key, err)
	}
	return row.Value, nil
}

// Set upserts the value for a key.
func (s *MetaService) Set(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&database.Meta{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to set meta %s: %w", key, err)
	}
	return nil
}
