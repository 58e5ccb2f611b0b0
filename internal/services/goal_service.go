package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stridebot/stridebot/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalService stores per-member daily and weekly step goals.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// Goals is a member's goal pair; nil fields mean "not set".
type Goals struct {
	Daily  *int
	Weekly *int
}

// SetGoals upserts both goals at once. Passing nil clears a goal. The user
// row is created implicitly on first use.
func (s *GoalService) SetGoals(ctx context.Context, userID string, goals Goals) error {
	user := database.User{ID: userID, DailyGoal: goals.Daily, WeeklyGoal: goals.Weekly}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"daily_goal", "weekly_goal"}),
	}).Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to set goals: %w", err)
	}
	return nil
}

// GetGoals returns the member's goals. An unknown member is not an error:
// both goals come back nil.
func (s *GoalService) GetGoals(ctx context.Context, userID string) (Goals, error) {
	var user database.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Goals{}, nil
	}
	if err != nil {
		return Goals{}, fmt.Errorf("failed to get goals: %w", err)
	}
	return Goals{Daily: user.DailyGoal, Weekly: user.WeeklyGoal}, nil
}

// ListUsers returns the ids of every known member.
func (s *GoalService) ListUsers(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&database.User{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

// ListUsersWithDailyGoal returns the ids of members with a positive daily
// goal, the audience of the evening reminder.
func (s *GoalService) ListUsersWithDailyGoal(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&database.User{}).
		Where("daily_goal IS NOT NULL AND daily_goal > 0").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users with goal: %w", err)
	}
	return ids, nil
}
