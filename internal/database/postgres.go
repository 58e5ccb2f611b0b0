package database

import (
	"fmt"
	"log"

	"github.com/stridebot/stridebot/internal/config"
	apperrors "github.com/stridebot/stridebot/internal/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User is a guild member known to the bot. A row appears the first time a
// member sets a goal or logs steps. Goals are pointers: nil means "no goal
// set", which must stay distinct from a stored zero.
type User struct {
	ID         string `gorm:"primaryKey"`
	DailyGoal  *int
	WeeklyGoal *int
	Entries    []DailyEntry `gorm:"foreignKey:UserID"`
}

// DailyEntry holds one member's step count for one calendar day. At most one
// row per (user, date); writes are upserts. Steps is nil when the member
// cleared the entry; the maintenance sweep removes such rows.
type DailyEntry struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"uniqueIndex:idx_user_date"`
	Date   string `gorm:"uniqueIndex:idx_user_date"` // YYYY-MM-DD
	Steps  *int
}

// Meta is scheduler bookkeeping: one row per key, fully replaced on write.
// Keys record the last period a reminder or summary was sent for, making the
// once-per-period triggers idempotent across restarts.
type Meta struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Models lists everything AutoMigrate manages.
func Models() []any {
	return []any{&User{}, &DailyEntry{}, &Meta{}}
}

// NewPostgresDB opens the production database and migrates the schema.
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("failed to connect: %w", err))
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, apperrors.NewDatabaseError(fmt.Errorf("failed to auto-migrate: %w", err))
	}

	log.Println("Database connection established and migrations completed")
	return db, nil
}
