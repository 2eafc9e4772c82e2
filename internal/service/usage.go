package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/munchora/server/internal/models"
)

// UsageLedger records completion-provider calls and answers how many a
// user has made inside a window. Rows are append-only.
type UsageLedger struct {
	db *gorm.DB
}

// NewUsageLedger creates a new UsageLedger instance
func NewUsageLedger(db *gorm.DB) *UsageLedger {
	return &UsageLedger{db: db}
}

// CountSince returns the number of usage rows for userID created at or
// after windowStart.
func (l *UsageLedger) CountSince(ctx context.Context, userID uuid.UUID, windowStart time.Time) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&models.LlmUsage{}).
		Where("user_id = ? AND created_at >= ?", userID, windowStart).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Record appends a usage row. It writes through tx so callers can fold
// the append into the same transaction as the recipe write.
func (l *UsageLedger) Record(ctx context.Context, tx *gorm.DB, usage *models.LlmUsage) error {
	if tx == nil {
		tx = l.db
	}
	return tx.WithContext(ctx).Create(usage).Error
}
