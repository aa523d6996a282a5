package store

import (
	"context"
	"time"

	"github.com/smartbrain-app/smartbrain-api/models"
	"gorm.io/gorm"
)

type gormUsageLedger struct {
	db *gorm.DB
}

// NewUsageLedger returns the Postgres-backed UsageLedger.
func NewUsageLedger(db *gorm.DB) UsageLedger {
	return &gormUsageLedger{db: db}
}

func (l *gormUsageLedger) Record(ctx context.Context, userID uint, endpoint string) error {
	row := models.ApiRequest{
		UserID:      userID,
		Endpoint:    endpoint,
		RequestedAt: time.Now(),
	}
	return l.db.WithContext(ctx).Create(&row).Error
}

func (l *gormUsageLedger) CountSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&models.ApiRequest{}).
		Where("user_id = ? AND requested_at >= ?", userID, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

type gormLoginHistoryStore struct {
	db *gorm.DB
}

// NewLoginHistoryStore returns the Postgres-backed LoginHistoryStore.
func NewLoginHistoryStore(db *gorm.DB) LoginHistoryStore {
	return &gormLoginHistoryStore{db: db}
}

func (s *gormLoginHistoryStore) Record(ctx context.Context, userID uint, ip string, success bool) error {
	row := models.LoginHistory{
		UserID:    userID,
		IPAddress: ip,
		Success:   success,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}
