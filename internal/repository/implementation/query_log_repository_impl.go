package implementation

import (
	"context"

	"gorm.io/gorm"

	"ai-docassist-be/internal/model"
	"ai-docassist-be/internal/repository/contract"
)

type QueryLogRepositoryImpl struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) contract.QueryLogRepository {
	return &QueryLogRepositoryImpl{db: db}
}

func (r *QueryLogRepositoryImpl) Create(ctx context.Context, log *model.QueryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *QueryLogRepositoryImpl) FindRecentBySession(ctx context.Context, sessionID string, limit int) ([]*model.QueryLog, error) {
	var logs []*model.QueryLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *QueryLogRepositoryImpl) CountByIntent(ctx context.Context, intent string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.QueryLog{}).
		Where("intent = ?", intent).
		Count(&count).Error
	return count, err
}
