package contract

import (
	"context"

	"ai-docassist-be/internal/model"
)

type QueryLogRepository interface {
	Create(ctx context.Context, log *model.QueryLog) error
	FindRecentBySession(ctx context.Context, sessionID string, limit int) ([]*model.QueryLog, error)
	CountByIntent(ctx context.Context, intent string) (int64, error)
}
