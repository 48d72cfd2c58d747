package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	FindAll(ctx context.Context, filter entity.AlertFilter) ([]entity.Alert, error)
	// MarkRead flips every unread alert matching filter and returns how many changed
	MarkRead(ctx context.Context, filter entity.AlertFilter) (int64, error)
}
