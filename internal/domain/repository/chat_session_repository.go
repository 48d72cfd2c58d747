package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindByID(ctx context.Context, id string) (*entity.ChatSession, error)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.ChatSession, error)
	CountByPatientID(ctx context.Context, patientID string) (int64, error)
	Save(ctx context.Context, session *entity.ChatSession) error
}
