package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type MoodEntryRepository interface {
	Create(ctx context.Context, entry *entity.MoodEntry) error
	// FindByPatientID returns entries newest first (by date, then creation time)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.MoodEntry, error)
}
