package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type moodEntryRepository struct {
	db *gorm.DB
}

func NewMoodEntryRepository(db *gorm.DB) domainRepo.MoodEntryRepository {
	return &moodEntryRepository{db: db}
}

func (r *moodEntryRepository) Create(ctx context.Context, entry *entity.MoodEntry) error {
	return storeErr("create mood entry", r.db.WithContext(ctx).Create(entry).Error)
}

func (r *moodEntryRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.MoodEntry, error) {
	var entries []entity.MoodEntry
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storeErr("find mood entries", err)
	}
	return entries, nil
}
