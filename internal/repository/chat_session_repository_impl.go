package repository

import (
	"context"
	"errors"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type chatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) domainRepo.ChatSessionRepository {
	return &chatSessionRepository{db: db}
}

func (r *chatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	return storeErr("create chat session", r.db.WithContext(ctx).Create(session).Error)
}

func (r *chatSessionRepository) FindByID(ctx context.Context, id string) (*entity.ChatSession, error) {
	var session entity.ChatSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("find chat session", err)
	}
	return &session, nil
}

func (r *chatSessionRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.ChatSession, error) {
	var sessions []entity.ChatSession
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, storeErr("find chat sessions", err)
	}
	return sessions, nil
}

func (r *chatSessionRepository) CountByPatientID(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ChatSession{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, storeErr("count chat sessions", err)
}

func (r *chatSessionRepository) Save(ctx context.Context, session *entity.ChatSession) error {
	return storeErr("save chat session", r.db.WithContext(ctx).Save(session).Error)
}
