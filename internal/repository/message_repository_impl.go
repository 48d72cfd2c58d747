package repository

import (
	"context"
	"errors"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) domainRepo.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return storeErr("create message", r.db.WithContext(ctx).Create(message).Error)
}

func (r *messageRepository) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("find message", err)
	}
	return &message, nil
}

func (r *messageRepository) FindByReceiverID(ctx context.Context, receiverID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, storeErr("find messages", err)
	}
	return messages, nil
}

func (r *messageRepository) FindConversation(ctx context.Context, userID, otherID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, storeErr("find conversation", err)
	}
	return messages, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, storeErr("count unread messages", err)
}

func (r *messageRepository) MarkRead(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true)
	return result.RowsAffected, storeErr("mark message read", result.Error)
}
