package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindByID(ctx context.Context, id string) (*entity.Message, error)
	FindByReceiverID(ctx context.Context, receiverID string) ([]entity.Message, error)
	FindConversation(ctx context.Context, userID, otherID string) ([]entity.Message, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	MarkRead(ctx context.Context, id string) (int64, error)
}
