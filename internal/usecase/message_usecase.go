package usecase

import (
	"context"

	"mindcare-backend/internal/converter"
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrMessageNotFound  = apperror.NotFound("message not found")
	ErrNotMessageTarget = apperror.Forbidden("only the receiver can mark a message read")
	ErrMessageToSelf    = apperror.Validation("cannot send a message to yourself")
)

type MessageUsecase interface {
	SendMessage(ctx context.Context, actor entity.Actor, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, actor entity.Actor, conversationWith string) (*dto.MessageListResponse, error)
	MarkRead(ctx context.Context, actor entity.Actor, messageID string) error
}

type messageUsecase struct {
	log          *logrus.Logger
	messageRepo  repository.MessageRepository
	auditService service.AuditService
}

func NewMessageUsecase(log *logrus.Logger, messageRepo repository.MessageRepository, auditService service.AuditService) MessageUsecase {
	return &messageUsecase{
		log:          log,
		messageRepo:  messageRepo,
		auditService: auditService,
	}
}

func (u *messageUsecase) SendMessage(ctx context.Context, actor entity.Actor, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.ReceiverID == actor.UserID {
		return nil, ErrMessageToSelf
	}

	messageType := entity.MessageType(req.Type)
	if messageType == "" {
		messageType = entity.MessageTypeText
	}

	message := &entity.Message{
		SenderID:   actor.UserID,
		ReceiverID: req.ReceiverID,
		SenderName: actor.Name,
		SenderType: actor.UserType,
		Content:    req.Content,
		Type:       messageType,
	}
	if err := u.messageRepo.Create(ctx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}

// ListMessages returns the caller's inbox, or the full thread with conversationWith in send order
func (u *messageUsecase) ListMessages(ctx context.Context, actor entity.Actor, conversationWith string) (*dto.MessageListResponse, error) {
	var (
		messages []entity.Message
		err      error
	)
	if conversationWith != "" {
		messages, err = u.messageRepo.FindConversation(ctx, actor.UserID, conversationWith)
	} else {
		messages, err = u.messageRepo.FindByReceiverID(ctx, actor.UserID)
	}
	if err != nil {
		u.log.Warnf("Failed to list messages for %s: %+v", actor.UserID, err)
		return nil, err
	}

	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *messageUsecase) MarkRead(ctx context.Context, actor entity.Actor, messageID string) error {
	message, err := u.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		u.log.Warnf("Failed to find message %s: %+v", messageID, err)
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}
	if message.ReceiverID != actor.UserID {
		u.auditService.LogForbidden(ctx, actor, "message", messageID, ErrNotMessageTarget.Message)
		return ErrNotMessageTarget
	}
	if message.IsRead {
		return nil
	}

	if _, err := u.messageRepo.MarkRead(ctx, messageID); err != nil {
		u.log.Warnf("Failed to mark message %s read: %+v", messageID, err)
		return err
	}
	return nil
}
