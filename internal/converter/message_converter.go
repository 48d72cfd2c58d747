package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	return &dto.MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		SenderName: message.SenderName,
		SenderType: string(message.SenderType),
		Content:    message.Content,
		Type:       string(message.Type),
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt,
	}
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *MessageToResponse(&messages[i])
	}
	return responses
}
