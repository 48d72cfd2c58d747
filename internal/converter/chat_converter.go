package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

func ChatMessageToResponse(message entity.ChatMessage) dto.ChatMessageResponse {
	response := dto.ChatMessageResponse{
		ID:        message.ID,
		Content:   message.Content,
		Sender:    string(message.Sender),
		Timestamp: message.Timestamp,
		Options:   message.Options,
	}
	if message.Metadata != nil {
		response.Emotion = message.Metadata.Emotion
		response.RiskLevel = string(message.Metadata.RiskLevel)
	}
	return response
}

func ChatSessionToResponse(session *entity.ChatSession) *dto.ChatSessionResponse {
	if session == nil {
		return nil
	}

	messages := make([]dto.ChatMessageResponse, len(session.Messages))
	for i, m := range session.Messages {
		messages[i] = ChatMessageToResponse(m)
	}

	return &dto.ChatSessionResponse{
		ID:        session.ID,
		PatientID: session.PatientID,
		DoctorID:  session.DoctorID,
		Title:     session.Title,
		Status:    string(session.Status),
		Messages:  messages,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func ChatSessionsToResponses(sessions []entity.ChatSession) []dto.ChatSessionResponse {
	responses := make([]dto.ChatSessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = *ChatSessionToResponse(&sessions[i])
	}
	return responses
}
