package dto

import (
	"time"
)

// Request DTOs

type CreateChatSessionRequest struct {
	Title    string `json:"title" validate:"omitempty,max=255"`
	DoctorID string `json:"doctor_id" validate:"omitempty"`
}

type SendChatMessageRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// Response DTOs

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Options   []string  `json:"options,omitempty"`
	Emotion   string    `json:"emotion,omitempty"`
	RiskLevel string    `json:"risk_level,omitempty"`
}

type ChatSessionResponse struct {
	ID        string                `json:"id"`
	PatientID string                `json:"patient_id"`
	DoctorID  *string               `json:"doctor_id,omitempty"`
	Title     string                `json:"title"`
	Status    string                `json:"status"`
	Messages  []ChatMessageResponse `json:"messages"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type ChatSessionListResponse struct {
	Sessions []ChatSessionResponse `json:"sessions"`
	Total    int                   `json:"total"`
}

// ChatReplyResponse carries the stored user message and the assistant's reply
type ChatReplyResponse struct {
	UserMessage ChatMessageResponse `json:"user_message"`
	Reply       ChatMessageResponse `json:"reply"`
}
