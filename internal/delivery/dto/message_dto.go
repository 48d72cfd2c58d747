package dto

import (
	"time"
)

// Request DTOs

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=5000"`
	Type       string `json:"type" validate:"omitempty,oneof=text appointment alert"`
}

// Response DTOs

type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	SenderName string    `json:"sender_name"`
	SenderType string    `json:"sender_type"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
