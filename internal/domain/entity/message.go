package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageTypeText        MessageType = "text"
	MessageTypeAppointment MessageType = "appointment"
	MessageTypeAlert       MessageType = "alert"
)

// Message is a direct message between a doctor and a patient.
// Append-only except for IsRead.
type Message struct {
	ID         string      `gorm:"type:varchar(64);primaryKey" json:"id"`
	SenderID   string      `gorm:"type:varchar(64);not null;index" json:"sender_id"`
	ReceiverID string      `gorm:"type:varchar(64);not null;index:idx_messages_receiver_read" json:"receiver_id"`
	SenderName string      `gorm:"type:varchar(255)" json:"sender_name"`
	SenderType UserType    `gorm:"type:varchar(16);not null" json:"sender_type"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	Type       MessageType `gorm:"type:varchar(16);not null;default:'text'" json:"type"`
	IsRead     bool        `gorm:"not null;default:false;index:idx_messages_receiver_read" json:"is_read"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
