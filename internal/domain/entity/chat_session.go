package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionStatus string

const (
	ChatSessionStatusActive    ChatSessionStatus = "active"
	ChatSessionStatusCompleted ChatSessionStatus = "completed"
)

type ChatSender string

const (
	ChatSenderUser   ChatSender = "user"
	ChatSenderAI     ChatSender = "ai"
	ChatSenderDoctor ChatSender = "doctor"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

type ChatMessageMetadata struct {
	Emotion   string    `json:"emotion,omitempty"`
	RiskLevel RiskLevel `json:"risk_level,omitempty"`
}

type ChatMessage struct {
	ID        string               `json:"id"`
	Content   string               `json:"content"`
	Sender    ChatSender           `json:"sender"`
	Timestamp time.Time            `json:"timestamp"`
	Options   []string             `json:"options,omitempty"`
	Metadata  *ChatMessageMetadata `json:"metadata,omitempty"`
}

// ChatMessages is stored as a JSONB array on the session row
type ChatMessages []ChatMessage

func (m ChatMessages) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	return json.Marshal(m)
}

func (m *ChatMessages) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*m = nil
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// ChatSession is a conversation between a patient and the supportive assistant
type ChatSession struct {
	ID        string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	PatientID string            `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	DoctorID  *string           `gorm:"type:varchar(64);index" json:"doctor_id,omitempty"`
	Title     string            `gorm:"type:varchar(255)" json:"title"`
	Messages  ChatMessages      `gorm:"type:jsonb;not null" json:"messages"`
	Status    ChatSessionStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	AISummary string            `gorm:"column:ai_summary;type:text" json:"ai_summary,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

func (c *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NewChatMessage stamps a message with a fresh id
func NewChatMessage(sender ChatSender, content string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: at,
	}
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
}
