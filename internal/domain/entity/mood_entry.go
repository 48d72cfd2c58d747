package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MoodValueMin = 1
	MoodValueMax = 10
)

// MoodEntry is an append-only self-reported mood score
type MoodEntry struct {
	ID        string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	PatientID string     `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	Date      string     `gorm:"type:varchar(32);not null;index" json:"date"`
	Value     int        `gorm:"not null" json:"value"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	Factors   StringList `gorm:"type:jsonb" json:"factors,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
