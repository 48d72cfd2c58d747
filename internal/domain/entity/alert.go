package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertType string

const (
	AlertTypeMedication  AlertType = "medication"
	AlertTypeMood        AlertType = "mood"
	AlertTypeAppointment AlertType = "appointment"
	AlertTypeEmergency   AlertType = "emergency"
)

type AlertPriority string

const (
	AlertPriorityLow    AlertPriority = "low"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityHigh   AlertPriority = "high"
)

// AlertRecipient is the party an alert is addressed to
type AlertRecipient string

const (
	AlertRecipientDoctor  AlertRecipient = "doctor"
	AlertRecipientPatient AlertRecipient = "patient"
)

// Alert is a notification for one party about an appointment or another event.
// The only mutation after creation is marking it read.
type Alert struct {
	ID            string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	DoctorID      string         `gorm:"type:varchar(64);not null;index:idx_alerts_lookup" json:"doctor_id"`
	PatientID     string         `gorm:"type:varchar(64);index:idx_alerts_lookup" json:"patient_id"`
	PatientName   string         `gorm:"type:varchar(255)" json:"patient_name"`
	AppointmentID *string        `gorm:"type:varchar(64);index" json:"appointment_id,omitempty"`
	Recipient     AlertRecipient `gorm:"type:varchar(16);not null" json:"recipient"`
	Type          AlertType      `gorm:"type:varchar(16);not null;index:idx_alerts_lookup" json:"type"`
	Message       string         `gorm:"type:text;not null" json:"message"`
	Priority      AlertPriority  `gorm:"type:varchar(8);not null;default:'medium'" json:"priority"`
	IsRead        bool           `gorm:"not null;default:false;index:idx_alerts_lookup" json:"is_read"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Alert) TableName() string {
	return "alerts"
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AlertFilter selects alerts; nil/empty fields are ignored
type AlertFilter struct {
	DoctorID      string
	PatientID     string
	AppointmentID string
	Recipient     AlertRecipient
	Type          AlertType
	IsRead        *bool
}
