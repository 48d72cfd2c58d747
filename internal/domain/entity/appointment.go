package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// LiveAppointmentStatuses are the statuses that still occupy a slot
var LiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
}

// AppointmentType is the display type chosen at booking time
type AppointmentType string

const (
	AppointmentTypeInitialConsultation AppointmentType = "Initial Consultation"
	AppointmentTypeFollowUp            AppointmentType = "Follow-up"
	AppointmentTypeEmergency           AppointmentType = "Emergency"
	AppointmentTypeVideoCall           AppointmentType = "Video Call"
	AppointmentTypeInPerson            AppointmentType = "In-Person"
)

// AppointmentTypes lists every accepted AppointmentType
var AppointmentTypes = []AppointmentType{
	AppointmentTypeInitialConsultation,
	AppointmentTypeFollowUp,
	AppointmentTypeEmergency,
	AppointmentTypeVideoCall,
	AppointmentTypeInPerson,
}

// IsAppointmentType reports whether s names one of AppointmentTypes
func IsAppointmentType(s string) bool {
	for _, t := range AppointmentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// CancelledBy records which party cancelled an appointment
type CancelledBy string

const (
	CancelledByPatient CancelledBy = "patient"
	CancelledByDoctor  CancelledBy = "doctor"
)

// DefaultAppointmentDuration is used when a booking does not specify one (minutes)
const DefaultAppointmentDuration = 60

// Appointment is a booking between a patient and a doctor.
// PatientName and DoctorName are snapshots taken at booking time and are never re-synced with profiles.
type Appointment struct {
	ID                 string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	DoctorID           string            `gorm:"type:varchar(64);not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	PatientID          string            `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	PatientName        string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	DoctorName         string            `gorm:"type:varchar(255);not null" json:"doctor_name"`
	Date               string            `gorm:"type:varchar(32);not null;index:idx_appointments_doctor_date" json:"date"`
	Time               string            `gorm:"type:varchar(16);not null" json:"time"`
	Duration           int               `gorm:"not null;default:60" json:"duration"`
	Type               AppointmentType   `gorm:"type:varchar(32);not null" json:"type"`
	Status             AppointmentStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CancelledBy        *CancelledBy      `gorm:"type:varchar(16)" json:"cancelled_by,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsPending checks if appointment awaits the doctor's decision
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsTerminal reports whether no further transition is possible
func (a *Appointment) IsTerminal() bool {
	return a.IsCompleted() || a.IsCancelled()
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	default:
		return false
	}
}

// Confirm changes appointment status to confirmed
func (a *Appointment) Confirm() {
	a.Status = AppointmentStatusConfirmed
}

// Complete changes appointment status to completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

// Cancel changes appointment status to cancelled and records who did it and why
func (a *Appointment) Cancel(by CancelledBy, reason string, at time.Time) {
	a.Status = AppointmentStatusCancelled
	a.CancelledBy = &by
	a.CancelledAt = &at
	if reason != "" {
		a.CancellationReason = &reason
	}
}

// ScheduledAt combines the stored date and time into an instant in loc
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	day, err := ParseDate(a.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseClock(a.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}
