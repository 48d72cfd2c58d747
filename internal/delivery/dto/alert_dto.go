package dto

import (
	"time"
)

// Request DTOs

type MarkAlertsReadRequest struct {
	DoctorID      string `json:"doctor_id" validate:"required"`
	PatientID     string `json:"patient_id" validate:"omitempty"`
	AppointmentID string `json:"appointment_id" validate:"omitempty"`
}

// Response DTOs

type AlertResponse struct {
	ID            string    `json:"id"`
	DoctorID      string    `json:"doctor_id"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	AppointmentID *string   `json:"appointment_id,omitempty"`
	Recipient     string    `json:"recipient"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	Priority      string    `json:"priority"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Total  int             `json:"total"`
	Unread int             `json:"unread"`
}

type MarkAlertsReadResponse struct {
	Updated int64 `json:"updated"`
}
