package dto

import (
	"time"
)

// Request DTOs

// BookAppointmentRequest is accepted from both patients (booking) and doctors (scheduling)
type BookAppointmentRequest struct {
	DoctorID    string `json:"doctor_id" validate:"required"`
	PatientID   string `json:"patient_id" validate:"required"`
	PatientName string `json:"patient_name" validate:"required"`
	DoctorName  string `json:"doctor_name" validate:"required"`
	Date        string `json:"date" validate:"required,date"`
	Time        string `json:"time" validate:"required,clocktime"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=480"`
	Type        string `json:"type" validate:"required,appttype"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 string     `json:"id"`
	DoctorID           string     `json:"doctor_id"`
	PatientID          string     `json:"patient_id"`
	PatientName        string     `json:"patient_name"`
	DoctorName         string     `json:"doctor_name"`
	Date               string     `json:"date"`
	Time               string     `json:"time"`
	Duration           int        `json:"duration"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *string    `json:"cancelled_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
