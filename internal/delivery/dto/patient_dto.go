package dto

import (
	"time"
)

// Request DTOs

type EmergencyContactRequest struct {
	Name         string `json:"name" validate:"omitempty"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	Relationship string `json:"relationship" validate:"omitempty"`
}

type CreatePatientRequest struct {
	Name             string                  `json:"name" validate:"required,min=2"`
	Email            string                  `json:"email" validate:"required,email"`
	Age              int                     `json:"age" validate:"omitempty,min=0,max=150"`
	Gender           string                  `json:"gender" validate:"omitempty"`
	DoctorID         string                  `json:"doctor_id" validate:"omitempty"`
	PrimaryDiagnosis string                  `json:"primary_diagnosis" validate:"omitempty"`
	EmergencyContact EmergencyContactRequest `json:"emergency_contact"`
}

// UpdatePatientRequest has merge semantics: nil fields are left unchanged
type UpdatePatientRequest struct {
	Name             *string                  `json:"name" validate:"omitempty,min=2"`
	Email            *string                  `json:"email" validate:"omitempty,email"`
	Age              *int                     `json:"age" validate:"omitempty,min=0,max=150"`
	Gender           *string                  `json:"gender" validate:"omitempty"`
	DoctorID         *string                  `json:"doctor_id" validate:"omitempty"`
	PrimaryDiagnosis *string                  `json:"primary_diagnosis" validate:"omitempty"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
}

// Response DTOs

type EmergencyContactResponse struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type PatientResponse struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Age               int                      `json:"age"`
	Gender            string                   `json:"gender"`
	DoctorID          *string                  `json:"doctor_id,omitempty"`
	PrimaryDiagnosis  string                   `json:"primary_diagnosis,omitempty"`
	EmergencyContact  EmergencyContactResponse `json:"emergency_contact"`
	LastAppointment   string                   `json:"last_appointment,omitempty"`
	TotalAppointments int                      `json:"total_appointments,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
