package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization" validate:"required"`
	LicenseNumber  string `json:"license_number" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Specialization string          `json:"specialization"`
	LicenseNumber  string          `json:"license_number"`
	IsAvailable    bool            `json:"is_available"`
	Rating         decimal.Decimal `json:"rating"`
	TotalReviews   int             `json:"total_reviews"`
	CreatedAt      time.Time       `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
