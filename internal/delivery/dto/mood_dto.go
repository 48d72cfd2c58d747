package dto

import (
	"time"
)

// Request DTOs

type CreateMoodEntryRequest struct {
	Date    string   `json:"date" validate:"required,date"`
	Value   int      `json:"value" validate:"required,min=1,max=10"`
	Notes   string   `json:"notes" validate:"omitempty,max=2000"`
	Factors []string `json:"factors" validate:"omitempty,dive,required"`
}

// Response DTOs

type MoodEntryResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Date      string    `json:"date"`
	Value     int       `json:"value"`
	Notes     string    `json:"notes,omitempty"`
	Factors   []string  `json:"factors,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MoodEntryListResponse struct {
	Entries []MoodEntryResponse `json:"entries"`
	Total   int                 `json:"total"`
}
