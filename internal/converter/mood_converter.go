package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

func MoodEntryToResponse(entry *entity.MoodEntry) *dto.MoodEntryResponse {
	if entry == nil {
		return nil
	}

	return &dto.MoodEntryResponse{
		ID:        entry.ID,
		PatientID: entry.PatientID,
		Date:      entry.Date,
		Value:     entry.Value,
		Notes:     entry.Notes,
		Factors:   []string(entry.Factors),
		CreatedAt: entry.CreatedAt,
	}
}

func MoodEntriesToResponses(entries []entity.MoodEntry) []dto.MoodEntryResponse {
	responses := make([]dto.MoodEntryResponse, len(entries))
	for i := range entries {
		responses[i] = *MoodEntryToResponse(&entries[i])
	}
	return responses
}
