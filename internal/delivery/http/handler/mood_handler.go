package handler

import (
	"net/http"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"
	"mindcare-backend/pkg/validator"
)

type MoodHandler struct {
	moodUsecase usecase.MoodUsecase
	validator   *validator.CustomValidator
}

func NewMoodHandler(moodUsecase usecase.MoodUsecase, validator *validator.CustomValidator) *MoodHandler {
	return &MoodHandler{
		moodUsecase: moodUsecase,
		validator:   validator,
	}
}

func (h *MoodHandler) CreateMoodEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateMoodEntryRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	entry, err := h.moodUsecase.CreateMoodEntry(r.Context(), actor, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Mood entry recorded", entry)
}

// GetMoodEntries defaults patientId to the caller for patients
func (h *MoodHandler) GetMoodEntries(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	patientID := query.Get("patientId")
	if patientID == "" && actor.IsPatient() {
		patientID = actor.UserID
	}

	entries, err := h.moodUsecase.ListMoodEntries(r.Context(), actor, patientID, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Mood entries retrieved successfully", entries)
}
