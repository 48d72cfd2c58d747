package handler

import (
	"net/http"

	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"

	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
	}
}

func (h *SlotHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), mux.Vars(r)["id"], date)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
