package handler

import (
	"net/http"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"
	"mindcare-backend/pkg/validator"
)

type AlertHandler struct {
	alertUsecase usecase.AlertUsecase
	validator    *validator.CustomValidator
}

func NewAlertHandler(alertUsecase usecase.AlertUsecase, validator *validator.CustomValidator) *AlertHandler {
	return &AlertHandler{
		alertUsecase: alertUsecase,
		validator:    validator,
	}
}

func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	isRead, valid := queryBool(r, "isRead")
	if !valid {
		response.Error(w, http.StatusBadRequest, "isRead must be true or false", nil)
		return
	}

	query := r.URL.Query()
	alerts, err := h.alertUsecase.ListAlerts(r.Context(), actor, entity.AlertFilter{
		DoctorID:  query.Get("doctorId"),
		PatientID: query.Get("patientId"),
		IsRead:    isRead,
	})
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Alerts retrieved successfully", alerts)
}

func (h *AlertHandler) MarkAlertsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.MarkAlertsReadRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.alertUsecase.MarkRead(r.Context(), actor, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Alerts marked as read", result)
}
