package handler

import (
	"net/http"

	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"

	"github.com/gorilla/mux"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetDoctorDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardUsecase.GetDoctorDashboard(r.Context(), mux.Vars(r)["doctorId"], actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) GetPatientDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardUsecase.GetPatientDashboard(r.Context(), mux.Vars(r)["patientId"], actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient dashboard retrieved successfully", dashboard)
}
