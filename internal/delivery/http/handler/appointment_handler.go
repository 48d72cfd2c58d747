package handler

import (
	"context"
	"net/http"
	"strings"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/usecase"
	"mindcare-backend/pkg/response"
	"mindcare-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// BookAppointment fills the patient fields from the token when a patient books for themselves
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.BookAppointmentRequest
	if actor.IsPatient() {
		req.PatientID = actor.UserID
		req.PatientName = actor.Name
	}
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.BookAppointment(r.Context(), actor, &req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := entity.AppointmentFilter{
		DoctorID:  query.Get("doctorId"),
		PatientID: query.Get("patientId"),
		Date:      query.Get("date"),
	}
	if status := query.Get("status"); status != "" {
		for _, s := range strings.Split(status, ",") {
			filter.Statuses = append(filter.Statuses, entity.AppointmentStatus(strings.TrimSpace(s)))
		}
	}

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), actor, filter)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status, actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment "+appointment.Status, appointment)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.appointmentUsecase.Confirm, "Appointment confirmed")
}

func (h *AppointmentHandler) DeclineAppointment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.appointmentUsecase.Decline, "Appointment declined")
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.appointmentUsecase.MarkComplete, "Appointment completed")
}

type appointmentDecision func(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error)

func (h *AppointmentHandler) decide(w http.ResponseWriter, r *http.Request, apply appointmentDecision, message string) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	appointment, err := apply(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

// CancelAppointment is the patient's cancellation; the body and its reason are optional
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.CancelByPatient(r.Context(), mux.Vars(r)["id"], actor.UserID, req.Reason)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), mux.Vars(r)["id"], actor); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
