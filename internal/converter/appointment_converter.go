package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		DoctorID:           appointment.DoctorID,
		PatientID:          appointment.PatientID,
		PatientName:        appointment.PatientName,
		DoctorName:         appointment.DoctorName,
		Date:               appointment.Date,
		Time:               appointment.Time,
		Duration:           appointment.Duration,
		Type:               string(appointment.Type),
		Status:             string(appointment.Status),
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if appointment.CancelledBy != nil {
		by := string(*appointment.CancelledBy)
		response.CancelledBy = &by
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// BookAppointmentRequestToEntity builds a pending appointment from a validated request
func BookAppointmentRequestToEntity(req *dto.BookAppointmentRequest) *entity.Appointment {
	duration := req.Duration
	if duration == 0 {
		duration = entity.DefaultAppointmentDuration
	}

	return &entity.Appointment{
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		DoctorName:  req.DoctorName,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    duration,
		Type:        entity.AppointmentType(req.Type),
		Status:      entity.AppointmentStatusPending,
		Notes:       req.Notes,
	}
}
