package converter

import (
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
)

func AlertToResponse(alert *entity.Alert) *dto.AlertResponse {
	if alert == nil {
		return nil
	}

	return &dto.AlertResponse{
		ID:            alert.ID,
		DoctorID:      alert.DoctorID,
		PatientID:     alert.PatientID,
		PatientName:   alert.PatientName,
		AppointmentID: alert.AppointmentID,
		Recipient:     string(alert.Recipient),
		Type:          string(alert.Type),
		Message:       alert.Message,
		Priority:      string(alert.Priority),
		IsRead:        alert.IsRead,
		CreatedAt:     alert.CreatedAt,
	}
}

func AlertsToResponses(alerts []entity.Alert) []dto.AlertResponse {
	responses := make([]dto.AlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = *AlertToResponse(&alerts[i])
	}
	return responses
}
