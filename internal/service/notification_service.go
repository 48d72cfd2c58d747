package service

import (
	"context"
	"fmt"

	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// NotificationService turns appointment transitions into alerts for the other party.
// Every method is best-effort: alert failures are logged and never roll back the transition.
type NotificationService interface {
	// AppointmentBooked alerts the doctor of a patient request, or the patient of a doctor-scheduled visit
	AppointmentBooked(ctx context.Context, appointment *entity.Appointment, bookedBy entity.UserType)
	// AppointmentStatusChanged alerts the patient that the doctor confirmed or declined, and clears the doctor's request alert
	AppointmentStatusChanged(ctx context.Context, appointment *entity.Appointment)
	// AppointmentCancelledByPatient alerts the doctor and clears the doctor's request alert
	AppointmentCancelledByPatient(ctx context.Context, appointment *entity.Appointment)
}

type notificationService struct {
	log       *logrus.Logger
	alertRepo repository.AlertRepository
}

func NewNotificationService(log *logrus.Logger, alertRepo repository.AlertRepository) NotificationService {
	return &notificationService{
		log:       log,
		alertRepo: alertRepo,
	}
}

func (s *notificationService) AppointmentBooked(ctx context.Context, appointment *entity.Appointment, bookedBy entity.UserType) {
	if bookedBy == entity.UserTypeDoctor {
		s.create(ctx, appointment, entity.AlertRecipientPatient, entity.AlertPriorityMedium,
			fmt.Sprintf("New appointment scheduled on %s at %s", appointment.Date, appointment.Time))
		return
	}

	s.create(ctx, appointment, entity.AlertRecipientDoctor, entity.AlertPriorityMedium,
		fmt.Sprintf("New appointment request from %s", appointment.PatientName))
}

func (s *notificationService) AppointmentStatusChanged(ctx context.Context, appointment *entity.Appointment) {
	s.markRequestRead(ctx, appointment)

	priority := entity.AlertPriorityLow
	if appointment.IsCancelled() {
		priority = entity.AlertPriorityHigh
	}

	s.create(ctx, appointment, entity.AlertRecipientPatient, priority,
		fmt.Sprintf("Your appointment on %s at %s has been %s", appointment.Date, appointment.Time, appointment.Status))
}

func (s *notificationService) AppointmentCancelledByPatient(ctx context.Context, appointment *entity.Appointment) {
	s.markRequestRead(ctx, appointment)

	s.create(ctx, appointment, entity.AlertRecipientDoctor, entity.AlertPriorityMedium,
		fmt.Sprintf("%s cancelled the appointment on %s at %s", appointment.PatientName, appointment.Date, appointment.Time))
}

func (s *notificationService) create(ctx context.Context, appointment *entity.Appointment, recipient entity.AlertRecipient, priority entity.AlertPriority, message string) {
	appointmentID := appointment.ID
	alert := &entity.Alert{
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		PatientName:   appointment.PatientName,
		AppointmentID: &appointmentID,
		Recipient:     recipient,
		Type:          entity.AlertTypeAppointment,
		Message:       message,
		Priority:      priority,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.log.Warnf("Failed to create %s alert for appointment %s: %+v", recipient, appointment.ID, err)
	}
}

// markRequestRead clears the doctor's unread appointment alerts for this patient
func (s *notificationService) markRequestRead(ctx context.Context, appointment *entity.Appointment) {
	n, err := s.alertRepo.MarkRead(ctx, entity.AlertFilter{
		DoctorID:  appointment.DoctorID,
		PatientID: appointment.PatientID,
		Recipient: entity.AlertRecipientDoctor,
		Type:      entity.AlertTypeAppointment,
	})
	if err != nil {
		s.log.Warnf("Failed to mark appointment alerts read for appointment %s: %+v", appointment.ID, err)
		return
	}
	s.log.Debugf("Marked %d doctor alerts read for appointment %s", n, appointment.ID)
}
