package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindcare-backend/internal/converter"
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const (
	CancellationPolicyText  = "Appointments can only be cancelled at least 24 hours in advance"
	CancellationWarningText = "For urgent cancellations, please contact your doctor directly"
	DefaultCancelReason     = "No reason provided"
)

var (
	ErrAppointmentNotFound    = apperror.NotFound("appointment not found")
	ErrNotAppointmentDoctor   = apperror.Forbidden("only the appointment's doctor can change its status")
	ErrNotAppointmentPatient  = apperror.Forbidden("unauthorized to cancel this appointment")
	ErrAppointmentAccess      = apperror.Forbidden("you do not have access to this appointment")
	ErrBookForOtherPatient    = apperror.Forbidden("patients can only book appointments for themselves")
	ErrBookForOtherDoctor     = apperror.Forbidden("doctors can only schedule their own appointments")
	ErrAdminOnly              = apperror.Forbidden("admin access required")
	ErrSlotTaken              = apperror.Conflict("this time slot is already booked")
	ErrCancellationTooLate    = apperror.New(apperror.KindTooLate, CancellationPolicyText)
	ErrInvalidStatusUpdate    = apperror.Validation("status must be one of confirmed, cancelled, completed")
	ErrUnreadableScheduleTime = apperror.Validation("appointment date and time cannot be interpreted")
)

// BookingPolicy holds the clinic-wide rules the lifecycle enforces
type BookingPolicy struct {
	// Location is the wall clock that stored dates and times are read in
	Location           *time.Location
	CancellationWindow time.Duration
	UniqueSlot         bool
}

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Confirm(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error)
	Decline(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error)
	CancelByPatient(ctx context.Context, appointmentID string, patientID string, reason string) (*dto.AppointmentResponse, error)
	MarkComplete(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, appointmentID string, status string, actor entity.Actor) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, actor entity.Actor, filter entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID string, actor entity.Actor) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	notifier        service.NotificationService
	auditService    service.AuditService
	slotLocker      service.SlotLocker
	policy          BookingPolicy
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	notifier service.NotificationService,
	auditService service.AuditService,
	slotLocker service.SlotLocker,
	policy BookingPolicy,
) AppointmentUsecase {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	if policy.CancellationWindow <= 0 {
		policy.CancellationWindow = 24 * time.Hour
	}

	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		notifier:        notifier,
		auditService:    auditService,
		slotLocker:      slotLocker,
		policy:          policy,
		now:             time.Now,
	}
}

// BookAppointment creates a pending appointment.
//
// Flow:
// 1. Validate fields and the actor's right to book for this doctor/patient pair
// 2. With UniqueSlot: lock the doctor/date/hour slot and reject if a live appointment holds it
// 3. Insert the appointment (authoritative write)
// 4. Notify the other party and audit (best-effort)
func (u *appointmentUsecase) BookAppointment(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, hour, err := u.validateBooking(req)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsPatient():
		if appointment.PatientID != actor.UserID {
			u.auditService.LogForbidden(ctx, actor, "appointment", "", ErrBookForOtherPatient.Message)
			return nil, ErrBookForOtherPatient
		}
	case actor.IsDoctor():
		doctor, err := actorDoctor(ctx, u.doctorRepo, actor)
		if err != nil {
			return nil, err
		}
		if doctor.ID != appointment.DoctorID {
			u.auditService.LogForbidden(ctx, actor, "appointment", "", ErrBookForOtherDoctor.Message)
			return nil, ErrBookForOtherDoctor
		}
	}

	doctor, err := u.doctorRepo.FindByID(ctx, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if u.policy.UniqueSlot {
		release, err := u.reserveSlot(ctx, appointment, hour)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentBooked(ctx, appointment, actor.UserType)
	u.auditService.LogCreate(ctx, actor, entity.AuditActionAppointmentBook, "appointment", appointment.ID, converter.AppointmentToResponse(appointment))

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) validateBooking(req *dto.BookAppointmentRequest) (*entity.Appointment, int, error) {
	if req == nil {
		return nil, 0, apperror.Validation("booking request is required")
	}

	required := map[string]string{
		"doctor_id":    req.DoctorID,
		"patient_id":   req.PatientID,
		"patient_name": req.PatientName,
		"doctor_name":  req.DoctorName,
		"date":         req.Date,
		"time":         req.Time,
		"type":         req.Type,
	}
	for _, field := range []string{"doctor_id", "patient_id", "patient_name", "doctor_name", "date", "time", "type"} {
		if strings.TrimSpace(required[field]) == "" {
			return nil, 0, apperror.Validation(field + " is required").WithDetail("field", field)
		}
	}

	date, ok := entity.NormalizeDate(req.Date)
	if !ok {
		return nil, 0, apperror.Validation("date must be YYYY-MM-DD").WithDetail("field", "date")
	}
	hour, _, err := entity.ParseClock(req.Time)
	if err != nil {
		return nil, 0, apperror.Validation("time must be HH:mm or h:mm AM/PM").WithDetail("field", "time")
	}
	if !entity.IsAppointmentType(req.Type) {
		return nil, 0, apperror.Validation("unknown appointment type").WithDetail("field", "type")
	}
	if req.Duration < 0 {
		return nil, 0, apperror.Validation("duration must be positive").WithDetail("field", "duration")
	}

	appointment := converter.BookAppointmentRequestToEntity(req)
	appointment.Date = date
	return appointment, hour, nil
}

// reserveSlot holds the slot lock and checks no live appointment already occupies the hour.
// The returned release must be called once the appointment row is written.
func (u *appointmentUsecase) reserveSlot(ctx context.Context, appointment *entity.Appointment, hour int) (func(), error) {
	release := func() {}
	if u.slotLocker != nil {
		var err error
		release, err = u.slotLocker.Acquire(ctx, appointment.DoctorID, appointment.Date, hour)
		if err != nil {
			if errors.Is(err, service.ErrSlotBusy) {
				return nil, ErrSlotTaken
			}
			u.log.Warnf("Failed to lock slot for doctor %s on %s at %02d:00: %+v", appointment.DoctorID, appointment.Date, hour, err)
			return nil, err
		}
	}

	existing, err := u.appointmentRepo.FindAll(ctx, entity.AppointmentFilter{
		DoctorID: appointment.DoctorID,
		Date:     appointment.Date,
		Statuses: entity.LiveAppointmentStatuses,
	})
	if err != nil {
		release()
		u.log.Warnf("Failed to check slot for doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}

	for _, a := range existing {
		if h, _, err := entity.ParseClock(a.Time); err == nil && h == hour {
			release()
			return nil, ErrSlotTaken.WithDetail("time", a.Time)
		}
	}

	return release, nil
}

// Confirm moves a pending appointment to confirmed. Only the appointment's doctor may confirm.
func (u *appointmentUsecase) Confirm(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error) {
	appointment, err := u.loadForDoctorDecision(ctx, appointmentID, actor, entity.AppointmentStatusConfirmed)
	if err != nil {
		return nil, err
	}

	if err := u.transition(ctx, appointment, map[string]interface{}{
		"status": entity.AppointmentStatusConfirmed,
	}); err != nil {
		return nil, err
	}
	appointment.Confirm()

	u.notifier.AppointmentStatusChanged(ctx, appointment)
	u.auditService.LogUpdate(ctx, actor, entity.AuditActionAppointmentConfirm, "appointment", appointment.ID,
		entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed)

	return converter.AppointmentToResponse(appointment), nil
}

// Decline cancels a pending appointment on the doctor's behalf
func (u *appointmentUsecase) Decline(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error) {
	appointment, err := u.loadForDoctorDecision(ctx, appointmentID, actor, entity.AppointmentStatusCancelled)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	if err := u.transition(ctx, appointment, map[string]interface{}{
		"status":       entity.AppointmentStatusCancelled,
		"cancelled_by": entity.CancelledByDoctor,
		"cancelled_at": now,
	}); err != nil {
		return nil, err
	}
	appointment.Cancel(entity.CancelledByDoctor, "", now)

	u.notifier.AppointmentStatusChanged(ctx, appointment)
	u.auditService.LogUpdate(ctx, actor, entity.AuditActionAppointmentDecline, "appointment", appointment.ID,
		entity.AppointmentStatusPending, entity.AppointmentStatusCancelled)

	return converter.AppointmentToResponse(appointment), nil
}

// loadForDoctorDecision enforces NotFound, then ownership, then the pending requirement
func (u *appointmentUsecase) loadForDoctorDecision(ctx context.Context, appointmentID string, actor entity.Actor, next entity.AppointmentStatus) (*entity.Appointment, error) {
	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	allowed, err := u.isAppointmentDoctor(ctx, actor, appointment)
	if err != nil {
		return nil, err
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "appointment", appointment.ID, ErrNotAppointmentDoctor.Message)
		return nil, ErrNotAppointmentDoctor
	}

	if !appointment.IsPending() {
		return nil, apperror.InvalidState(
			fmt.Sprintf("cannot change a %s appointment to %s", appointment.Status, next),
			string(appointment.Status),
		)
	}

	return appointment, nil
}

// CancelByPatient cancels on the patient's behalf.
// Checks run in order: existence, ownership, lifecycle state, cancellation window.
func (u *appointmentUsecase) CancelByPatient(ctx context.Context, appointmentID string, patientID string, reason string) (*dto.AppointmentResponse, error) {
	actor := entity.Actor{UserID: patientID, UserType: entity.UserTypePatient}

	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.PatientID != patientID {
		u.auditService.LogForbidden(ctx, actor, "appointment", appointment.ID, ErrNotAppointmentPatient.Message)
		return nil, ErrNotAppointmentPatient
	}

	switch {
	case appointment.IsCompleted():
		return nil, apperror.InvalidState("cannot cancel a completed appointment", string(appointment.Status))
	case appointment.IsCancelled():
		return nil, apperror.InvalidState("appointment is already cancelled", string(appointment.Status))
	}

	scheduledAt, err := appointment.ScheduledAt(u.policy.Location)
	if err != nil {
		u.log.Warnf("Unreadable schedule on appointment %s (%q %q): %+v", appointment.ID, appointment.Date, appointment.Time, err)
		return nil, ErrUnreadableScheduleTime
	}

	now := u.now()
	remaining := scheduledAt.Sub(now)
	if remaining < u.policy.CancellationWindow {
		return nil, ErrCancellationTooLate.
			WithDetail("policy", CancellationPolicyText).
			WithDetail("warning", CancellationWarningText).
			WithDetail("hours_until_appointment", remaining.Hours())
	}

	if strings.TrimSpace(reason) == "" {
		reason = DefaultCancelReason
	}

	previous := appointment.Status
	cancelledAt := now.UTC()
	if err := u.transition(ctx, appointment, map[string]interface{}{
		"status":              entity.AppointmentStatusCancelled,
		"cancellation_reason": reason,
		"cancelled_by":        entity.CancelledByPatient,
		"cancelled_at":        cancelledAt,
	}); err != nil {
		return nil, err
	}
	appointment.Cancel(entity.CancelledByPatient, reason, cancelledAt)

	u.notifier.AppointmentCancelledByPatient(ctx, appointment)
	u.auditService.LogUpdate(ctx, actor, entity.AuditActionAppointmentCancel, "appointment", appointment.ID, previous, entity.AppointmentStatusCancelled)

	return converter.AppointmentToResponse(appointment), nil
}

// MarkComplete closes a confirmed appointment. Allowed for its doctor or an admin.
func (u *appointmentUsecase) MarkComplete(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	allowed := actor.IsAdmin()
	if !allowed {
		allowed, err = u.isAppointmentDoctor(ctx, actor, appointment)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "appointment", appointment.ID, ErrNotAppointmentDoctor.Message)
		return nil, ErrNotAppointmentDoctor
	}

	if !appointment.IsConfirmed() {
		return nil, apperror.InvalidState(
			fmt.Sprintf("only confirmed appointments can be completed, this one is %s", appointment.Status),
			string(appointment.Status),
		)
	}

	if err := u.transition(ctx, appointment, map[string]interface{}{
		"status": entity.AppointmentStatusCompleted,
	}); err != nil {
		return nil, err
	}
	appointment.Complete()

	u.auditService.LogUpdate(ctx, actor, entity.AuditActionAppointmentComplete, "appointment", appointment.ID,
		entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted)

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus maps the generic status-update surface onto the lifecycle operations
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID string, status string, actor entity.Actor) (*dto.AppointmentResponse, error) {
	switch entity.AppointmentStatus(strings.ToLower(strings.TrimSpace(status))) {
	case entity.AppointmentStatusConfirmed:
		return u.Confirm(ctx, appointmentID, actor)
	case entity.AppointmentStatusCancelled:
		return u.Decline(ctx, appointmentID, actor)
	case entity.AppointmentStatusCompleted:
		return u.MarkComplete(ctx, appointmentID, actor)
	default:
		return nil, ErrInvalidStatusUpdate.WithDetail("status", status)
	}
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID string, actor entity.Actor) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	allowed := actor.IsAdmin() || (actor.IsPatient() && appointment.PatientID == actor.UserID)
	if !allowed && actor.IsDoctor() {
		allowed, err = u.isAppointmentDoctor(ctx, actor, appointment)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "appointment", appointment.ID, ErrAppointmentAccess.Message)
		return nil, ErrAppointmentAccess
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListAppointments scopes the filter to the caller: patients see their own, doctors their own schedule
func (u *appointmentUsecase) ListAppointments(ctx context.Context, actor entity.Actor, filter entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	if filter.Date != "" {
		date, ok := entity.NormalizeDate(filter.Date)
		if !ok {
			return nil, apperror.Validation("date must be YYYY-MM-DD").WithDetail("field", "date")
		}
		filter.Date = date
	}

	switch {
	case actor.IsPatient():
		if filter.PatientID != "" && filter.PatientID != actor.UserID {
			return nil, ErrAppointmentAccess
		}
		filter.PatientID = actor.UserID
	case actor.IsDoctor():
		doctor, err := actorDoctor(ctx, u.doctorRepo, actor)
		if err != nil {
			return nil, err
		}
		if filter.DoctorID != "" && filter.DoctorID != doctor.ID {
			return nil, ErrAppointmentAccess
		}
		filter.DoctorID = doctor.ID
	case !actor.IsAdmin():
		return nil, ErrAppointmentAccess
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// DeleteAppointment is an administrative escape hatch outside the lifecycle
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string, actor entity.Actor) error {
	if !actor.IsAdmin() {
		u.auditService.LogForbidden(ctx, actor, "appointment", appointmentID, ErrAdminOnly.Message)
		return ErrAdminOnly
	}

	appointment, err := u.find(ctx, appointmentID)
	if err != nil {
		return err
	}

	affected, err := u.appointmentRepo.Delete(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.LogDelete(ctx, actor, entity.AuditActionAppointmentDelete, "appointment", appointmentID, converter.AppointmentToResponse(appointment))
	return nil
}

func (u *appointmentUsecase) find(ctx context.Context, appointmentID string) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) isAppointmentDoctor(ctx context.Context, actor entity.Actor, appointment *entity.Appointment) (bool, error) {
	if !actor.IsDoctor() {
		return false, nil
	}
	doctor, err := u.doctorRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor for user %s: %+v", actor.UserID, err)
		return false, err
	}
	return doctor != nil && doctor.ID == appointment.DoctorID, nil
}

// transition writes patch only if the row still has the status we read.
// Losing that race reports the status the winner left behind.
func (u *appointmentUsecase) transition(ctx context.Context, appointment *entity.Appointment, patch map[string]interface{}) error {
	next := patch["status"].(entity.AppointmentStatus)
	if !appointment.CanTransitionTo(next) {
		return apperror.InvalidState(
			fmt.Sprintf("cannot change a %s appointment to %s", appointment.Status, next),
			string(appointment.Status),
		)
	}

	affected, err := u.appointmentRepo.UpdateIfStatus(ctx, appointment.ID, appointment.Status, patch)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s to %s: %+v", appointment.ID, next, err)
		return err
	}
	if affected > 0 {
		return nil
	}

	current, err := u.find(ctx, appointment.ID)
	if err != nil {
		return err
	}
	return apperror.InvalidState(
		fmt.Sprintf("appointment changed to %s before it could be %s", current.Status, next),
		string(current.Status),
	)
}
