package usecase

import (
	"context"

	"mindcare-backend/internal/converter"
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlertOwnerRequired = apperror.Validation("doctor_id or patient_id is required")
	ErrAlertAccess        = apperror.Forbidden("you do not have access to these alerts")
)

type AlertUsecase interface {
	ListAlerts(ctx context.Context, actor entity.Actor, filter entity.AlertFilter) (*dto.AlertListResponse, error)
	MarkRead(ctx context.Context, actor entity.Actor, req *dto.MarkAlertsReadRequest) (*dto.MarkAlertsReadResponse, error)
}

type alertUsecase struct {
	log          *logrus.Logger
	alertRepo    repository.AlertRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewAlertUsecase(
	log *logrus.Logger,
	alertRepo repository.AlertRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AlertUsecase {
	return &alertUsecase{
		log:          log,
		alertRepo:    alertRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// ListAlerts returns a doctor's or a patient's alerts, newest first.
// Doctors see alerts addressed to them; patients see alerts addressed to them.
func (u *alertUsecase) ListAlerts(ctx context.Context, actor entity.Actor, filter entity.AlertFilter) (*dto.AlertListResponse, error) {
	if filter.DoctorID == "" && filter.PatientID == "" {
		return nil, ErrAlertOwnerRequired
	}

	switch {
	case actor.IsPatient():
		if filter.PatientID != actor.UserID {
			u.auditService.LogForbidden(ctx, actor, "alert", filter.PatientID, ErrAlertAccess.Message)
			return nil, ErrAlertAccess
		}
		filter.Recipient = entity.AlertRecipientPatient
	case actor.IsDoctor():
		if err := u.requireDoctor(ctx, actor, filter.DoctorID); err != nil {
			return nil, err
		}
		filter.Recipient = entity.AlertRecipientDoctor
	case !actor.IsAdmin():
		return nil, ErrAlertAccess
	}

	alerts, err := u.alertRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list alerts: %+v", err)
		return nil, err
	}

	var unread int
	for _, a := range alerts {
		if !a.IsRead {
			unread++
		}
	}

	return &dto.AlertListResponse{
		Alerts: converter.AlertsToResponses(alerts),
		Total:  len(alerts),
		Unread: unread,
	}, nil
}

// MarkRead clears the doctor's unread appointment alerts, narrowed by patient and appointment when given.
// An appointment id also matches older alerts that were stored without one.
func (u *alertUsecase) MarkRead(ctx context.Context, actor entity.Actor, req *dto.MarkAlertsReadRequest) (*dto.MarkAlertsReadResponse, error) {
	if req == nil || req.DoctorID == "" {
		return nil, ErrDoctorIDRequired
	}

	if !actor.IsAdmin() {
		if err := u.requireDoctor(ctx, actor, req.DoctorID); err != nil {
			return nil, err
		}
	}

	updated, err := u.alertRepo.MarkRead(ctx, entity.AlertFilter{
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Recipient:     entity.AlertRecipientDoctor,
		Type:          entity.AlertTypeAppointment,
	})
	if err != nil {
		u.log.Warnf("Failed to mark alerts read for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	return &dto.MarkAlertsReadResponse{Updated: updated}, nil
}

func (u *alertUsecase) requireDoctor(ctx context.Context, actor entity.Actor, doctorID string) error {
	allowed, err := canActForDoctor(ctx, u.doctorRepo, actor, doctorID)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor for user %s: %+v", actor.UserID, err)
		return err
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "alert", doctorID, ErrAlertAccess.Message)
		return ErrAlertAccess
	}
	return nil
}
