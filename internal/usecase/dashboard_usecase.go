package usecase

import (
	"context"
	"time"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrPatientNotFound   = apperror.NotFound("patient not found")
	ErrDashboardAccess   = apperror.Forbidden("you do not have access to this dashboard")
	ErrDoctorIDRequired  = apperror.Validation("doctor id is required")
	ErrPatientIDRequired = apperror.Validation("patient id is required")
)

type DashboardUsecase interface {
	GetDoctorDashboard(ctx context.Context, doctorID string, actor entity.Actor) (*dto.DoctorDashboardResponse, error)
	GetPatientDashboard(ctx context.Context, patientID string, actor entity.Actor) (*dto.PatientDashboardResponse, error)
}

type dashboardUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	messageRepo     repository.MessageRepository
	moodRepo        repository.MoodEntryRepository
	chatRepo        repository.ChatSessionRepository
	auditService    service.AuditService
	location        *time.Location
	now             func() time.Time
}

func NewDashboardUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	messageRepo repository.MessageRepository,
	moodRepo repository.MoodEntryRepository,
	chatRepo repository.ChatSessionRepository,
	auditService service.AuditService,
	location *time.Location,
) DashboardUsecase {
	if location == nil {
		location = time.UTC
	}

	return &dashboardUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		messageRepo:     messageRepo,
		moodRepo:        moodRepo,
		chatRepo:        chatRepo,
		auditService:    auditService,
		location:        location,
		now:             time.Now,
	}
}

// GetDoctorDashboard scans the doctor's whole appointment set on every call; results are not cached
func (u *dashboardUsecase) GetDoctorDashboard(ctx context.Context, doctorID string, actor entity.Actor) (*dto.DoctorDashboardResponse, error) {
	if doctorID == "" {
		return nil, ErrDoctorIDRequired
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !actor.IsAdmin() && !(actor.IsDoctor() && doctor.UserID == actor.UserID) {
		u.auditService.LogForbidden(ctx, actor, "doctor_dashboard", doctorID, ErrDashboardAccess.Message)
		return nil, ErrDashboardAccess
	}

	var (
		appointments    []entity.Appointment
		pendingMessages int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = u.appointmentRepo.FindAll(gctx, entity.AppointmentFilter{DoctorID: doctorID})
		return err
	})
	g.Go(func() error {
		var err error
		pendingMessages, err = u.messageRepo.CountUnread(gctx, doctor.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load dashboard data for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	now := u.now().In(u.location)
	today := now.Format(entity.DateLayout)
	activeSince := now.AddDate(0, 0, -activePatientWindowDays).Format(entity.DateLayout)

	return &dto.DoctorDashboardResponse{
		TotalPatients:       countDistinctPatients(appointments, entity.AppointmentStatusConfirmed, ""),
		ActivePatients:      countDistinctPatients(appointments, entity.AppointmentStatusConfirmed, activeSince),
		TodayAppointments:   countOnDate(appointments, entity.AppointmentStatusConfirmed, today),
		PendingMessages:     pendingMessages,
		MonthlyAppointments: monthlyAppointments(appointments, now),
		PatientProgress:     append([]dto.WeeklyProgress(nil), placeholderPatientProgress...),
	}, nil
}

func (u *dashboardUsecase) GetPatientDashboard(ctx context.Context, patientID string, actor entity.Actor) (*dto.PatientDashboardResponse, error) {
	if patientID == "" {
		return nil, ErrPatientIDRequired
	}

	allowed, err := canViewPatient(ctx, u.doctorRepo, u.appointmentRepo, actor, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "patient_dashboard", patientID, ErrDashboardAccess.Message)
		return nil, ErrDashboardAccess
	}

	var (
		moods        []entity.MoodEntry
		chatSessions int64
		completed    []entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moods, err = u.moodRepo.FindByPatientID(gctx, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		chatSessions, err = u.chatRepo.CountByPatientID(gctx, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = u.appointmentRepo.FindAll(gctx, entity.AppointmentFilter{
			PatientID: patientID,
			Statuses:  []entity.AppointmentStatus{entity.AppointmentStatusCompleted},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load dashboard data for patient %s: %+v", patientID, err)
		return nil, err
	}

	average := averageMood(moods)

	return &dto.PatientDashboardResponse{
		AverageMood:           average.InexactFloat64(),
		ChatSessions:          chatSessions,
		CompletedAppointments: countStatus(completed, entity.AppointmentStatusCompleted),
		ProgressPercentage:    progressPercentage(average).InexactFloat64(),
		MoodData:              moodSeries(moods),
		ProgressData:          append([]dto.ProgressMetric(nil), placeholderProgressData...),
	}, nil
}
