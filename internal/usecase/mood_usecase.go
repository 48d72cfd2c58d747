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
	ErrMoodValueOutOfRange = apperror.Validation("mood value must be between 1 and 10")
	ErrMoodPatientOnly     = apperror.Forbidden("only patients can record mood entries")
)

type MoodUsecase interface {
	CreateMoodEntry(ctx context.Context, actor entity.Actor, req *dto.CreateMoodEntryRequest) (*dto.MoodEntryResponse, error)
	ListMoodEntries(ctx context.Context, actor entity.Actor, patientID string, startDate string, endDate string) (*dto.MoodEntryListResponse, error)
}

type moodUsecase struct {
	log             *logrus.Logger
	moodRepo        repository.MoodEntryRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewMoodUsecase(
	log *logrus.Logger,
	moodRepo repository.MoodEntryRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) MoodUsecase {
	return &moodUsecase{
		log:             log,
		moodRepo:        moodRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *moodUsecase) CreateMoodEntry(ctx context.Context, actor entity.Actor, req *dto.CreateMoodEntryRequest) (*dto.MoodEntryResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrMoodPatientOnly
	}
	if req.Value < entity.MoodValueMin || req.Value > entity.MoodValueMax {
		return nil, ErrMoodValueOutOfRange.WithDetail("value", req.Value)
	}
	date, ok := entity.NormalizeDate(req.Date)
	if !ok {
		return nil, apperror.Validation("date must be YYYY-MM-DD").WithDetail("field", "date")
	}

	entry := &entity.MoodEntry{
		PatientID: actor.UserID,
		Date:      date,
		Value:     req.Value,
		Notes:     req.Notes,
		Factors:   entity.StringList(req.Factors),
	}
	if err := u.moodRepo.Create(ctx, entry); err != nil {
		u.log.Warnf("Failed to create mood entry: %+v", err)
		return nil, err
	}

	return converter.MoodEntryToResponse(entry), nil
}

// ListMoodEntries returns entries newest first, limited to [startDate, endDate] when bounds are given
func (u *moodUsecase) ListMoodEntries(ctx context.Context, actor entity.Actor, patientID string, startDate string, endDate string) (*dto.MoodEntryListResponse, error) {
	if patientID == "" {
		return nil, ErrPatientIDRequired
	}

	allowed, err := canViewPatient(ctx, u.doctorRepo, u.appointmentRepo, actor, patientID)
	if err != nil {
		u.log.Warnf("Failed to check access to patient %s: %+v", patientID, err)
		return nil, err
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "mood_entry", patientID, ErrPatientAccess.Message)
		return nil, ErrPatientAccess
	}

	entries, err := u.moodRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list mood entries for patient %s: %+v", patientID, err)
		return nil, err
	}

	filtered := entries[:0]
	for _, e := range entries {
		if startDate != "" && e.Date < startDate {
			continue
		}
		if endDate != "" && e.Date > endDate {
			continue
		}
		filtered = append(filtered, e)
	}

	return &dto.MoodEntryListResponse{
		Entries: converter.MoodEntriesToResponses(filtered),
		Total:   len(filtered),
	}, nil
}
