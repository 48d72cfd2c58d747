package usecase

import (
	"context"
	"strings"

	"mindcare-backend/internal/converter"
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorProfileExists = apperror.Conflict("a doctor profile already exists for this account")
	ErrDoctorOnly          = apperror.Forbidden("only doctors can create a doctor profile")
)

// specializationAliases maps the condition names patients pick to the specialization values doctors register with
var specializationAliases = map[string][]string{
	"anxiety disorders":     {"anxiety", "anxiety disorders"},
	"depression":            {"depression"},
	"bipolar disorder":      {"bipolar", "bipolar disorder"},
	"ocd":                   {"ocd"},
	"ptsd":                  {"ptsd"},
	"adhd":                  {"adhd"},
	"eating disorders":      {"eating disorders", "eating"},
	"personality disorders": {"personality disorders", "personality"},
	"substance abuse":       {"substance abuse", "addiction"},
	"schizophrenia":         {"schizophrenia"},
}

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID string) (*dto.DoctorResponse, error)
	GetMyProfile(ctx context.Context, actor entity.Actor) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// CreateDoctor registers the calling doctor's profile. A duplicate license number surfaces as a conflict from the store.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if !actor.IsDoctor() {
		return nil, ErrDoctorOnly
	}

	existing, err := u.doctorRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to check doctor profile for user %s: %+v", actor.UserID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorProfileExists
	}

	available := true
	doctor := &entity.Doctor{
		UserID:         actor.UserID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Specialization: strings.TrimSpace(req.Specialization),
		LicenseNumber:  strings.TrimSpace(req.LicenseNumber),
		IsAvailable:    &available,
		Rating:         decimal.Zero,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, actor, entity.AuditActionDoctorCreate, "doctor", doctor.ID, converter.DoctorToResponse(doctor))
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetMyProfile(ctx context.Context, actor entity.Actor) (*dto.DoctorResponse, error) {
	doctor, err := actorDoctor(ctx, u.doctorRepo, actor)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindForbidden {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

// ListDoctors returns every doctor, or those whose specialization matches the requested condition
func (u *doctorUsecase) ListDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	if specialization = strings.TrimSpace(specialization); specialization != "" {
		doctors = filterBySpecialization(doctors, specialization)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// filterBySpecialization matches case-insensitively in either direction so "Anxiety" finds "Anxiety Disorders" and back
func filterBySpecialization(doctors []entity.Doctor, specialization string) []entity.Doctor {
	wanted := strings.ToLower(specialization)
	candidates, ok := specializationAliases[wanted]
	if !ok {
		candidates = []string{wanted}
	}

	filtered := make([]entity.Doctor, 0, len(doctors))
	for _, d := range doctors {
		specialty := strings.ToLower(strings.TrimSpace(d.Specialization))
		if specialty == "" {
			continue
		}
		for _, c := range candidates {
			if strings.Contains(specialty, c) || strings.Contains(c, specialty) {
				filtered = append(filtered, d)
				break
			}
		}
	}
	return filtered
}
