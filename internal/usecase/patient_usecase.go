package usecase

import (
	"context"
	"sort"
	"strings"

	"mindcare-backend/internal/converter"
	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientProfileExists = apperror.Conflict("a patient profile already exists for this account")
	ErrPatientOnly          = apperror.Forbidden("only patients can create a patient profile")
	ErrPatientAccess        = apperror.Forbidden("you do not have access to this patient")
	ErrNothingToUpdate      = apperror.Validation("no fields to update")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, actor entity.Actor, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, patientID string, actor entity.Actor) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, patientID string, actor entity.Actor, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, actor entity.Actor, doctorID string, search string) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// CreatePatient onboards the calling patient; the profile id is the identity user id
func (u *patientUsecase) CreatePatient(ctx context.Context, actor entity.Actor, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	existing, err := u.patientRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to check patient profile %s: %+v", actor.UserID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientProfileExists
	}

	patient := converter.CreatePatientRequestToEntity(actor.UserID, req)
	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, actor, entity.AuditActionPatientCreate, "patient", patient.ID, nil)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID string, actor entity.Actor) (*dto.PatientResponse, error) {
	allowed, err := canViewPatient(ctx, u.doctorRepo, u.appointmentRepo, actor, patientID)
	if err != nil {
		u.log.Warnf("Failed to check access to patient %s: %+v", patientID, err)
		return nil, err
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "patient", patientID, ErrPatientAccess.Message)
		return nil, ErrPatientAccess
	}

	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

// UpdatePatient merges the provided fields into the profile. Only the patient or an admin may write it.
func (u *patientUsecase) UpdatePatient(ctx context.Context, patientID string, actor entity.Actor, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if !actor.IsAdmin() && !(actor.IsPatient() && actor.UserID == patientID) {
		u.auditService.LogForbidden(ctx, actor, "patient", patientID, ErrPatientAccess.Message)
		return nil, ErrPatientAccess
	}

	patch := converter.UpdatePatientRequestToPatch(req)
	if len(patch) == 0 {
		return nil, ErrNothingToUpdate
	}

	affected, err := u.patientRepo.Update(ctx, patientID, patch)
	if err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPatientNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to reload patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	u.auditService.LogUpdate(ctx, actor, entity.AuditActionPatientUpdate, "patient", patientID, nil, patch)
	return converter.PatientToResponse(patient), nil
}

// ListPatients returns a doctor's patients (distinct patients of confirmed appointments) or, for admins
// without a doctor filter, every profile. Search matches the name case-insensitively.
func (u *patientUsecase) ListPatients(ctx context.Context, actor entity.Actor, doctorID string, search string) (*dto.PatientListResponse, error) {
	search = strings.TrimSpace(search)

	if doctorID == "" {
		if actor.IsDoctor() {
			doctor, err := actorDoctor(ctx, u.doctorRepo, actor)
			if err != nil {
				return nil, err
			}
			doctorID = doctor.ID
		} else if !actor.IsAdmin() {
			return nil, ErrPatientAccess
		}
	}

	if doctorID == "" {
		patients, err := u.patientRepo.FindAll(ctx, search)
		if err != nil {
			u.log.Warnf("Failed to list patients: %+v", err)
			return nil, err
		}
		responses := make([]dto.PatientResponse, len(patients))
		for i := range patients {
			responses[i] = *converter.PatientToResponse(&patients[i])
		}
		return &dto.PatientListResponse{Patients: responses, Total: len(responses)}, nil
	}

	allowed, err := canActForDoctor(ctx, u.doctorRepo, actor, doctorID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		u.auditService.LogForbidden(ctx, actor, "patient", doctorID, ErrPatientAccess.Message)
		return nil, ErrPatientAccess
	}

	return u.doctorPatients(ctx, doctorID, search)
}

func (u *patientUsecase) doctorPatients(ctx context.Context, doctorID string, search string) (*dto.PatientListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, entity.AppointmentFilter{
		DoctorID: doctorID,
		Statuses: []entity.AppointmentStatus{entity.AppointmentStatusConfirmed},
	})
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	type summary struct {
		snapshotName string
		last         string
		total        int
	}
	summaries := make(map[string]*summary)
	ids := make([]string, 0)
	for _, a := range appointments {
		s, ok := summaries[a.PatientID]
		if !ok {
			s = &summary{snapshotName: a.PatientName}
			summaries[a.PatientID] = s
			ids = append(ids, a.PatientID)
		}
		s.total++
		if date, ok := entity.NormalizeDate(a.Date); ok && date > s.last {
			s.last = date
		}
	}

	profiles, err := u.patientRepo.FindByIDs(ctx, ids)
	if err != nil {
		u.log.Warnf("Failed to load patient profiles: %+v", err)
		return nil, err
	}
	byID := make(map[string]*entity.Patient, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	responses := make([]dto.PatientResponse, 0, len(ids))
	needle := strings.ToLower(search)
	for _, id := range ids {
		s := summaries[id]

		var response dto.PatientResponse
		if profile, ok := byID[id]; ok {
			response = *converter.PatientToResponse(profile)
		} else {
			// no profile yet; fall back to the booking snapshot
			response = dto.PatientResponse{ID: id, Name: s.snapshotName}
		}
		if needle != "" && !strings.Contains(strings.ToLower(response.Name), needle) {
			continue
		}

		response.LastAppointment = s.last
		response.TotalAppointments = s.total
		responses = append(responses, response)
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].LastAppointment > responses[j].LastAppointment
	})

	return &dto.PatientListResponse{Patients: responses, Total: len(responses)}, nil
}
