package usecase

import (
	"context"

	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/pkg/apperror"
)

var (
	ErrDoctorNotFound      = apperror.NotFound("doctor not found")
	ErrDoctorProfileAbsent = apperror.Forbidden("no doctor profile is linked to this account")
)

// actorDoctor resolves the doctor profile behind a doctor actor
func actorDoctor(ctx context.Context, doctorRepo repository.DoctorRepository, actor entity.Actor) (*entity.Doctor, error) {
	if !actor.IsDoctor() {
		return nil, ErrDoctorProfileAbsent
	}

	doctor, err := doctorRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileAbsent
	}
	return doctor, nil
}

// canActForDoctor reports whether actor may read doctorID's data. Admins always may.
func canActForDoctor(ctx context.Context, doctorRepo repository.DoctorRepository, actor entity.Actor, doctorID string) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	if !actor.IsDoctor() {
		return false, nil
	}

	doctor, err := doctorRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return false, err
	}
	return doctor != nil && doctor.ID == doctorID, nil
}

// canViewPatient allows the patient, admins, and doctors the patient has an appointment with
func canViewPatient(ctx context.Context, doctorRepo repository.DoctorRepository, appointmentRepo repository.AppointmentRepository, actor entity.Actor, patientID string) (bool, error) {
	switch {
	case actor.IsAdmin():
		return true, nil
	case actor.IsPatient():
		return actor.UserID == patientID, nil
	case actor.IsDoctor():
		doctor, err := doctorRepo.FindByUserID(ctx, actor.UserID)
		if err != nil || doctor == nil {
			return false, err
		}
		shared, err := appointmentRepo.FindAll(ctx, entity.AppointmentFilter{DoctorID: doctor.ID, PatientID: patientID})
		if err != nil {
			return false, err
		}
		return len(shared) > 0, nil
	default:
		return false, nil
	}
}
