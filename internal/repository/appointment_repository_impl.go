package repository

import (
	"context"
	"errors"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return storeErr("create appointment", r.db.WithContext(ctx).Create(appointment).Error)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("find appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := r.db.WithContext(ctx).Model(&entity.Appointment{})

	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Date != "" {
		// dates written by older clients may carry a time component
		query = query.Where("LEFT(date, 10) = ?", filter.Date)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	err := query.Order("created_at DESC").Find(&appointments).Error
	if err != nil {
		return nil, storeErr("find appointments", err)
	}
	return appointments, nil
}

// UpdateIfStatus atomically updates an appointment ONLY if it still has status from.
// Returns affected rows: 1 = success, 0 = status changed concurrently (prevents double transitions).
func (r *appointmentRepository) UpdateIfStatus(ctx context.Context, id string, from entity.AppointmentStatus, patch map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(patch)
	return result.RowsAffected, storeErr("update appointment", result.Error)
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, storeErr("delete appointment", result.Error)
}
