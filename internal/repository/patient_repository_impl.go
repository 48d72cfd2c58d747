package repository

import (
	"context"
	"errors"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return storeErr("create patient", r.db.WithContext(ctx).Create(patient).Error)
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("find patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Patient, error) {
	var patients []entity.Patient
	if len(ids) == 0 {
		return patients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&patients).Error; err != nil {
		return nil, storeErr("find patients", err)
	}
	return patients, nil
}

func (r *patientRepository) FindAll(ctx context.Context, search string) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := r.db.WithContext(ctx).Model(&entity.Patient{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, storeErr("find patients", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id).Updates(patch)
	return result.RowsAffected, storeErr("update patient", result.Error)
}
