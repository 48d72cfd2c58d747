package repository

import (
	"context"
	"errors"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return storeErr("create doctor", r.db.WithContext(ctx).Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *doctorRepository) FindByUserID(ctx context.Context, userID string) (*entity.Doctor, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, storeErr("find doctors", err)
	}
	return doctors, nil
}

func (r *doctorRepository) findOne(ctx context.Context, condition string, arg string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where(condition, arg).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("find doctor", err)
	}
	return &doctor, nil
}
