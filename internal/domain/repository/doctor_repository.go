package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id string) (*entity.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
}
