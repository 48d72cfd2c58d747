package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	FindByIDs(ctx context.Context, ids []string) ([]entity.Patient, error)
	FindAll(ctx context.Context, search string) ([]entity.Patient, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (int64, error)
}
