package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateIfStatus applies patch only while the row still has status from.
	// Returns affected rows: 0 means the status changed underneath the caller.
	UpdateIfStatus(ctx context.Context, id string, from entity.AppointmentStatus, patch map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
