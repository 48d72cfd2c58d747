package repository

import (
	"context"

	"mindcare-backend/internal/domain/entity"
	domainRepo "mindcare-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) domainRepo.AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	return storeErr("create alert", r.db.WithContext(ctx).Create(alert).Error)
}

func (r *alertRepository) FindAll(ctx context.Context, filter entity.AlertFilter) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := applyAlertFilter(r.db.WithContext(ctx).Model(&entity.Alert{}), filter).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, storeErr("find alerts", err)
	}
	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, filter entity.AlertFilter) (int64, error) {
	unread := false
	filter.IsRead = &unread
	result := applyAlertFilter(r.db.WithContext(ctx).Model(&entity.Alert{}), filter).
		UpdateColumn("is_read", true)
	return result.RowsAffected, storeErr("mark alerts read", result.Error)
}

func applyAlertFilter(query *gorm.DB, filter entity.AlertFilter) *gorm.DB {
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.AppointmentID != "" {
		// alerts written before appointment_id existed can only be matched by party
		query = query.Where("(appointment_id = ? OR appointment_id IS NULL)", filter.AppointmentID)
	}
	if filter.Recipient != "" {
		query = query.Where("recipient = ?", filter.Recipient)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	return query
}
