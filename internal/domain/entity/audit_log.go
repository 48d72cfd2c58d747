package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AuditLog is a security or lifecycle trail entry
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	UserType  UserType  `gorm:"type:varchar(16)" json:"user_type,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*j = nil
		return nil
	}

	result := map[string]interface{}{}
	err = json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// StringList is a JSONB array of strings
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*s = nil
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Common audit actions
const (
	AuditActionAppointmentBook     = "appointment.book"
	AuditActionAppointmentConfirm  = "appointment.confirm"
	AuditActionAppointmentDecline  = "appointment.decline"
	AuditActionAppointmentCancel   = "appointment.cancel"
	AuditActionAppointmentComplete = "appointment.complete"
	AuditActionAppointmentDelete   = "appointment.delete"
	AuditActionForbidden           = "security.forbidden"
	AuditActionDoctorCreate        = "doctor.create"
	AuditActionPatientCreate       = "patient.create"
	AuditActionPatientUpdate       = "patient.update"
)
