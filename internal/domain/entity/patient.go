package entity

import "time"

// EmergencyContact is stored inline on the patient row
type EmergencyContact struct {
	Name         string `gorm:"type:varchar(255)" json:"name"`
	Phone        string `gorm:"type:varchar(32)" json:"phone"`
	Relationship string `gorm:"type:varchar(64)" json:"relationship"`
}

// Patient represents a patient profile. ID is the identity-provider user id.
// DoctorID is the last assigned doctor; the most recent profile write wins.
type Patient struct {
	ID               string           `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Email            string           `gorm:"type:varchar(255);index" json:"email"`
	Age              int              `json:"age"`
	Gender           string           `gorm:"type:varchar(32)" json:"gender"`
	DoctorID         *string          `gorm:"type:varchar(64);index" json:"doctor_id,omitempty"`
	PrimaryDiagnosis string           `gorm:"type:varchar(255)" json:"primary_diagnosis,omitempty"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_contact_" json:"emergency_contact"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
