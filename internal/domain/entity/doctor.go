package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Doctor represents doctor-specific profile data. UserID links to the identity-provider account.
type Doctor struct {
	ID             string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserID         string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Email          string          `gorm:"type:varchar(255);not null" json:"email"`
	Specialization string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	IsAvailable    *bool           `gorm:"not null;default:true" json:"is_available"`
	Rating         decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	TotalReviews   int             `gorm:"not null;default:0" json:"total_reviews"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
