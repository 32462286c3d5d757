package models

import (
	"time"

	"gorm.io/gorm"
)

// MeasurementProfile stores a named set of body measurements for a
// registered customer. Bespoke orders reference a profile read-only; the
// workflow never mutates it. All measurements are in centimeters.
type MeasurementProfile struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"not null;index" json:"customer_id"`
	Customer   User   `gorm:"foreignKey:CustomerID" json:"-"`
	Label      string `gorm:"not null" json:"label"` // e.g. "Evening wear", "Standard fit"

	Bust         *float64 `json:"bust"`
	Waist        *float64 `json:"waist"`
	Hips         *float64 `json:"hips"`
	Shoulder     *float64 `json:"shoulder"`
	SleeveLength *float64 `json:"sleeve_length"`
	Inseam       *float64 `json:"inseam"`
	Height       *float64 `json:"height"`

	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MeasurementProfile model
func (MeasurementProfile) TableName() string {
	return "measurement_profiles"
}
