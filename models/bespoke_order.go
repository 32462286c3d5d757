package models

import (
	"time"

	"gorm.io/gorm"
)

// BespokeOrder represents a made-to-measure order in the system
type BespokeOrder struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"` // human-facing, e.g. "BSP-1001"

	// Customer contact details. CustomerID is set when the inquiry came
	// from (or was later linked to) a registered account.
	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerID    *uint  `gorm:"index" json:"customer_id,omitempty"`
	Customer      *User  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// Commercial fields
	EstimatedPrice float64  `json:"estimated_price"`
	FinalPrice     *float64 `json:"final_price"` // nullable, set when the quote is confirmed
	DepositAmount  float64  `json:"deposit_amount"`
	DepositPaid    bool     `gorm:"not null;default:false" json:"deposit_paid"`

	// Production fields
	DesignDescription    string              `gorm:"type:text;not null" json:"design_description"`
	FabricDetails        string              `gorm:"type:text" json:"fabric_details"`
	MeasurementProfileID *uint               `gorm:"index" json:"measurement_profile_id,omitempty"`
	MeasurementProfile   *MeasurementProfile `gorm:"foreignKey:MeasurementProfileID" json:"measurement_profile,omitempty"`
	DesignImageS3Key     *string             `json:"design_image_s3_key,omitempty"`
	DesignImageURL       *string             `gorm:"-" json:"design_image_url,omitempty"` // computed field, presigned URL

	// Lifecycle fields
	Status                  OrderStatus `gorm:"not null;default:'INQUIRY'" json:"status"`
	EstimatedCompletionDate *time.Time  `json:"estimated_completion_date"`
	ActualCompletionDate    *time.Time  `json:"actual_completion_date"` // stamped when the order reaches DELIVERED

	CustomerNotes string `gorm:"type:text" json:"customer_notes"`
	InternalNotes string `gorm:"type:text" json:"internal_notes,omitempty"` // staff-only; controllers blank it for customers

	Tasks     []ProductionTask `gorm:"foreignKey:BespokeOrderID" json:"tasks,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName specifies the table name for the BespokeOrder model
func (BespokeOrder) TableName() string {
	return "bespoke_orders"
}
