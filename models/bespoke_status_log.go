package models

import (
	"time"
)

// BespokeStatusLog is an append-only audit entry recording one accepted
// status transition of a bespoke order. Rows are written only inside the
// workflow transaction and are never updated or deleted; there is
// intentionally no UpdatedAt column and no mutation path.
type BespokeStatusLog struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	BespokeOrderID  uint        `gorm:"not null;index" json:"bespoke_order_id"`
	ChangedByUserID uint        `gorm:"not null" json:"changed_by_user_id"`
	ChangedBy       User        `gorm:"foreignKey:ChangedByUserID" json:"changed_by"`
	OldStatus       OrderStatus `gorm:"not null" json:"old_status"`
	NewStatus       OrderStatus `gorm:"not null" json:"new_status"`
	Note            *string     `json:"note"`
	CreatedAt       time.Time   `json:"created_at"`
}

// TableName specifies the table name for the BespokeStatusLog model
func (BespokeStatusLog) TableName() string {
	return "bespoke_status_logs"
}
