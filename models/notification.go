package models

import (
	"time"
)

// Notification categories used by the workflow
const (
	NotificationCategoryOrderStatus = "order_status"
)

// Notification represents a customer-facing notification. Rows are written
// by the notification dispatcher as a best-effort side effect of workflow
// events and are read by their recipient.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Title     string     `gorm:"not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Category  string     `json:"category"`
	LinkURL   string     `json:"link_url"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
