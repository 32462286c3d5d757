package models

import (
	"time"
)

// TaskStatus represents the progress of a single production task
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "NOT_STARTED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// IsValid reports whether s is a member of the task status enum
func (s TaskStatus) IsValid() bool {
	return s == TaskNotStarted || s == TaskInProgress || s == TaskCompleted
}

// Manufacturing stages commonly used for tasks. The stage field is
// free-form; these are suggestions for the admin UI, not an enum.
const (
	StageCutting    = "cutting"
	StageSewing     = "sewing"
	StageEmbroidery = "embroidery"
	StageFinishing  = "finishing"
)

// ProductionTask represents one unit of manufacturing work belonging to a
// bespoke order
type ProductionTask struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	BespokeOrderID uint   `gorm:"not null;index" json:"bespoke_order_id"`
	Title          string `gorm:"not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	Stage          string `json:"stage"` // e.g. cutting, sewing, embroidery, finishing

	Status       TaskStatus `gorm:"not null;default:'NOT_STARTED'" json:"status"`
	AssignedToID *uint      `gorm:"index" json:"assigned_to_id"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	Priority  int `json:"priority"`
	SortOrder int `gorm:"not null" json:"sort_order"` // display ordering, max+1 per order at creation

	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	DueDate        *time.Time `json:"due_date"`
	CompletedAt    *time.Time `json:"completed_at"` // set iff Status == COMPLETED

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ProductionTask model
func (ProductionTask) TableName() string {
	return "production_tasks"
}
