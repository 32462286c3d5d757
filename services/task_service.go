package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/amara-couture/atelier-api/models"
	"gorm.io/gorm"
)

// TaskService manages the production tasks attached to a bespoke order.
// Tasks are independent rows: mutating one never touches the owning order
// or its siblings.
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a task service bound to a database handle
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTaskInput holds the caller-supplied fields for a new task
type CreateTaskInput struct {
	Title          string
	Description    string
	Stage          string
	AssignedToID   *uint
	Priority       int
	EstimatedHours *float64
	DueDate        *time.Time
	Notes          string
}

// TaskPatch holds a partial update; nil fields are left untouched
type TaskPatch struct {
	Title          *string
	Description    *string
	Stage          *string
	Status         *models.TaskStatus
	AssignedToID   *uint
	Priority       *int
	EstimatedHours *float64
	ActualHours    *float64
	DueDate        *time.Time
	Notes          *string
}

// CreateTask creates a production task for an existing order. The new task
// starts NOT_STARTED and is appended to the end of the order's visible
// list: its sort order is one more than the current maximum for the order.
// Two racing creates can produce duplicate sort orders; that is tolerated,
// sort order is a display hint and not a uniqueness-bearing key.
func (s *TaskService) CreateTask(orderID uint, input CreateTaskInput) (*models.ProductionTask, error) {
	var order models.BespokeOrder
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &WorkflowError{
				Code:    ErrCodeOrderNotFound,
				Message: "Bespoke order not found",
			}
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	var maxSortOrder int
	err := s.db.Model(&models.ProductionTask{}).
		Where("bespoke_order_id = ?", orderID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxSortOrder).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute sort order: %w", err)
	}

	task := models.ProductionTask{
		BespokeOrderID: order.ID,
		Title:          input.Title,
		Description:    input.Description,
		Stage:          input.Stage,
		Status:         models.TaskNotStarted,
		AssignedToID:   input.AssignedToID,
		Priority:       input.Priority,
		SortOrder:      maxSortOrder + 1,
		EstimatedHours: input.EstimatedHours,
		DueDate:        input.DueDate,
		Notes:          input.Notes,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// UpdateTask applies a partial update to a task. Supplied fields are simple
// overwrites, with one rule: when the status moves into COMPLETED the
// completion timestamp is stamped, and when it moves out of COMPLETED the
// timestamp is cleared. No other field touches CompletedAt.
func (s *TaskService) UpdateTask(taskID uint, patch TaskPatch) (*models.ProductionTask, error) {
	var task models.ProductionTask
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &WorkflowError{
				Code:    ErrCodeTaskNotFound,
				Message: "Production task not found",
			}
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Stage != nil {
		updates["stage"] = *patch.Stage
	}
	if patch.AssignedToID != nil {
		updates["assigned_to_id"] = *patch.AssignedToID
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.EstimatedHours != nil {
		updates["estimated_hours"] = *patch.EstimatedHours
	}
	if patch.ActualHours != nil {
		updates["actual_hours"] = *patch.ActualHours
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if patch.Status != nil {
		newStatus := *patch.Status
		if !newStatus.IsValid() {
			return nil, &WorkflowError{
				Code:    ErrCodeInvalidStatus,
				Message: fmt.Sprintf("%q is not a valid task status", string(newStatus)),
			}
		}
		updates["status"] = newStatus

		if newStatus == models.TaskCompleted && task.Status != models.TaskCompleted {
			updates["completed_at"] = time.Now()
		} else if newStatus != models.TaskCompleted && task.Status == models.TaskCompleted {
			updates["completed_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&task).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	// Re-read so the caller sees exactly what was persisted
	if err := s.db.First(&task, taskID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return &task, nil
}

// DeleteTask hard-deletes a task. Role gating (admin only) happens in the
// controller before this is called.
func (s *TaskService) DeleteTask(taskID uint) error {
	var task models.ProductionTask
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &WorkflowError{
				Code:    ErrCodeTaskNotFound,
				Message: "Production task not found",
			}
		}
		return fmt.Errorf("failed to load task: %w", err)
	}

	if err := s.db.Delete(&task).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListTasks returns the canonical task list for an order: sort order
// ascending, creation time ascending as a tiebreaker.
func (s *TaskService) ListTasks(orderID uint) ([]models.ProductionTask, error) {
	var tasks []models.ProductionTask
	err := s.db.Preload("AssignedTo").
		Where("bespoke_order_id = ?", orderID).
		Order("sort_order asc, created_at asc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
