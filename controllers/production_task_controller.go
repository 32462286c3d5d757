package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/models"
	"github.com/amara-couture/atelier-api/services"
)

// CreateTaskRequest represents the request body for creating a production task
type CreateTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Stage          string     `json:"stage"`
	AssignedToID   *uint      `json:"assigned_to_id"`
	Priority       int        `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	DueDate        *time.Time `json:"due_date"`
	Notes          string     `json:"notes"`
}

// UpdateTaskRequest represents a partial update; omitted fields are untouched
type UpdateTaskRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Stage          *string            `json:"stage"`
	Status         *models.TaskStatus `json:"status"`
	AssignedToID   *uint              `json:"assigned_to_id"`
	Priority       *int               `json:"priority"`
	EstimatedHours *float64           `json:"estimated_hours"`
	ActualHours    *float64           `json:"actual_hours"`
	DueDate        *time.Time         `json:"due_date"`
	Notes          *string            `json:"notes"`
}

// CreateProductionTask handles POST /api/v1/bespoke-orders/:id/tasks -
// adds a manufacturing task to an order (staff tier only)
func CreateProductionTask(c *gin.Context) {
	user := requireStaffTier(c)
	if user == nil {
		return
	}

	orderID, ok := parseIDParam(c, "ORDER_NOT_FOUND", "Bespoke order not found")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	taskService := services.NewTaskService(config.GetDB())
	task, err := taskService.CreateTask(orderID, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Stage:          req.Stage,
		AssignedToID:   req.AssignedToID,
		Priority:       req.Priority,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    task,
	})
}

// ListProductionTasks handles GET /api/v1/bespoke-orders/:id/tasks -
// the canonical task list for an order (staff tier only)
func ListProductionTasks(c *gin.Context) {
	user := requireStaffTier(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	var order models.BespokeOrder
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Bespoke order not found",
			},
		})
		return
	}

	taskService := services.NewTaskService(db)
	tasks, err := taskService.ListTasks(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list production tasks",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tasks,
	})
}

// UpdateProductionTask handles PATCH /api/v1/production-tasks/:id -
// partial task update (staff tier only)
func UpdateProductionTask(c *gin.Context) {
	user := requireStaffTier(c)
	if user == nil {
		return
	}

	taskID, ok := parseIDParam(c, "TASK_NOT_FOUND", "Production task not found")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	taskService := services.NewTaskService(config.GetDB())
	task, err := taskService.UpdateTask(taskID, services.TaskPatch{
		Title:          req.Title,
		Description:    req.Description,
		Stage:          req.Stage,
		Status:         req.Status,
		AssignedToID:   req.AssignedToID,
		Priority:       req.Priority,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}

// DeleteProductionTask handles DELETE /api/v1/production-tasks/:id -
// hard-deletes a task. Admin role required; staff are rejected.
func DeleteProductionTask(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Admin role required to delete production tasks",
			},
		})
		return
	}

	taskID, ok := parseIDParam(c, "TASK_NOT_FOUND", "Production task not found")
	if !ok {
		return
	}

	taskService := services.NewTaskService(config.GetDB())
	if err := taskService.DeleteTask(taskID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Production task deleted",
	})
}
