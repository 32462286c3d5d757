package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/models"
)

func createTaskControllerFixtures(t *testing.T, db *gorm.DB) (*models.BespokeOrder, *models.User, *models.User, *models.User) {
	t.Helper()

	admin := models.User{Auth0ID: "auth0|task-admin", Name: "Atelier Admin", Email: "admin@amara.test", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	staff := models.User{Auth0ID: "auth0|task-staff", Name: "Atelier Staff", Email: "staff@amara.test", Role: models.RoleStaff}
	require.NoError(t, db.Create(&staff).Error)
	customer := models.User{Auth0ID: "auth0|task-customer", Name: "Helena Okafor", Email: "helena@amara.test", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	order := models.BespokeOrder{
		OrderNumber:       "BSP-1001",
		CustomerName:      "Helena Okafor",
		CustomerEmail:     "helena@amara.test",
		DesignDescription: "Three-piece wool suit",
		Status:            models.StatusInProduction,
	}
	require.NoError(t, db.Create(&order).Error)

	return &order, &admin, &staff, &customer
}

func TestCreateProductionTask(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)
	order, _, staff, customer := createTaskControllerFixtures(t, db)

	tests := []struct {
		name           string
		auth0ID        string
		path           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Staff create a task",
			auth0ID:        staff.Auth0ID,
			path:           fmt.Sprintf("/bespoke-orders/%d/tasks", order.ID),
			body:           map[string]interface{}{"title": "Cut jacket panels", "stage": "cutting"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing title is rejected",
			auth0ID:        staff.Auth0ID,
			path:           fmt.Sprintf("/bespoke-orders/%d/tasks", order.ID),
			body:           map[string]interface{}{"stage": "cutting"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Unknown order returns not found",
			auth0ID:        staff.Auth0ID,
			path:           "/bespoke-orders/9999/tasks",
			body:           map[string]interface{}{"title": "Cut jacket panels"},
			expectedStatus: http.StatusNotFound,
			expectedError:  "ORDER_NOT_FOUND",
		},
		{
			name:           "Customers cannot create tasks",
			auth0ID:        customer.Auth0ID,
			path:           fmt.Sprintf("/bespoke-orders/%d/tasks", order.ID),
			body:           map[string]interface{}{"title": "Cut jacket panels"},
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/bespoke-orders/:id/tasks", mockAuthMiddleware(tt.auth0ID, "", "mock-token"), CreateProductionTask)

			w := orderRequest(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, "Response body: %s", w.Body.String())

			response := decodeEnvelope(t, w)
			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			data := response["data"].(map[string]interface{})
			assert.Equal(t, "Cut jacket panels", data["title"])
			assert.Equal(t, string(models.TaskNotStarted), data["status"])
			assert.Equal(t, float64(1), data["sort_order"])
		})
	}
}

func TestListProductionTasks(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)
	order, _, staff, _ := createTaskControllerFixtures(t, db)

	for i, title := range []string{"Cut panels", "Sew lining"} {
		task := models.ProductionTask{BespokeOrderID: order.ID, Title: title, Status: models.TaskNotStarted, SortOrder: i + 1}
		require.NoError(t, db.Create(&task).Error)
	}

	router := setupTestRouter()
	router.GET("/bespoke-orders/:id/tasks", mockAuthMiddleware(staff.Auth0ID, "", "mock-token"), ListProductionTasks)

	w := orderRequest(t, router, http.MethodGet, fmt.Sprintf("/bespoke-orders/%d/tasks", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, tasks, 2)
	assert.Equal(t, "Cut panels", tasks[0].(map[string]interface{})["title"])
	assert.Equal(t, "Sew lining", tasks[1].(map[string]interface{})["title"])
}

func TestUpdateProductionTask(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)
	order, _, staff, customer := createTaskControllerFixtures(t, db)

	task := models.ProductionTask{BespokeOrderID: order.ID, Title: "Sew lining", Status: models.TaskNotStarted, SortOrder: 1}
	require.NoError(t, db.Create(&task).Error)

	t.Run("Staff mark a task complete", func(t *testing.T) {
		router := setupTestRouter()
		router.PATCH("/production-tasks/:id", mockAuthMiddleware(staff.Auth0ID, "", "mock-token"), UpdateProductionTask)

		w := orderRequest(t, router, http.MethodPatch, fmt.Sprintf("/production-tasks/%d", task.ID), map[string]interface{}{"status": "COMPLETED"})
		require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

		data := decodeEnvelope(t, w)["data"].(map[string]interface{})
		assert.Equal(t, string(models.TaskCompleted), data["status"])
		assert.NotNil(t, data["completed_at"])
	})

	t.Run("Invalid status is rejected", func(t *testing.T) {
		router := setupTestRouter()
		router.PATCH("/production-tasks/:id", mockAuthMiddleware(staff.Auth0ID, "", "mock-token"), UpdateProductionTask)

		w := orderRequest(t, router, http.MethodPatch, fmt.Sprintf("/production-tasks/%d", task.ID), map[string]interface{}{"status": "PAUSED"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		errorData := decodeEnvelope(t, w)["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_STATUS", errorData["code"])
	})

	t.Run("Unknown task returns not found", func(t *testing.T) {
		router := setupTestRouter()
		router.PATCH("/production-tasks/:id", mockAuthMiddleware(staff.Auth0ID, "", "mock-token"), UpdateProductionTask)

		w := orderRequest(t, router, http.MethodPatch, "/production-tasks/9999", map[string]interface{}{"title": "Anything"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		errorData := decodeEnvelope(t, w)["error"].(map[string]interface{})
		assert.Equal(t, "TASK_NOT_FOUND", errorData["code"])
	})

	t.Run("Customers cannot update tasks", func(t *testing.T) {
		router := setupTestRouter()
		router.PATCH("/production-tasks/:id", mockAuthMiddleware(customer.Auth0ID, "", "mock-token"), UpdateProductionTask)

		w := orderRequest(t, router, http.MethodPatch, fmt.Sprintf("/production-tasks/%d", task.ID), map[string]interface{}{"title": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteProductionTask(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)
	order, admin, staff, _ := createTaskControllerFixtures(t, db)

	task := models.ProductionTask{BespokeOrderID: order.ID, Title: "Cut panels", Status: models.TaskNotStarted, SortOrder: 1}
	require.NoError(t, db.Create(&task).Error)

	t.Run("Staff without admin role are rejected", func(t *testing.T) {
		router := setupTestRouter()
		router.DELETE("/production-tasks/:id", mockAuthMiddleware(staff.Auth0ID, "", "mock-token"), DeleteProductionTask)

		w := orderRequest(t, router, http.MethodDelete, fmt.Sprintf("/production-tasks/%d", task.ID), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		errorData := decodeEnvelope(t, w)["error"].(map[string]interface{})
		assert.Equal(t, "FORBIDDEN", errorData["code"])

		// The task is untouched
		var count int64
		db.Model(&models.ProductionTask{}).Where("id = ?", task.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Admin deletes the task", func(t *testing.T) {
		router := setupTestRouter()
		router.DELETE("/production-tasks/:id", mockAuthMiddleware(admin.Auth0ID, "", "mock-token"), DeleteProductionTask)

		w := orderRequest(t, router, http.MethodDelete, fmt.Sprintf("/production-tasks/%d", task.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

		var count int64
		db.Model(&models.ProductionTask{}).Where("id = ?", task.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Deleting an unknown task returns not found", func(t *testing.T) {
		router := setupTestRouter()
		router.DELETE("/production-tasks/:id", mockAuthMiddleware(admin.Auth0ID, "", "mock-token"), DeleteProductionTask)

		w := orderRequest(t, router, http.MethodDelete, fmt.Sprintf("/production-tasks/%d", task.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
