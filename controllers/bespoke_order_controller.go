package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/models"
	"github.com/amara-couture/atelier-api/services"
)

// CreateBespokeOrderRequest represents the request body for a new inquiry
type CreateBespokeOrderRequest struct {
	CustomerName         string  `json:"customer_name" binding:"required"`
	CustomerEmail        string  `json:"customer_email" binding:"required,email"`
	CustomerPhone        string  `json:"customer_phone"`
	DesignDescription    string  `json:"design_description" binding:"required"`
	FabricDetails        string  `json:"fabric_details"`
	EstimatedPrice       float64 `json:"estimated_price"`
	MeasurementProfileID *uint   `json:"measurement_profile_id"`
	CustomerNotes        string  `json:"customer_notes"`
}

// UpdateBespokeOrderRequest represents a partial staff edit of an order's
// commercial and production fields. Status is intentionally absent: status
// changes only go through the workflow endpoint.
type UpdateBespokeOrderRequest struct {
	CustomerName            *string    `json:"customer_name"`
	CustomerPhone           *string    `json:"customer_phone"`
	DesignDescription       *string    `json:"design_description"`
	FabricDetails           *string    `json:"fabric_details"`
	EstimatedPrice          *float64   `json:"estimated_price"`
	FinalPrice              *float64   `json:"final_price"`
	DepositAmount           *float64   `json:"deposit_amount"`
	DepositPaid             *bool      `json:"deposit_paid"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
	MeasurementProfileID    *uint      `json:"measurement_profile_id"`
	InternalNotes           *string    `json:"internal_notes"`
}

// AdvanceStatusRequest represents the request body for a status transition
type AdvanceStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   *string            `json:"note"`
}

// CreateBespokeOrder handles POST /api/v1/bespoke-orders - records a new
// bespoke inquiry. A customer's own orders are linked to their account.
func CreateBespokeOrder(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req CreateBespokeOrderRequest
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

	db := config.GetDB()

	order := models.BespokeOrder{
		OrderNumber:          nextOrderNumber(db),
		CustomerName:         req.CustomerName,
		CustomerEmail:        req.CustomerEmail,
		CustomerPhone:        req.CustomerPhone,
		DesignDescription:    req.DesignDescription,
		FabricDetails:        req.FabricDetails,
		EstimatedPrice:       req.EstimatedPrice,
		MeasurementProfileID: req.MeasurementProfileID,
		CustomerNotes:        req.CustomerNotes,
		Status:               models.StatusInquiry,
	}
	if user.Role == models.RoleCustomer {
		order.CustomerID = &user.ID
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create bespoke order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListBespokeOrders handles GET /api/v1/bespoke-orders - staff see every
// order (optionally filtered by status) with a count-by-status summary;
// customers see only their own.
func ListBespokeOrders(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	query := db.Preload("Customer").Order("created_at desc")

	if user.IsStaffTier() {
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
	} else {
		query = query.Where("customer_id = ?", user.ID)
	}

	var orders []models.BespokeOrder
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list bespoke orders",
			},
		})
		return
	}

	// Customers never see staff-only notes
	if !user.IsStaffTier() {
		for i := range orders {
			orders[i].InternalNotes = ""
		}
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orders":         orders,
			"count":          len(orders),
			"status_summary": summary,
		},
	})
}

// GetBespokeOrder handles GET /api/v1/bespoke-orders/:id - order detail
// with tasks and, when present, a presigned design image URL
func GetBespokeOrder(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	order, ok := loadOrderForViewer(c, db, user)
	if !ok {
		return
	}

	taskService := services.NewTaskService(db)
	tasks, err := taskService.ListTasks(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load production tasks",
			},
		})
		return
	}
	order.Tasks = tasks

	if order.DesignImageS3Key != nil {
		if imageService := services.GetDesignImageService(); imageService != nil {
			if url, err := imageService.GetImageURL(*order.DesignImageS3Key); err == nil && url != "" {
				order.DesignImageURL = &url
			}
		}
	}

	if !user.IsStaffTier() {
		order.InternalNotes = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateBespokeOrder handles PATCH /api/v1/bespoke-orders/:id - staff edit
// of commercial and production fields
func UpdateBespokeOrder(c *gin.Context) {
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

	var req UpdateBespokeOrderRequest
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

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.DesignDescription != nil {
		updates["design_description"] = *req.DesignDescription
	}
	if req.FabricDetails != nil {
		updates["fabric_details"] = *req.FabricDetails
	}
	if req.EstimatedPrice != nil {
		updates["estimated_price"] = *req.EstimatedPrice
	}
	if req.FinalPrice != nil {
		updates["final_price"] = *req.FinalPrice
	}
	if req.DepositAmount != nil {
		updates["deposit_amount"] = *req.DepositAmount
	}
	if req.DepositPaid != nil {
		updates["deposit_paid"] = *req.DepositPaid
	}
	if req.EstimatedCompletionDate != nil {
		updates["estimated_completion_date"] = *req.EstimatedCompletionDate
	}
	if req.MeasurementProfileID != nil {
		updates["measurement_profile_id"] = *req.MeasurementProfileID
	}
	if req.InternalNotes != nil {
		updates["internal_notes"] = *req.InternalNotes
	}

	if len(updates) > 0 {
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update bespoke order",
				},
			})
			return
		}
	}

	if err := db.First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AdvanceOrderStatus handles POST /api/v1/bespoke-orders/:id/status -
// moves an order through the workflow (staff tier only)
func AdvanceOrderStatus(c *gin.Context) {
	user := requireStaffTier(c)
	if user == nil {
		return
	}

	var req AdvanceStatusRequest
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

	orderID, ok := parseIDParam(c, "ORDER_NOT_FOUND", "Bespoke order not found")
	if !ok {
		return
	}

	workflow := services.NewWorkflowService(config.GetDB())
	order, err := workflow.AdvanceStatus(orderID, req.Status, req.Note, user)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderStatusLog handles GET /api/v1/bespoke-orders/:id/status-log -
// the ordered audit trail of status transitions (staff tier only)
func GetOrderStatusLog(c *gin.Context) {
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

	workflow := services.NewWorkflowService(db)
	entries, err := workflow.StatusHistory(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load status history",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// GetOrderStatusOptions handles GET /api/v1/bespoke-orders/:id/status-options -
// the candidate target statuses the admin UI offers for an order
func GetOrderStatusOptions(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"current_status": order.Status,
			"options":        models.StatusOptions(order.Status),
		},
	})
}

// loadOrderForViewer loads an order and enforces read access: staff see
// everything, customers only their own orders. Writes the error envelope
// and returns ok=false on failure.
func loadOrderForViewer(c *gin.Context, db *gorm.DB, user *models.User) (*models.BespokeOrder, bool) {
	var order models.BespokeOrder
	if err := db.Preload("Customer").Preload("MeasurementProfile").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Bespoke order not found",
			},
		})
		return nil, false
	}

	if !user.IsStaffTier() {
		if order.CustomerID == nil || *order.CustomerID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to view this order",
				},
			})
			return nil, false
		}
	}

	return &order, true
}

// parseIDParam parses the :id route parameter. Writes a not-found envelope
// with the given code and returns ok=false when it is not a positive
// integer.
func parseIDParam(c *gin.Context, errCode, errMessage string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    errCode,
				"message": errMessage,
			},
		})
		return 0, false
	}
	return uint(id), true
}

// nextOrderNumber generates the next human-facing order number. Numbers
// start at BSP-1001 and count every order ever created, including
// soft-deleted rows.
func nextOrderNumber(db *gorm.DB) string {
	var count int64
	db.Unscoped().Model(&models.BespokeOrder{}).Count(&count)
	return fmt.Sprintf("BSP-%d", 1001+count)
}
