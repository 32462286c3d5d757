package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/middleware"
	"github.com/amara-couture/atelier-api/models"
	"github.com/amara-couture/atelier-api/services"
)

// currentUser resolves the authenticated caller's profile row from the
// Auth0 subject claim. On failure it writes the error envelope and returns
// nil; handlers should just return when that happens.
func currentUser(c *gin.Context) *models.User {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil
	}

	return &user
}

// requireStaffTier resolves the caller and rejects non-staff roles.
// Returns nil after writing the error envelope if the caller may not
// mutate orders or tasks.
func requireStaffTier(c *gin.Context) *models.User {
	user := currentUser(c)
	if user == nil {
		return nil
	}

	if !user.IsStaffTier() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Staff role required for this operation",
			},
		})
		return nil
	}

	return user
}

// respondWorkflowError maps a service-layer workflow error onto the HTTP
// envelope. Unknown errors become a generic database error.
func respondWorkflowError(c *gin.Context, err error) {
	if wfErr, ok := services.IsWorkflowError(err); ok {
		status := http.StatusInternalServerError
		switch wfErr.Code {
		case services.ErrCodeOrderNotFound, services.ErrCodeTaskNotFound:
			status = http.StatusNotFound
		case services.ErrCodeInvalidStatus:
			status = http.StatusBadRequest
		case services.ErrCodeNoOpTransition:
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    wfErr.Code,
				"message": wfErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Operation failed, please try again",
		},
	})
}
