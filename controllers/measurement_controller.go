package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/models"
)

// CreateMeasurementProfileRequest represents the request body for a new
// measurement profile. Measurements are in centimeters.
type CreateMeasurementProfileRequest struct {
	Label        string   `json:"label" binding:"required"`
	Bust         *float64 `json:"bust"`
	Waist        *float64 `json:"waist"`
	Hips         *float64 `json:"hips"`
	Shoulder     *float64 `json:"shoulder"`
	SleeveLength *float64 `json:"sleeve_length"`
	Inseam       *float64 `json:"inseam"`
	Height       *float64 `json:"height"`
	Notes        string   `json:"notes"`
}

// CreateMeasurementProfile handles POST /api/v1/measurement-profiles -
// stores a named measurement set for the authenticated customer
func CreateMeasurementProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req CreateMeasurementProfileRequest
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

	profile := models.MeasurementProfile{
		CustomerID:   user.ID,
		Label:        req.Label,
		Bust:         req.Bust,
		Waist:        req.Waist,
		Hips:         req.Hips,
		Shoulder:     req.Shoulder,
		SleeveLength: req.SleeveLength,
		Inseam:       req.Inseam,
		Height:       req.Height,
		Notes:        req.Notes,
	}

	db := config.GetDB()
	if err := db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create measurement profile",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// ListMeasurementProfiles handles GET /api/v1/measurement-profiles -
// the authenticated customer's own profiles
func ListMeasurementProfiles(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	var profiles []models.MeasurementProfile
	if err := db.Where("customer_id = ?", user.ID).Order("created_at asc").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list measurement profiles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profiles,
	})
}

// GetMeasurementProfile handles GET /api/v1/measurement-profiles/:id -
// readable by the owning customer and by staff (who fit against it)
func GetMeasurementProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	var profile models.MeasurementProfile
	if err := db.First(&profile, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "Measurement profile not found",
			},
		})
		return
	}

	if !user.IsStaffTier() && profile.CustomerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}
