package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/services"
	"github.com/amara-couture/atelier-api/utils"
)

// UploadDesignImage handles POST /api/v1/bespoke-orders/:id/design-image -
// attaches a design reference image (PNG) to an order. Allowed for staff
// and for the customer who owns the order. Replacing an image deletes the
// previous object best-effort.
func UploadDesignImage(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	order, ok := loadOrderForViewer(c, db, user)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required (multipart field 'image')",
			},
		})
		return
	}

	imageService := services.GetDesignImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		if uploadErr, isUploadErr := err.(*utils.FileUploadError); isUploadErr {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload design image",
			},
		})
		return
	}

	previousKey := order.DesignImageS3Key
	if err := db.Model(order).Update("design_image_s3_key", imageKey).Error; err != nil {
		// The order row is the source of truth; drop the orphaned upload
		if deleteErr := imageService.DeleteImage(imageKey); deleteErr != nil {
			log.Printf("Failed to clean up orphaned design image %s: %v", imageKey, deleteErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save design image reference",
			},
		})
		return
	}

	if previousKey != nil && *previousKey != imageKey {
		if err := imageService.DeleteImage(*previousKey); err != nil {
			log.Printf("Failed to delete replaced design image %s: %v", *previousKey, err)
		}
	}

	imageURL, err := imageService.GetImageURL(imageKey)
	if err != nil {
		log.Printf("Failed to generate design image URL for %s: %v", imageKey, err)
		imageURL = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order_id":         order.ID,
			"design_image_key": imageKey,
			"design_image_url": imageURL,
		},
	})
}
