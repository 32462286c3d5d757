package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/models"
)

// ListNotifications handles GET /api/v1/notifications - the authenticated
// user's notifications, newest first
func ListNotifications(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	var notifications []models.Notification
	if err := db.Where("user_id = ?", user.ID).Order("created_at desc").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list notifications",
			},
		})
		return
	}

	unread := 0
	for _, n := range notifications {
		if n.ReadAt == nil {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"notifications": notifications,
			"unread_count":  unread,
		},
	})
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read -
// stamps the read timestamp on one of the caller's notifications
func MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	db := config.GetDB()
	var notification models.Notification
	if err := db.First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOTIFICATION_NOT_FOUND",
				"message": "Notification not found",
			},
		})
		return
	}

	if notification.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to modify this notification",
			},
		})
		return
	}

	if notification.ReadAt == nil {
		now := time.Now()
		if err := db.Model(&notification).Update("read_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update notification",
				},
			})
			return
		}
		notification.ReadAt = &now
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notification,
	})
}
