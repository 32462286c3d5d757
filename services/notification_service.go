package services

import (
	"fmt"

	"github.com/amara-couture/atelier-api/models"
	"gorm.io/gorm"
)

// Notifier is the dispatch boundary for customer notifications. Callers
// treat it as fire-and-forget: idempotency is not required and failures are
// the caller's to swallow.
type Notifier interface {
	Notify(userID uint, title, message, category, linkURL string) error
}

// NotificationService is the database-backed Notifier. Each dispatch
// inserts one notification row for the recipient to read later.
type NotificationService struct {
	db *gorm.DB
}

var notifierInstance Notifier

// InitNotifier initializes the global notifier backed by the given database
func InitNotifier(db *gorm.DB) Notifier {
	notifierInstance = &NotificationService{db: db}
	return notifierInstance
}

// GetNotifier returns the initialized notifier instance
func GetNotifier() Notifier {
	return notifierInstance
}

// SetNotifier sets the notifier instance (primarily for testing)
func SetNotifier(n Notifier) {
	notifierInstance = n
}

// Notify stores a notification for the given user
func (s *NotificationService) Notify(userID uint, title, message, category, linkURL string) error {
	notification := models.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
		LinkURL:  linkURL,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}
