package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amara-couture/atelier-api/models"
	"gorm.io/gorm"
)

// WorkflowService drives the bespoke order status lifecycle. Every status
// change goes through AdvanceStatus so that the order row and its audit
// trail can never diverge: the status update and the log append commit in
// one transaction or not at all.
type WorkflowService struct {
	db *gorm.DB
}

// NewWorkflowService creates a workflow service bound to a database handle
func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// AdvanceStatus moves a bespoke order to newStatus on behalf of actor.
//
// The transition graph is deliberately unconstrained: any status other than
// the current one is accepted, including backward moves, as a manual
// correction path for staff. Requesting the current status is rejected with
// NO_OP_TRANSITION so that a double submission cannot produce duplicate
// audit entries.
//
// The status update (plus the actual completion date when the target is
// DELIVERED) and the audit row are written in a single transaction. The
// customer notification is dispatched after commit, best-effort, and never
// affects the result.
func (s *WorkflowService) AdvanceStatus(orderID uint, newStatus models.OrderStatus, note *string, actor *models.User) (*models.BespokeOrder, error) {
	if !newStatus.IsValid() {
		return nil, &WorkflowError{
			Code:    ErrCodeInvalidStatus,
			Message: fmt.Sprintf("%q is not a valid order status", string(newStatus)),
		}
	}

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

	oldStatus := order.Status
	if newStatus == oldStatus {
		return nil, &WorkflowError{
			Code:    ErrCodeNoOpTransition,
			Message: fmt.Sprintf("Order is already in status %s", string(oldStatus)),
		}
	}

	updates := map[string]interface{}{
		"status": newStatus,
	}
	var completedAt *time.Time
	if newStatus == models.StatusDelivered {
		now := time.Now()
		completedAt = &now
		updates["actual_completion_date"] = now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		logEntry := models.BespokeStatusLog{
			BespokeOrderID:  order.ID,
			ChangedByUserID: actor.ID,
			OldStatus:       oldStatus,
			NewStatus:       newStatus,
			Note:            note,
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to advance order status: %w", err)
	}

	order.Status = newStatus
	if completedAt != nil {
		order.ActualCompletionDate = completedAt
	}

	// Best-effort notification, outside the transaction. Failures are
	// logged and discarded; the committed transition stands regardless.
	if order.CustomerID != nil {
		go s.notifyStatusChange(order, newStatus)
	}

	return &order, nil
}

// StatusHistory returns the ordered audit trail for an order, oldest first
func (s *WorkflowService) StatusHistory(orderID uint) ([]models.BespokeStatusLog, error) {
	var entries []models.BespokeStatusLog
	err := s.db.Preload("ChangedBy").
		Where("bespoke_order_id = ?", orderID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	return entries, nil
}

// notifyStatusChange sends the customer a human-readable summary of the new
// status through the notification dispatcher
func (s *WorkflowService) notifyStatusChange(order models.BespokeOrder, newStatus models.OrderStatus) {
	notifier := GetNotifier()
	if notifier == nil {
		return
	}

	title := fmt.Sprintf("Order %s update", order.OrderNumber)
	message := fmt.Sprintf("Your bespoke order %s is now %s.", order.OrderNumber, newStatus.Label())
	linkURL := fmt.Sprintf("/orders/%d", order.ID)

	if err := notifier.Notify(*order.CustomerID, title, message, models.NotificationCategoryOrderStatus, linkURL); err != nil {
		log.Printf("Failed to send status notification for order %s: %v", order.OrderNumber, err)
	}
}
