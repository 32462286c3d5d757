package services

import (
	"sync"
)

// MockNotification records one Notify call made against the mock
type MockNotification struct {
	UserID   uint
	Title    string
	Message  string
	Category string
	LinkURL  string
}

// MockNotifier is a mock implementation of Notifier for testing
type MockNotifier struct {
	notifications []MockNotification
	failWith      error
	mu            sync.RWMutex
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SetAsMockForTesting sets this mock as the global notifier instance
func (m *MockNotifier) SetAsMockForTesting() {
	SetNotifier(m)
}

// FailWith makes every subsequent Notify call return err
func (m *MockNotifier) FailWith(err error) {
	m.mu.Lock()
	m.failWith = err
	m.mu.Unlock()
}

// Notify records the call, returning the configured failure if set
func (m *MockNotifier) Notify(userID uint, title, message, category, linkURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, MockNotification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
		LinkURL:  linkURL,
	})

	return m.failWith
}

// Notifications returns a copy of all recorded calls (for test assertions)
func (m *MockNotifier) Notifications() []MockNotification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockNotification, len(m.notifications))
	copy(calls, m.notifications)
	return calls
}

// Count returns the number of recorded calls
func (m *MockNotifier) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notifications)
}

// Clear removes all recorded calls
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	m.notifications = nil
	m.mu.Unlock()
}
