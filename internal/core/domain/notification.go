// internal/core/domain/notification.go
package domain

import "time"

// NotificationLevel tells the operator whether an action succeeded
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-facing message about an admin action
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}
