package models

import "time"

// NotificationType is the severity class of an in-app notification.
type NotificationType string

const (
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
)

// Notification is an in-app message. User-facing ids are UUIDs, but
// system-generated debt reminders use a deterministic composite key
// (person, debt, triggering lastPaymentDate) so repeated reminder passes
// dedup by construction.
type Notification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Date    time.Time        `json:"date"`
	Read    bool             `json:"read"`
	Type    NotificationType `json:"type"`
}
