package models

import "time"

// Notification types mirror the severity of the triggering action.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification is the model for the 'notifications' table
// (warning issued, emergency state applied, application decision, ...).
type Notification struct {
	ID        string    `json:"id" db:"id"`
	MemberID  string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
