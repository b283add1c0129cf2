package models

import "time"

// Notification is a per-user record of a contest lifecycle event.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;index" json:"user_id"`
	ContestID     string    `gorm:"type:uuid;index" json:"contest_id"`
	ApplicationID string    `gorm:"type:uuid" json:"application_id"`
	Type          string    `gorm:"size:64" json:"type"`
	Message       string    `gorm:"type:text" json:"message"`
	Read          bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Notification types emitted by the application lifecycle.
const (
	NotificationTypeApplicationSubmitted = "application_submitted"
	NotificationTypeApplicationAdvanced  = "application_advanced"
	NotificationTypeApplicationOffered   = "application_offered"
	NotificationTypeApplicationRejected  = "application_rejected"
)
