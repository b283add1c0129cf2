package dto

import (
	"time"

	"github.com/hirearena/contest-api/internal/models"
)

// NotificationCreateRequest publishes a lifecycle event to a user.
type NotificationCreateRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid4"`
	ContestID     string `json:"contest_id" validate:"omitempty,uuid4"`
	ApplicationID string `json:"application_id" validate:"omitempty,uuid4"`
	Type          string `json:"type" validate:"required,max=64"`
	Message       string `json:"message" validate:"required,max=2000"`
}

// NotificationResponse serializes a notification row.
type NotificationResponse struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"user_id"`
	ContestID     string    `json:"contest_id,omitempty"`
	ApplicationID string    `json:"application_id,omitempty"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewNotificationResponseSlice converts notification models into DTOs.
func NewNotificationResponseSlice(items []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewNotificationResponse(item))
	}
	return responses
}

// NewNotificationResponse converts a notification model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            model.ID,
		UserID:        model.UserID,
		ContestID:     model.ContestID,
		ApplicationID: model.ApplicationID,
		Type:          model.Type,
		Message:       model.Message,
		Read:          model.Read,
		CreatedAt:     model.CreatedAt,
	}
}
