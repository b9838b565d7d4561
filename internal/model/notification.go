package model

import "time"

// NotificationType classifies a notification. This service only writes NotificationApplication.
type NotificationType string

const (
	NotificationApplication NotificationType = "application"
	NotificationJob         NotificationType = "job"
	NotificationSystem      NotificationType = "system"
	NotificationReport      NotificationType = "report"
	NotificationJobApproved NotificationType = "job_approved"
	NotificationJobRejected NotificationType = "job_rejected"
)

// Notification informs a user about an event related to an application.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	RelatedItem string           `json:"related_item,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
