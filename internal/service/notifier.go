package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// Notifier records in-app notifications.
type Notifier interface {
	Emit(ctx context.Context, recipientID, message string, typ model.NotificationType, relatedItem string) (*model.Notification, error)
}

// NotificationEmitter persists one unread notification per Emit call.
type NotificationEmitter struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationEmitter(repo repository.NotificationRepository) *NotificationEmitter {
	return &NotificationEmitter{repo: repo, now: time.Now}
}

func (e *NotificationEmitter) Emit(ctx context.Context, recipientID, message string, typ model.NotificationType, relatedItem string) (*model.Notification, error) {
	if recipientID == "" {
		return nil, apperr.Validation("notification recipient is required")
	}
	n := &model.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Message:     message,
		Type:        typ,
		RelatedItem: relatedItem,
		IsRead:      false,
		CreatedAt:   e.now().UTC(),
	}
	out, err := e.repo.Create(ctx, n)
	if err != nil {
		if apperr.KindOf(err) == "" {
			err = apperr.Persistence("failed to create notification", err)
		}
		return nil, err
	}
	return out, nil
}
