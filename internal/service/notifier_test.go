package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	repoMocks "applyapi/internal/repository/mocks"
)

func TestNotificationEmitter_Emit(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("persists unread application notification", func(t *testing.T) {
		repo := new(repoMocks.MockNotificationRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.ID != "" && n.RecipientID == "emp-1" && !n.IsRead &&
				n.Type == model.NotificationApplication && n.RelatedItem == "app-1" && n.CreatedAt.Equal(fixed)
		})).Return(&model.Notification{ID: "n-1"}, nil)

		e := NewNotificationEmitter(repo)
		e.now = func() time.Time { return fixed }

		n, err := e.Emit(ctx, "emp-1", "hello", model.NotificationApplication, "app-1")

		require.NoError(t, err)
		assert.Equal(t, "n-1", n.ID)
		repo.AssertExpectations(t)
	})

	t.Run("raw store error becomes persistence error", func(t *testing.T) {
		repo := new(repoMocks.MockNotificationRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("closed"))

		_, err := NewNotificationEmitter(repo).Emit(ctx, "emp-1", "hello", model.NotificationApplication, "app-1")

		assert.ErrorIs(t, err, apperr.ErrPersistence)
	})

	t.Run("recipient required", func(t *testing.T) {
		repo := new(repoMocks.MockNotificationRepository)

		_, err := NewNotificationEmitter(repo).Emit(ctx, "", "hello", model.NotificationApplication, "")

		assert.ErrorIs(t, err, apperr.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
