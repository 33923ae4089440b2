package service_test

import (
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repoMocks "github.com/aaravmahajanofficial/bookstore-api/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/services/mocks"
	"github.com/aaravmahajanofficial/bookstore-api/pkg/sendgrid"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNotificationTest(t *testing.T, retries uint64) (*repoMocks.NotificationRepository, *mocks.EmailService, service.NotificationService) {
	t.Helper()

	repo := repoMocks.NewNotificationRepository(t)
	email := mocks.NewEmailService(t)

	svc := service.NewNotificationServiceWithBackOff(repo, email, func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, retries)
	})

	return repo, email, svc
}

func TestNotificationService_SendEmail(t *testing.T) {
	req := &models.EmailNotificationRequest{
		To:       "reader@example.com",
		Subject:  "Your order has been placed",
		Content:  "Thanks for shopping with us.",
		Metadata: map[string]string{"event_type": "order.placed"},
	}

	t.Run("Success - First Attempt", func(t *testing.T) {
		// Arrange
		repo, email, svc := setupNotificationTest(t, 3)

		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Recipient == req.To && n.Status == models.StatusPending && string(n.Metadata) == `{"event_type":"order.placed"}`
		})).Return(nil).Once()
		email.On("Send", mock.Anything, req).Return(nil).Once()
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.StatusSent, "").Return(nil).Once()

		// Act
		resp, err := svc.SendEmail(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
		assert.Equal(t, req.To, resp.Recipient)
	})

	t.Run("Success - After Retries", func(t *testing.T) {
		repo, email, svc := setupNotificationTest(t, 3)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, req).Return(errors.New("503 from sendgrid")).Twice()
		email.On("Send", mock.Anything, req).Return(nil).Once()
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.StatusSent, "").Return(nil).Once()

		resp, err := svc.SendEmail(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
		email.AssertNumberOfCalls(t, "Send", 3)
	})

	t.Run("Failure - Retries Exhausted", func(t *testing.T) {
		repo, email, svc := setupNotificationTest(t, 2)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, req).Return(errors.New("503 from sendgrid")).Times(3)
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.StatusFailed, "503 from sendgrid").Return(nil).Once()

		resp, err := svc.SendEmail(t.Context(), req)

		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "failed to send email after 3 attempts")
	})

	t.Run("Failure - Permanent Rejection Not Retried", func(t *testing.T) {
		repo, email, svc := setupNotificationTest(t, 5)
		rejected := &sendgrid.RejectedError{StatusCode: 400, Body: "invalid recipient"}

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, req).Return(rejected).Once()
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.StatusFailed, rejected.Error()).Return(nil).Once()

		_, err := svc.SendEmail(t.Context(), req)

		require.ErrorIs(t, err, rejected)
		assert.Contains(t, err.Error(), "after 1 attempts")
	})

	t.Run("Failure - Record Not Created", func(t *testing.T) {
		repo, email, svc := setupNotificationTest(t, 2)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		_, err := svc.SendEmail(t.Context(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create notification record")
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Status Update After Send", func(t *testing.T) {
		repo, email, svc := setupNotificationTest(t, 0)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, req).Return(nil).Once()
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.StatusSent, "").Return(errors.New("db down")).Once()

		_, err := svc.SendEmail(t.Context(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update notification status")
	})
}
