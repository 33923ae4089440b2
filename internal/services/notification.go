package service

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/aaravmahajanofficial/bookstore-api/pkg/sendgrid"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	newBackOff   func() backoff.BackOff
}

// NewNotificationService retries a failed send with exponential backoff, at
// most maxRetries times after the first attempt.
func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService, maxRetries uint64) NotificationService {
	return NewNotificationServiceWithBackOff(repo, emailService, func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(500*time.Millisecond),
			backoff.WithMaxInterval(10*time.Second),
		), maxRetries)
	})
}

func NewNotificationServiceWithBackOff(repo repository.NotificationRepository, emailService sendgrid.EmailService, newBackOff func() backoff.BackOff) NotificationService {
	return &notificationService{repo: repo, emailService: emailService, newBackOff: newBackOff}
}

// SendEmail records the notification, sends it, and stores the final status.
// One row is written per notification however many attempts the send takes.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	var metadataJSON json.RawMessage

	if req.Metadata != nil {
		metadataBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}

		metadataJSON = metadataBytes
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification record: %w", err)
	}

	attempt := 0
	send := func() error {
		attempt++
		err := n.emailService.Send(ctx, req)

		// a 4xx from the provider will not change on retry
		var rejected *sendgrid.RejectedError
		if stdErrors.As(err, &rejected) && !rejected.Temporary() {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("Email send failed, retrying",
			slog.String("notificationId", notification.ID.String()),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err))
	}

	if err := backoff.RetryNotify(send, backoff.WithContext(n.newBackOff(), ctx), notify); err != nil {

		notification.Status = models.StatusFailed
		notification.ErrorMessage = err.Error()

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, notification.ErrorMessage); updateErr != nil {
			logger.Error("Failed to mark notification as failed", slog.String("notificationId", notification.ID.String()), slog.Any("error", updateErr))
		}

		return nil, fmt.Errorf("failed to send email after %d attempts: %w", attempt, err)
	}

	notification.Status = models.StatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Status:    notification.Status,
		Recipient: notification.Recipient,
		CreatedAt: notification.CreatedAt,
	}, nil
}
