package repository_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewNotificationRepo(db)
	ctx := t.Context()

	t.Run("CreateNotification", func(t *testing.T) {
		insert := regexp.QuoteMeta(`INSERT INTO notifications (id, type, recipient, subject, content, status, error_message, metadata, created_at, updated_at)`)
		notification := &models.Notification{
			ID:        uuid.New(),
			Type:      models.NotificationTypeEmail,
			Recipient: "reader@example.com",
			Subject:   "Your order",
			Content:   "Thanks",
			Status:    models.StatusPending,
			Metadata:  json.RawMessage(`{"event":"order.placed"}`),
		}

		t.Run("Success", func(t *testing.T) {
			now := time.Now()

			mock.ExpectQuery(insert).
				WithArgs(notification.ID, "email", "reader@example.com", "Your order", "Thanks", "pending", "", []byte(`{"event":"order.placed"}`)).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			require.NoError(t, repo.CreateNotification(ctx, notification))
			assert.WithinDuration(t, now, notification.CreatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Database Error", func(t *testing.T) {
			mock.ExpectQuery(insert).WillReturnError(errors.New("disk full"))

			err := repo.CreateNotification(ctx, notification)

			assert.ErrorContains(t, err, "failed to create notification")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateNotificationStatus", func(t *testing.T) {
		update := regexp.QuoteMeta(`UPDATE notifications SET status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`)

		t.Run("Success", func(t *testing.T) {
			id := uuid.New()
			mock.ExpectExec(update).WithArgs("sent", "", id).WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.UpdateNotificationStatus(ctx, id, models.StatusSent, ""))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			id := uuid.New()
			mock.ExpectExec(update).WithArgs("failed", "boom", id).WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.UpdateNotificationStatus(ctx, id, models.StatusFailed, "boom")

			assert.ErrorContains(t, err, "notification not found")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
