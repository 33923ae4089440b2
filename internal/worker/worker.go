// Package worker consumes domain events from Kafka and turns them into
// emails.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/aaravmahajanofficial/bookstore-api/internal/events"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/segmentio/kafka-go"
)

const handleTimeout = 2 * time.Minute

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Worker struct {
	reader        messageReader
	notifications service.NotificationService
	renderer      *Renderer
}

func New(cfg config.Kafka, notifications service.NotificationService, renderer *Renderer) *Worker {
	return newWorker(kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	}), notifications, renderer)
}

func newWorker(reader messageReader, notifications service.NotificationService, renderer *Renderer) *Worker {
	return &Worker{reader: reader, notifications: notifications, renderer: renderer}
}

// Run consumes until ctx is cancelled. A message that has been fetched is
// always finished and committed, even when shutdown starts mid-send.
func (w *Worker) Run(ctx context.Context) error {

	slog.Info("📬 Notification worker started")

	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Notification worker stopping")
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		handleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), handleTimeout)
		w.Handle(handleCtx, msg)

		// commit either way: the notification service has already retried
		if err := w.reader.CommitMessages(handleCtx, msg); err != nil {
			slog.Error("Failed to commit offset",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.Any("error", err))
		}
		cancel()
	}
}

// Handle renders and sends the email for one message. Failures are logged and
// counted, never returned, so one bad message cannot stall the partition.
func (w *Worker) Handle(ctx context.Context, msg kafka.Message) {

	logger := slog.Default().With(
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
	)

	var event events.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error("Skipping undecodable message", slog.Any("error", err))
		metrics.RecordNotification("unknown", metrics.NotificationSkipped)
		return
	}

	logger = logger.With(slog.String("eventId", event.ID.String()), slog.String("eventType", string(event.Type)))
	ctx = middleware.WithLogger(ctx, logger)

	req, err := w.renderer.Render(event)
	if err != nil {
		if errors.Is(err, ErrUnknownEvent) {
			logger.Warn("Skipping event without a template")
		} else {
			logger.Error("Failed to render email", slog.Any("error", err))
		}
		metrics.RecordNotification(string(event.Type), metrics.NotificationSkipped)
		return
	}

	resp, err := w.notifications.SendEmail(ctx, req)
	if err != nil {
		logger.Error("Failed to deliver notification", slog.Any("error", err))
		metrics.RecordNotification(string(event.Type), metrics.NotificationFailed)
		return
	}

	logger.Info("Notification delivered", slog.String("notificationId", resp.ID.String()))
	metrics.RecordNotification(string(event.Type), metrics.NotificationSent)
}

func (w *Worker) Close() error {
	return w.reader.Close()
}
