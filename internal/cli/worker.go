package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/worker"
	"github.com/aaravmahajanofficial/bookstore-api/pkg/sendgrid"
	"github.com/spf13/cobra"
)

type WorkerOptions struct {
	*RootOptions
	MetricsAddr string
}

func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WorkerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume domain events and deliver notification emails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(config.MustLoad(opts.ConfigPath), opts.MetricsAddr)
		},
	}

	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", ":9091", "listen address for /metrics (empty disables it)")

	return cmd
}

func runWorker(cfg *config.Config, metricsAddr string) error {

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		return err
	}
	defer repos.Close()

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	notificationService := service.NewNotificationService(repos.Notification, emailService, cfg.Kafka.MaxRetries)

	renderer, err := worker.NewRenderer()
	if err != nil {
		return err
	}

	w := worker.New(cfg.Kafka, notificationService, renderer)
	defer w.Close()

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", metrics.Handler())
		metricsServer := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

		go func() {
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("❌ Metrics listener stopped", slog.Any("error", err))
			}
		}()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("🚀 Worker is starting...", slog.String("topic", cfg.Kafka.Topic), slog.String("group", cfg.Kafka.GroupID))

	if err := w.Run(ctx); err != nil {
		slog.Error("❌ Worker stopped with error", slog.Any("error", err))
		return err
	}

	slog.Info("✅ Worker shut down gracefully.")
	return nil
}
