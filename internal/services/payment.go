package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
)

type PaymentService interface {
	ProcessPayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error)
}

type paymentService struct{}

// NewPaymentService returns a stub that acknowledges every payment without
// touching the order or any gateway.
func NewPaymentService() PaymentService {
	return &paymentService{}
}

func (s *paymentService) ProcessPayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {

	middleware.LoggerFromContext(ctx).Info("Payment stub invoked", slog.String("orderId", req.OrderID.String()))

	return &models.PaymentResponse{
		Message: "Payment processed (stub)",
		Status:  "success",
	}, nil
}
