package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: utils.NewValidator()}
}

// ProcessPayment godoc
//	@Summary		Pay for an order (stub)
//	@Description	Acknowledges the payment without charging anything or changing the order.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentRequest	true	"Order to pay for"
//	@Success		200		{object}	models.PaymentResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/payment [post]
func (h *PaymentHandler) ProcessPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := requireClaims(w, r, logger); !ok {
			return
		}

		var req models.PaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.paymentService.ProcessPayment(r.Context(), &req)
		if err != nil {
			logger.Error("Payment failed", slog.String("orderId", req.OrderID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
