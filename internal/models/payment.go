package models

import "github.com/google/uuid"

type PaymentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type PaymentResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
