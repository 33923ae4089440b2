package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   uuid.UUID       `json:"order"`
	BookID    int64           `json:"book"`
	BookTitle string          `json:"book_title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress *string         `json:"shipping_address"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CartLine is a cart item joined with the book row it references, as read
// under lock during checkout.
type CartLine struct {
	CartItemID int64
	BookID     int64
	Title      string
	Price      decimal.Decimal
	Stock      int
	Quantity   int
}
