package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID       int64     `json:"id"`
	CartID   uuid.UUID `json:"cart"`
	BookID   int64     `json:"-"`
	Book     *Book     `json:"book"`
	Quantity int       `json:"quantity"`
}

type Cart struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"-"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// ComputeTotal sums live book price times quantity over the cart lines.
func (c *Cart) ComputeTotal() decimal.Decimal {

	total := decimal.Zero

	for _, item := range c.Items {
		if item.Book == nil {
			continue
		}
		total = total.Add(item.Book.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

type AddItemRequest struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	Quantity *int  `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type RemoveItemRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"min=0"`
}
