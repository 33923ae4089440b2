package models

import "github.com/google/uuid"

type Wishlist struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"-"`
	Books  []Book    `json:"books"`
}

type WishlistBookRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type ReplaceWishlistRequest struct {
	BookIDs []int64 `json:"books" validate:"dive,gt=0"`
}
