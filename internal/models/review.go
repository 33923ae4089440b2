package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book"`
	UserID    uuid.UUID `json:"-"`
	User      *UserInfo `json:"user,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// RatingSummary is the aggregate of all ratings for one book.
type RatingSummary struct {
	Count int64
	Sum   int64
}

// Average returns the mean rating, or 0 when the book has no reviews.
func (s RatingSummary) Average() float64 {
	if s.Count == 0 {
		return 0
	}

	return float64(s.Sum) / float64(s.Count)
}
