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

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: utils.NewValidator()}
}

// CreateReview godoc
//	@Summary		Review a book
//	@Description	One review per user and book. A second review is rejected; use the update endpoint instead.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			book_id	path		int							true	"Book ID"
//	@Param			review	body		models.CreateReviewRequest	true	"Rating (1-5) and comment"
//	@Success		201		{object}	models.Review
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or duplicate review"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Book not found"
//	@Security		BearerAuth
//	@Router			/books/{book_id}/reviews [post]
func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		bookID, err := utils.ParseInt64ID(r, "book_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), bookID, claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to create review", slog.Int64("bookId", bookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review created", slog.Int64("bookId", bookID), slog.Int64("reviewId", review.ID))
		response.Success(w, http.StatusCreated, review)
	}
}

// ListReviews godoc
//	@Summary	List a book's reviews
//	@Tags		Reviews
//	@Produce	json
//	@Param		book_id	path		int	true	"Book ID"
//	@Success	200		{array}		models.Review
//	@Failure	404		{object}	response.ErrorResponse	"Book not found"
//	@Security	BearerAuth
//	@Router		/books/{book_id}/reviews [get]
func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		bookID, err := utils.ParseInt64ID(r, "book_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		reviews, err := h.reviewService.ListReviews(r.Context(), bookID)
		if err != nil {
			logger.Warn("Failed to list reviews", slog.Int64("bookId", bookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

// GetReview godoc
//	@Summary	Get a review
//	@Tags		Reviews
//	@Produce	json
//	@Param		book_id	path		int	true	"Book ID"
//	@Param		id		path		int	true	"Review ID"
//	@Success	200		{object}	models.Review
//	@Failure	404		{object}	response.ErrorResponse	"Review not found"
//	@Security	BearerAuth
//	@Router		/books/{book_id}/reviews/{id} [get]
func (h *ReviewHandler) GetReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		bookID, err := utils.ParseInt64ID(r, "book_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		review, err := h.reviewService.GetReview(r.Context(), bookID, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

// UpdateReview godoc
//	@Summary	Update your review
//	@Tags		Reviews
//	@Accept		json
//	@Produce	json
//	@Param		book_id	path		int							true	"Book ID"
//	@Param		id		path		int							true	"Review ID"
//	@Param		review	body		models.UpdateReviewRequest	true	"Fields to change"
//	@Success	200		{object}	models.Review
//	@Failure	403		{object}	response.ErrorResponse	"Not the review owner"
//	@Failure	404		{object}	response.ErrorResponse	"Review not found"
//	@Security	BearerAuth
//	@Router		/books/{book_id}/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		bookID, err := utils.ParseInt64ID(r, "book_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.UpdateReview(r.Context(), bookID, id, claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to update review", slog.Int64("reviewId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

// DeleteReview godoc
//	@Summary	Delete your review
//	@Tags		Reviews
//	@Param		book_id	path	int	true	"Book ID"
//	@Param		id		path	int	true	"Review ID"
//	@Success	204
//	@Failure	403	{object}	response.ErrorResponse	"Not the review owner"
//	@Failure	404	{object}	response.ErrorResponse	"Review not found"
//	@Security	BearerAuth
//	@Router		/books/{book_id}/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		bookID, err := utils.ParseInt64ID(r, "book_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.reviewService.DeleteReview(r.Context(), bookID, id, claims.UserID); err != nil {
			logger.Warn("Failed to delete review", slog.Int64("reviewId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Review deleted", slog.Int64("reviewId", id))
		response.NoContent(w)
	}
}
