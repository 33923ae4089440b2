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

type WishlistHandler struct {
	wishlistService service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, validator: utils.NewValidator()}
}

// GetWishlist godoc
//	@Summary	Get the current user's wishlist
//	@Tags		Wishlist
//	@Produce	json
//	@Success	200	{object}	models.Wishlist
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Security	BearerAuth
//	@Router		/wishlist [get]
func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		wishlist, err := h.wishlistService.GetWishlist(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get wishlist", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

// ReplaceWishlist godoc
//	@Summary	Replace the wishlist's books
//	@Tags		Wishlist
//	@Accept		json
//	@Produce	json
//	@Param		wishlist	body		models.ReplaceWishlistRequest	true	"Complete set of book IDs"
//	@Success	200			{object}	models.Wishlist
//	@Failure	404			{object}	response.ErrorResponse	"Unknown book"
//	@Security	BearerAuth
//	@Router		/wishlist [put]
func (h *WishlistHandler) ReplaceWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		var req models.ReplaceWishlistRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		wishlist, err := h.wishlistService.ReplaceBooks(r.Context(), claims.UserID, req.BookIDs)
		if err != nil {
			logger.Warn("Failed to replace wishlist", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

// AddBook godoc
//	@Summary	Add a book to the wishlist
//	@Tags		Wishlist
//	@Accept		json
//	@Produce	json
//	@Param		book	body		models.WishlistBookRequest	true	"Book to add"
//	@Success	200		{object}	map[string]string
//	@Failure	404		{object}	response.ErrorResponse	"Book not found"
//	@Security	BearerAuth
//	@Router		/wishlist/add [post]
func (h *WishlistHandler) AddBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		var req models.WishlistBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.wishlistService.AddBook(r.Context(), claims.UserID, req.BookID); err != nil {
			logger.Warn("Failed to add book to wishlist", slog.Int64("bookId", req.BookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "book added to wishlist"})
	}
}

// RemoveBook godoc
//	@Summary	Remove a book from the wishlist
//	@Tags		Wishlist
//	@Accept		json
//	@Produce	json
//	@Param		book	body		models.WishlistBookRequest	true	"Book to remove"
//	@Success	200		{object}	map[string]string
//	@Failure	404		{object}	response.ErrorResponse	"Book not found"
//	@Security	BearerAuth
//	@Router		/wishlist/remove [post]
func (h *WishlistHandler) RemoveBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		var req models.WishlistBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.wishlistService.RemoveBook(r.Context(), claims.UserID, req.BookID); err != nil {
			logger.Warn("Failed to remove book from wishlist", slog.Int64("bookId", req.BookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "book removed from wishlist"})
	}
}
