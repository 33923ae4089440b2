package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) CartService {
	return &cartService{cartRepo: cartRepo, bookRepo: bookRepo}
}

// cartFor returns the user's cart, creating an empty one on first use.
func (s *cartService) cartFor(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	return cart, nil
}

// load fills the cart lines and the total at current book prices.
func (s *cartService) load(ctx context.Context, cart *models.Cart) (*models.Cart, error) {

	items, err := s.cartRepo.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to retrieve cart items").WithError(err)
	}

	if items == nil {
		items = []models.CartItem{}
	}

	cart.Items = items
	cart.Total = cart.ComputeTotal()

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.load(ctx, cart)
}

// AddItem increments an existing line or creates it. Stock is not checked
// here; checkout enforces it.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if quantity < 1 {
		return nil, errors.FieldError("quantity", "must be at least 1")
	}

	exists, err := s.bookRepo.BookExists(ctx, req.BookID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch book").WithError(err)
	}
	if !exists {
		return nil, errors.NotFoundError("Book not found")
	}

	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddCartItem(ctx, cart.ID, req.BookID, quantity); err != nil {
		switch {
		case repository.IsForeignKeyViolation(err):
			return nil, errors.NotFoundError("Book not found").WithError(err)
		case repository.IsNumericOutOfRange(err):
			return nil, errors.FieldError("quantity", "is too large").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.load(ctx, cart)
}

// UpdateQuantity sets the quantity of an existing line; zero removes it.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	if req.Quantity < 0 {
		return nil, errors.FieldError("quantity", "cannot be negative")
	}

	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Quantity == 0 {
		err = s.cartRepo.RemoveCartItem(ctx, cart.ID, req.BookID)
	} else {
		err = s.cartRepo.SetCartItemQuantity(ctx, cart.ID, req.BookID, req.Quantity)
	}

	if err != nil {
		switch {
		case stdErrors.Is(err, sql.ErrNoRows):
			return nil, errors.NotFoundError("Item not found in the cart").WithError(err)
		case repository.IsNumericOutOfRange(err):
			return nil, errors.FieldError("quantity", "is too large").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.load(ctx, cart)
}

// RemoveItem is a no-op when the book is not in the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {

	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveCartItem(ctx, cart.ID, req.BookID); err != nil {
		return nil, errors.DatabaseError("Failed to remove item from cart").WithError(err)
	}

	return s.load(ctx, cart)
}
