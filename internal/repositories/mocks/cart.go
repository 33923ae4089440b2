package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*models.Cart)
	return r0, args.Error(1)
}

func (m *CartRepository) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	r0, _ := args.Get(0).([]models.CartItem)
	return r0, args.Error(1)
}

func (m *CartRepository) AddCartItem(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error {
	args := m.Called(ctx, cartID, bookID, quantity)
	return args.Error(0)
}

func (m *CartRepository) SetCartItemQuantity(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error {
	args := m.Called(ctx, cartID, bookID, quantity)
	return args.Error(0)
}

func (m *CartRepository) RemoveCartItem(ctx context.Context, cartID uuid.UUID, bookID int64) error {
	args := m.Called(ctx, cartID, bookID)
	return args.Error(0)
}

type WishlistRepository struct {
	mock.Mock
}

func NewWishlistRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *WishlistRepository {
	m := &WishlistRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *WishlistRepository) GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*models.Wishlist)
	return r0, args.Error(1)
}

func (m *WishlistRepository) ListWishlistBooks(ctx context.Context, wishlistID uuid.UUID) ([]models.Book, error) {
	args := m.Called(ctx, wishlistID)
	r0, _ := args.Get(0).([]models.Book)
	return r0, args.Error(1)
}

func (m *WishlistRepository) AddWishlistBook(ctx context.Context, wishlistID uuid.UUID, bookID int64) error {
	args := m.Called(ctx, wishlistID, bookID)
	return args.Error(0)
}

func (m *WishlistRepository) RemoveWishlistBook(ctx context.Context, wishlistID uuid.UUID, bookID int64) error {
	args := m.Called(ctx, wishlistID, bookID)
	return args.Error(0)
}

func (m *WishlistRepository) ReplaceWishlistBooks(ctx context.Context, wishlistID uuid.UUID, bookIDs []int64) error {
	args := m.Called(ctx, wishlistID, bookIDs)
	return args.Error(0)
}
