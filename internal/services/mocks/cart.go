package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func NewCartService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartService {
	m := &CartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*models.Cart)
	return r0, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	r0, _ := args.Get(0).(*models.Cart)
	return r0, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	r0, _ := args.Get(0).(*models.Cart)
	return r0, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	r0, _ := args.Get(0).(*models.Cart)
	return r0, args.Error(1)
}

type WishlistService struct {
	mock.Mock
}

func NewWishlistService(t interface {
	mock.TestingT
	Cleanup(func())
}) *WishlistService {
	m := &WishlistService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *WishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*models.Wishlist)
	return r0, args.Error(1)
}

func (m *WishlistService) AddBook(ctx context.Context, userID uuid.UUID, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *WishlistService) RemoveBook(ctx context.Context, userID uuid.UUID, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *WishlistService) ReplaceBooks(ctx context.Context, userID uuid.UUID, bookIDs []int64) (*models.Wishlist, error) {
	args := m.Called(ctx, userID, bookIDs)
	r0, _ := args.Get(0).(*models.Wishlist)
	return r0, args.Error(1)
}
