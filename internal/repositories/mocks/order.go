package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Order)
	return r0, args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)
	r0, _ := args.Get(0).([]models.Order)
	return r0, args.Int(1), args.Error(2)
}

type CheckoutStore struct {
	mock.Mock
}

func NewCheckoutStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutStore {
	m := &CheckoutStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CheckoutStore) LockCartLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	args := m.Called(ctx, cartID)
	r0, _ := args.Get(0).([]models.CartLine)
	return r0, args.Error(1)
}

func (m *CheckoutStore) InsertOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *CheckoutStore) InsertOrderItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CheckoutStore) DecrementStock(ctx context.Context, bookID int64, quantity int) error {
	args := m.Called(ctx, bookID, quantity)
	return args.Error(0)
}

func (m *CheckoutStore) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// Transactor runs the callback against Store unless the expectation returns
// an error, which stands in for a failed begin or commit.
type Transactor struct {
	mock.Mock
	Store *CheckoutStore
}

func NewTransactor(t interface {
	mock.TestingT
	Cleanup(func())
}, store *CheckoutStore) *Transactor {
	m := &Transactor{Store: store}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Transactor) WithinCheckoutTx(ctx context.Context, fn func(ctx context.Context, store repository.CheckoutStore) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(ctx, m.Store)
}
