package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/events"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	userRepo   repository.UserRepository
	transactor repository.Transactor
	publisher  events.Publisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	transactor repository.Transactor,
	publisher events.Publisher,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		userRepo:   userRepo,
		transactor: transactor,
		publisher:  publisher,
	}
}

// PlaceOrder turns the user's cart into an order. Stock is re-checked under
// row locks and the order, its items, the stock decrement and the cart clear
// commit together or not at all.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		metrics.RecordCheckout(metrics.CheckoutError)
		return nil, errors.DatabaseError("Failed to load profile").WithError(err)
	}

	var address string
	if profile != nil {
		address = strings.TrimSpace(profile.Address)
	}

	if address == "" {
		metrics.RecordCheckout(metrics.CheckoutNoAddress)
		return nil, errors.ValidationError("Add shipping address to profile")
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		metrics.RecordCheckout(metrics.CheckoutError)
		return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: &address,
	}

	err = s.transactor.WithinCheckoutTx(ctx, func(ctx context.Context, store repository.CheckoutStore) error {

		lines, err := store.LockCartLines(ctx, cart.ID)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			return errors.ValidationError("Cannot create order with empty cart")
		}

		total := decimal.Zero

		for _, line := range lines {
			if line.Stock < line.Quantity {
				return errors.OutOfStockError(fmt.Sprintf("Insufficient stock for %q", line.Title)).
					WithDetail(fmt.Sprintf("requested %d, available %d", line.Quantity, line.Stock))
			}
			total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.TotalAmount = total
		order.Items = make([]models.OrderItem, 0, len(lines))

		if err := store.InsertOrder(ctx, order); err != nil {
			return err
		}

		for _, line := range lines {

			item := models.OrderItem{
				OrderID:   order.ID,
				BookID:    line.BookID,
				BookTitle: line.Title,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}

			if err := store.InsertOrderItem(ctx, &item); err != nil {
				return err
			}

			if err := store.DecrementStock(ctx, line.BookID, line.Quantity); err != nil {
				if stdErrors.Is(err, repository.ErrInsufficientStock) {
					return errors.OutOfStockError(fmt.Sprintf("Insufficient stock for %q", line.Title)).WithError(err)
				}
				return err
			}

			order.Items = append(order.Items, item)
		}

		return store.ClearCart(ctx, cart.ID)
	})

	if err != nil {
		return nil, checkoutError(err)
	}

	metrics.RecordCheckout(metrics.CheckoutPlaced)
	logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("total", order.TotalAmount.StringFixed(2)))

	s.publishOrderPlaced(ctx, order, profile.User)

	return order, nil
}

func checkoutError(err error) error {

	if appErr, ok := errors.IsAppError(err); ok {
		switch appErr.Code {
		case errors.ErrCodeOutOfStock:
			metrics.RecordCheckout(metrics.CheckoutOutOfStock)
		case errors.ErrCodeValidation:
			metrics.RecordCheckout(metrics.CheckoutEmptyCart)
		default:
			metrics.RecordCheckout(metrics.CheckoutError)
		}
		return appErr
	}

	if repository.IsNumericOutOfRange(err) {
		metrics.RecordCheckout(metrics.CheckoutError)
		return errors.ValidationError("Order total exceeds the maximum allowed").WithError(err)
	}

	if repository.IsSerializationFailure(err) {
		metrics.RecordCheckout(metrics.CheckoutConflict)
		return errors.ConflictError("Checkout conflicted with a concurrent update, please retry").WithError(err)
	}

	metrics.RecordCheckout(metrics.CheckoutError)
	return errors.DatabaseError("Failed to place order").WithError(err)
}

// publishOrderPlaced runs after commit; a failure is logged and counted but
// never undoes the order.
func (s *orderService) publishOrderPlaced(ctx context.Context, order *models.Order, user *models.UserInfo) {

	logger := middleware.LoggerFromContext(ctx)

	payload := events.OrderPlacedPayload{
		OrderID:         order.ID,
		UserID:          order.UserID,
		Total:           order.TotalAmount,
		ShippingAddress: *order.ShippingAddress,
		Items:           make([]events.OrderLine, 0, len(order.Items)),
	}

	if user != nil {
		payload.Email = user.Email
		payload.Username = user.Username
	}

	for _, item := range order.Items {
		payload.Items = append(payload.Items, events.OrderLine{Title: item.BookTitle, Quantity: item.Quantity, Price: item.Price})
	}

	event, err := events.New(events.OrderPlaced, payload)
	if err == nil {
		err = s.publisher.Publish(ctx, order.UserID.String(), event)
	}

	if err != nil {
		logger.Error("Failed to publish order placed event", slog.String("orderId", order.ID.String()), slog.Any("error", err))
		metrics.RecordPublishFailure(string(events.OrderPlaced))
	}
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != userID {
		return nil, errors.ForbiddenError("You don't have permission to access this order")
	}

	return order, nil
}

// ListOrders returns one page of the user's orders, newest first, and the
// total number of orders.
func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {

	page = min(max(page, utils.DefaultPage), utils.MaxPage)
	if size < 1 || size > utils.MaxPageSize {
		size = utils.DefaultPageSize
	}

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, total, nil
}
