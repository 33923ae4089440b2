package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/google/uuid"
)

// CheckoutStore holds the statements that make up one checkout. Every method
// runs on the same transaction.
type CheckoutStore interface {
	LockCartLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	InsertOrderItem(ctx context.Context, item *models.OrderItem) error
	DecrementStock(ctx context.Context, bookID int64, quantity int) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}

type Transactor interface {
	// WithinCheckoutTx runs fn in a serializable transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithinCheckoutTx(ctx context.Context, fn func(ctx context.Context, store CheckoutStore) error) error
}

type transactor struct {
	DB *sql.DB
}

func NewTransactor(db *sql.DB) Transactor {
	return &transactor{DB: db}
}

func (t *transactor) WithinCheckoutTx(ctx context.Context, fn func(ctx context.Context, store CheckoutStore) error) error {

	ctx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := t.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin checkout: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &checkoutStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkout: %w", err)
	}

	return nil
}

type checkoutStore struct {
	tx *sql.Tx
}

// LockCartLines reads the cart joined to its books and locks the book rows in
// id order until the transaction ends.
func (s *checkoutStore) LockCartLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {

	query := `
		SELECT ci.id, b.id, b.title, b.price, b.stock, ci.quantity
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY b.id
		FOR UPDATE OF b
	`

	rows, err := s.tx.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart lines: %w", err)
	}
	defer rows.Close()

	var lines []models.CartLine

	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.CartItemID, &line.BookID, &line.Title, &line.Price, &line.Stock, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

func (s *checkoutStore) InsertOrder(ctx context.Context, order *models.Order) error {

	query := `
		INSERT INTO orders (user_id, total_amount, status, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	if err := s.tx.QueryRowContext(ctx, query, order.UserID, order.TotalAmount, order.Status, order.ShippingAddress).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (s *checkoutStore) InsertOrderItem(ctx context.Context, item *models.OrderItem) error {

	query := `
		INSERT INTO order_items (order_id, book_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := s.tx.QueryRowContext(ctx, query, item.OrderID, item.BookID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
		return fmt.Errorf("failed to insert an order item: %w", err)
	}

	return nil
}

// DecrementStock only succeeds while enough stock remains; otherwise it
// returns ErrInsufficientStock and leaves the row untouched.
func (s *checkoutStore) DecrementStock(ctx context.Context, bookID int64, quantity int) error {

	result, err := s.tx.ExecContext(ctx, `UPDATE books SET stock = stock - $1 WHERE id = $2 AND stock >= $1`, quantity, bookID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return ErrInsufficientStock
	}

	return nil
}

func (s *checkoutStore) ClearCart(ctx context.Context, cartID uuid.UUID) error {

	if _, err := s.tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
