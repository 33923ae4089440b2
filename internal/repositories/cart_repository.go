package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error
	SetCartItemQuantity(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error
	RemoveCartItem(ctx context.Context, cartID uuid.UUID, bookID int64) error
}

type cartRepository struct {
	DB DBTX
}

func NewCartRepo(db DBTX) CartRepository {
	return &cartRepository{DB: db}
}

// GetOrCreateCart relies on the unique user_id constraint, so concurrent first
// requests still end up with a single cart.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `INSERT INTO carts (user_id, created_at) VALUES ($1, NOW()) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	cart := &models.Cart{}

	err = r.DB.QueryRowContext(dbCtx, `SELECT id, user_id, created_at FROM carts WHERE user_id = $1`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.cart_id, ci.quantity, ` + bookColumns + `
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		var (
			item       models.CartItem
			book       models.Book
			categoryID sql.NullInt64
		)

		err := rows.Scan(&item.ID, &item.CartID, &item.Quantity,
			&book.ID, &book.Title, &book.AuthorID, &categoryID, &book.Description, &book.Price, &book.Stock, &book.PublishedDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		if categoryID.Valid {
			id := categoryID.Int64
			book.CategoryID = &id
		}

		item.BookID = book.ID
		item.Book = &book
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// AddCartItem creates the line or increments an existing one by quantity.
func (r *cartRepository) AddCartItem(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, book_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, book_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID, bookID, quantity); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) SetCartItemQuantity(ctx context.Context, cartID uuid.UUID, bookID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND book_id = $3`, quantity, cartID, bookID)
	if err != nil {
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return expectAffected(result)
}

// RemoveCartItem is a no-op when the line does not exist.
func (r *cartRepository) RemoveCartItem(ctx context.Context, cartID uuid.UUID, bookID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND book_id = $2`, cartID, bookID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}
