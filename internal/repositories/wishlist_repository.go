package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type WishlistRepository interface {
	GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error)
	ListWishlistBooks(ctx context.Context, wishlistID uuid.UUID) ([]models.Book, error)
	AddWishlistBook(ctx context.Context, wishlistID uuid.UUID, bookID int64) error
	RemoveWishlistBook(ctx context.Context, wishlistID uuid.UUID, bookID int64) error
	ReplaceWishlistBooks(ctx context.Context, wishlistID uuid.UUID, bookIDs []int64) error
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `INSERT INTO wishlists (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	wishlist := &models.Wishlist{}

	err = r.DB.QueryRowContext(dbCtx, `SELECT id, user_id FROM wishlists WHERE user_id = $1`, userID).Scan(&wishlist.ID, &wishlist.UserID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return wishlist, nil
}

func (r *wishlistRepository) ListWishlistBooks(ctx context.Context, wishlistID uuid.UUID) ([]models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + bookColumns + `
		FROM wishlist_books wb
		JOIN books b ON b.id = wb.book_id
		WHERE wb.wishlist_id = $1
		ORDER BY b.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}

	for rows.Next() {
		var book models.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlist books: %w", err)
	}

	return books, nil
}

// AddWishlistBook is idempotent on membership.
func (r *wishlistRepository) AddWishlistBook(ctx context.Context, wishlistID uuid.UUID, bookID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO wishlist_books (wishlist_id, book_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.DB.ExecContext(dbCtx, query, wishlistID, bookID); err != nil {
		return fmt.Errorf("failed to add wishlist book: %w", err)
	}

	return nil
}

func (r *wishlistRepository) RemoveWishlistBook(ctx context.Context, wishlistID uuid.UUID, bookID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM wishlist_books WHERE wishlist_id = $1 AND book_id = $2`, wishlistID, bookID); err != nil {
		return fmt.Errorf("failed to remove wishlist book: %w", err)
	}

	return nil
}

// ReplaceWishlistBooks swaps the whole membership set in one transaction.
func (r *wishlistRepository) ReplaceWishlistBooks(ctx context.Context, wishlistID uuid.UUID, bookIDs []int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM wishlist_books WHERE wishlist_id = $1`, wishlistID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	if len(bookIDs) > 0 {
		query := `
			INSERT INTO wishlist_books (wishlist_id, book_id)
			SELECT $1, UNNEST($2::BIGINT[])
			ON CONFLICT DO NOTHING
		`

		if _, err := tx.ExecContext(dbCtx, query, wishlistID, pq.Array(bookIDs)); err != nil {
			return fmt.Errorf("failed to fill wishlist: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wishlist: %w", err)
	}

	return nil
}
