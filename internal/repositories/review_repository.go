package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, bookID, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, bookID int64) ([]models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id int64) error
	GetRatingSummary(ctx context.Context, bookID int64) (models.RatingSummary, error)
}

type reviewRepository struct {
	DB DBTX
}

func NewReviewRepo(db DBTX) ReviewRepository {
	return &reviewRepository{DB: db}
}

const reviewSelect = `
	SELECT r.id, r.book_id, r.user_id, u.username, u.email, r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
`

func scanReview(row rowScanner) (*models.Review, error) {

	review := &models.Review{User: &models.UserInfo{}}

	err := row.Scan(&review.ID, &review.BookID, &review.UserID, &review.User.Username, &review.User.Email, &review.Rating, &review.Comment, &review.CreatedAt)
	if err != nil {
		return nil, err
	}

	review.User.ID = review.UserID

	return review, nil
}

// CreateReview fails with a unique violation when the user already reviewed the book.
func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (book_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, review.BookID, review.UserID, review.Rating, review.Comment).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) GetReview(ctx context.Context, bookID, id int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	review, err := scanReview(r.DB.QueryRowContext(dbCtx, reviewSelect+` WHERE r.book_id = $1 AND r.id = $2`, bookID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) ListReviews(ctx context.Context, bookID int64) ([]models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, reviewSelect+` WHERE r.book_id = $1 ORDER BY r.created_at DESC, r.id DESC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3`, review.Rating, review.Comment, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return expectAffected(result)
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return expectAffected(result)
}

func (r *reviewRepository) GetRatingSummary(ctx context.Context, bookID int64) (models.RatingSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var summary models.RatingSummary

	query := `SELECT COUNT(*), COALESCE(SUM(rating), 0) FROM reviews WHERE book_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, query, bookID).Scan(&summary.Count, &summary.Sum); err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	return summary, nil
}
