package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/google/uuid"
)

type ReviewService interface {
	CreateReview(ctx context.Context, bookID int64, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error)
	GetReview(ctx context.Context, bookID, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, bookID int64) ([]models.Review, error)
	UpdateReview(ctx context.Context, bookID, id int64, userID uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, bookID, id int64, userID uuid.UUID) error
	AverageRating(ctx context.Context, bookID int64) (float64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

func (s *reviewService) ensureBook(ctx context.Context, bookID int64) error {

	exists, err := s.bookRepo.BookExists(ctx, bookID)
	if err != nil {
		return errors.DatabaseError("Failed to fetch book").WithError(err)
	}

	if !exists {
		return errors.NotFoundError("Book not found")
	}

	return nil
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// CreateReview rejects a second review of the same book by the same user;
// existing reviews are changed through UpdateReview.
func (s *reviewService) CreateReview(ctx context.Context, bookID int64, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {

	if !validRating(req.Rating) {
		return nil, errors.FieldError("rating", "must be between 1 and 5")
	}

	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}

	review := &models.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: utils.StripHTML(req.Comment),
	}

	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return nil, errors.ValidationError("You have already reviewed this book").WithError(err)
		case repository.IsForeignKeyViolation(err):
			return nil, errors.NotFoundError("Book not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, bookID, id int64) (*models.Review, error) {

	review, err := s.reviewRepo.GetReview(ctx, bookID, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Review not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, bookID int64) ([]models.Review, error) {

	if err := s.ensureBook(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListReviews(ctx, bookID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list reviews").WithError(err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}

func (s *reviewService) ownedReview(ctx context.Context, bookID, id int64, userID uuid.UUID) (*models.Review, error) {

	review, err := s.GetReview(ctx, bookID, id)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		return nil, errors.ForbiddenError("You can only modify your own reviews")
	}

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, bookID, id int64, userID uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error) {

	review, err := s.ownedReview(ctx, bookID, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, errors.FieldError("rating", "must be between 1 and 5")
		}
		review.Rating = *req.Rating
	}

	if req.Comment != nil {
		review.Comment = utils.StripHTML(*req.Comment)
	}

	if err := s.reviewRepo.UpdateReview(ctx, review); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Review not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, bookID, id int64, userID uuid.UUID) error {

	if _, err := s.ownedReview(ctx, bookID, id, userID); err != nil {
		return err
	}

	if err := s.reviewRepo.DeleteReview(ctx, id); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Review not found").WithError(err)
		}
		return errors.DatabaseError("Failed to delete review").WithError(err)
	}

	return nil
}

func (s *reviewService) AverageRating(ctx context.Context, bookID int64) (float64, error) {

	if err := s.ensureBook(ctx, bookID); err != nil {
		return 0, err
	}

	summary, err := s.reviewRepo.GetRatingSummary(ctx, bookID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to compute average rating").WithError(err)
	}

	return summary.Average(), nil
}
