package service_test

import (
	"database/sql"
	"testing"

	appErrors "github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repoMocks "github.com/aaravmahajanofficial/bookstore-api/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupReviewTest(t *testing.T) (*repoMocks.ReviewRepository, *repoMocks.BookRepository, service.ReviewService) {
	t.Helper()

	reviews := repoMocks.NewReviewRepository(t)
	books := repoMocks.NewBookRepository(t)

	return reviews, books, service.NewReviewService(reviews, books)
}

func TestReviewService_CreateReview(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reviews, books, svc := setupReviewTest(t)

		books.On("BookExists", mock.Anything, int64(1)).Return(true, nil).Once()
		reviews.On("CreateReview", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
			return r.BookID == 1 && r.UserID == userID && r.Rating == 5 && r.Comment == "Loved it"
		})).Return(nil).Once()

		// Act
		review, err := svc.CreateReview(t.Context(), 1, userID, &models.CreateReviewRequest{Rating: 5, Comment: "<b>Loved it</b>"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
	})

	t.Run("Duplicate Review Fails Validation", func(t *testing.T) {
		reviews, books, svc := setupReviewTest(t)

		books.On("BookExists", mock.Anything, int64(1)).Return(true, nil).Once()
		reviews.On("CreateReview", mock.Anything, mock.Anything).Return(&pq.Error{Code: "23505"}).Once()

		_, err := svc.CreateReview(t.Context(), 1, userID, &models.CreateReviewRequest{Rating: 4})

		appErr := requireAppError(t, err, appErrors.ErrCodeValidation)
		assert.Equal(t, 400, appErr.StatusCode)
	})

	t.Run("Book Not Found", func(t *testing.T) {
		_, books, svc := setupReviewTest(t)
		books.On("BookExists", mock.Anything, int64(77)).Return(false, nil).Once()

		_, err := svc.CreateReview(t.Context(), 77, userID, &models.CreateReviewRequest{Rating: 3})

		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Rating Out Of Range", func(t *testing.T) {
		_, _, svc := setupReviewTest(t)

		for _, rating := range []int{0, 6} {
			_, err := svc.CreateReview(t.Context(), 1, userID, &models.CreateReviewRequest{Rating: rating})
			requireAppError(t, err, appErrors.ErrCodeValidation)
		}
	})
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	existing := func() *models.Review {
		return &models.Review{ID: 10, BookID: 1, UserID: owner, Rating: 2, Comment: "meh"}
	}

	t.Run("Owner Updates Rating", func(t *testing.T) {
		reviews, _, svc := setupReviewTest(t)
		rating := 4

		reviews.On("GetReview", mock.Anything, int64(1), int64(10)).Return(existing(), nil).Once()
		reviews.On("UpdateReview", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
			return r.Rating == 4 && r.Comment == "meh"
		})).Return(nil).Once()

		review, err := svc.UpdateReview(t.Context(), 1, 10, owner, &models.UpdateReviewRequest{Rating: &rating})

		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
	})

	t.Run("Other User Is Forbidden", func(t *testing.T) {
		reviews, _, svc := setupReviewTest(t)
		reviews.On("GetReview", mock.Anything, int64(1), int64(10)).Return(existing(), nil).Once()

		_, err := svc.UpdateReview(t.Context(), 1, 10, other, &models.UpdateReviewRequest{})

		requireAppError(t, err, appErrors.ErrCodeForbidden)
		reviews.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)
	})

	t.Run("Owner Deletes", func(t *testing.T) {
		reviews, _, svc := setupReviewTest(t)
		reviews.On("GetReview", mock.Anything, int64(1), int64(10)).Return(existing(), nil).Once()
		reviews.On("DeleteReview", mock.Anything, int64(10)).Return(nil).Once()

		require.NoError(t, svc.DeleteReview(t.Context(), 1, 10, owner))
	})

	t.Run("Delete Missing Review", func(t *testing.T) {
		reviews, _, svc := setupReviewTest(t)
		reviews.On("GetReview", mock.Anything, int64(1), int64(11)).Return(nil, sql.ErrNoRows).Once()

		requireAppError(t, svc.DeleteReview(t.Context(), 1, 11, owner), appErrors.ErrCodeNotFound)
	})
}

func TestReviewService_AverageRating(t *testing.T) {
	tests := []struct {
		name     string
		summary  models.RatingSummary
		expected float64
	}{
		{"No Reviews", models.RatingSummary{}, 0},
		{"Three And Five", models.RatingSummary{Count: 2, Sum: 8}, 4.0},
		{"Single Review", models.RatingSummary{Count: 1, Sum: 1}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews, books, svc := setupReviewTest(t)
			books.On("BookExists", mock.Anything, int64(5)).Return(true, nil).Once()
			reviews.On("GetRatingSummary", mock.Anything, int64(5)).Return(tt.summary, nil).Once()

			avg, err := svc.AverageRating(t.Context(), 5)

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, avg, 1e-9)
		})
	}
}

func TestReviewService_ListReviews(t *testing.T) {
	reviews, books, svc := setupReviewTest(t)
	books.On("BookExists", mock.Anything, int64(5)).Return(true, nil).Once()
	reviews.On("ListReviews", mock.Anything, int64(5)).Return(nil, nil).Once()

	list, err := svc.ListReviews(t.Context(), 5)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
