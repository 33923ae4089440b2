package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewWishlistRepo(db)
	ctx := t.Context()
	userID := uuid.New()
	wishlistID := uuid.New()

	t.Run("GetOrCreateWishlist", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO wishlists (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`)).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id FROM wishlists WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(wishlistID, userID))

		wishlist, err := repo.GetOrCreateWishlist(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, wishlistID, wishlist.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListWishlistBooks", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM wishlist_books wb JOIN books b ON b.id = wb.book_id WHERE wb.wishlist_id = $1`)).
			WithArgs(wishlistID).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(int64(5), "Emma", int64(2), nil, "", "7.00", 1, time.Date(1815, time.December, 23, 0, 0, 0, 0, time.UTC)))

		books, err := repo.ListWishlistBooks(ctx, wishlistID)

		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Emma", books[0].Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AddWishlistBook Is Idempotent", func(t *testing.T) {
		query := regexp.QuoteMeta(`INSERT INTO wishlist_books (wishlist_id, book_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`)

		mock.ExpectExec(query).WithArgs(wishlistID, int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(query).WithArgs(wishlistID, int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.AddWishlistBook(ctx, wishlistID, 5))
		require.NoError(t, repo.AddWishlistBook(ctx, wishlistID, 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RemoveWishlistBook", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM wishlist_books WHERE wishlist_id = $1 AND book_id = $2`)).
			WithArgs(wishlistID, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RemoveWishlistBook(ctx, wishlistID, 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReplaceWishlistBooks", func(t *testing.T) {
		clearQuery := regexp.QuoteMeta(`DELETE FROM wishlist_books WHERE wishlist_id = $1`)
		fill := regexp.QuoteMeta(`SELECT $1, UNNEST($2::BIGINT[])`)

		t.Run("Success", func(t *testing.T) {
			ids := []int64{1, 2, 3}

			mock.ExpectBegin()
			mock.ExpectExec(clearQuery).WithArgs(wishlistID).WillReturnResult(sqlmock.NewResult(0, 2))
			mock.ExpectExec(fill).WithArgs(wishlistID, pq.Array(ids)).WillReturnResult(sqlmock.NewResult(0, 3))
			mock.ExpectCommit()

			require.NoError(t, repo.ReplaceWishlistBooks(ctx, wishlistID, ids))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Empty Set Only Clears", func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(clearQuery).WithArgs(wishlistID).WillReturnResult(sqlmock.NewResult(0, 3))
			mock.ExpectCommit()

			require.NoError(t, repo.ReplaceWishlistBooks(ctx, wishlistID, nil))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Rollback On Error", func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(clearQuery).WithArgs(wishlistID).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(fill).WillReturnError(&pq.Error{Code: "23503"})
			mock.ExpectRollback()

			err := repo.ReplaceWishlistBooks(ctx, wishlistID, []int64{404})

			require.Error(t, err)
			assert.True(t, repository.IsForeignKeyViolation(err))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Begin Error", func(t *testing.T) {
			mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

			err := repo.ReplaceWishlistBooks(ctx, wishlistID, []int64{1})

			assert.ErrorContains(t, err, "failed to begin transaction")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
