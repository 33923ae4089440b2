package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewAuthorRepo(db)
	ctx := t.Context()

	t.Run("CreateAuthor", func(t *testing.T) {
		author := &models.Author{Name: "Ursula K. Le Guin", Bio: "Novelist"}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING id`)).
			WithArgs(author.Name, author.Bio).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		err := repo.CreateAuthor(ctx, author)

		require.NoError(t, err)
		assert.Equal(t, int64(7), author.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetAuthorByID", func(t *testing.T) {
		query := regexp.QuoteMeta(`SELECT id, name, bio FROM authors WHERE id = $1`)

		t.Run("Success", func(t *testing.T) {
			mock.ExpectQuery(query).WithArgs(int64(7)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bio"}).AddRow(int64(7), "Ursula K. Le Guin", "Novelist"))

			author, err := repo.GetAuthorByID(ctx, 7)

			require.NoError(t, err)
			assert.Equal(t, &models.Author{ID: 7, Name: "Ursula K. Le Guin", Bio: "Novelist"}, author)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			mock.ExpectQuery(query).WithArgs(int64(8)).WillReturnError(sql.ErrNoRows)

			author, err := repo.GetAuthorByID(ctx, 8)

			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, author)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Database Error", func(t *testing.T) {
			mock.ExpectQuery(query).WithArgs(int64(9)).WillReturnError(errors.New("connection reset"))

			_, err := repo.GetAuthorByID(ctx, 9)

			require.Error(t, err)
			assert.ErrorContains(t, err, "querying database")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListAuthors", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, bio FROM authors ORDER BY name, id`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bio"}).
				AddRow(int64(1), "Borges", "").
				AddRow(int64(2), "Calvino", ""))

		authors, err := repo.ListAuthors(ctx)

		require.NoError(t, err)
		require.Len(t, authors, 2)
		assert.Equal(t, "Calvino", authors[1].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateAuthor", func(t *testing.T) {
		query := regexp.QuoteMeta(`UPDATE authors SET name = $1, bio = $2 WHERE id = $3`)

		t.Run("Success", func(t *testing.T) {
			mock.ExpectExec(query).WithArgs("New Name", "New Bio", int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpdateAuthor(ctx, &models.Author{ID: 3, Name: "New Name", Bio: "New Bio"})

			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			mock.ExpectExec(query).WithArgs("New Name", "", int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.UpdateAuthor(ctx, &models.Author{ID: 4, Name: "New Name"})

			assert.ErrorIs(t, err, sql.ErrNoRows)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("DeleteAuthor", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM authors WHERE id = $1`)).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteAuthor(ctx, 3)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCategoryRepo(db)
	ctx := t.Context()

	t.Run("CreateCategory", func(t *testing.T) {
		category := &models.Category{Name: "Fantasy"}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (name) VALUES ($1) RETURNING id`)).
			WithArgs("Fantasy").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

		require.NoError(t, repo.CreateCategory(ctx, category))
		assert.Equal(t, int64(2), category.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetCategoryByID Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCategoryByID(ctx, 5)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListCategories", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories ORDER BY name, id`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		categories, err := repo.ListCategories(ctx)

		require.NoError(t, err)
		assert.NotNil(t, categories)
		assert.Empty(t, categories)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteCategory Not Found", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteCategory(ctx, 5)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
