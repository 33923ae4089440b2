package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
)

type AuthorRepository interface {
	CreateAuthor(ctx context.Context, author *models.Author) error
	GetAuthorByID(ctx context.Context, id int64) (*models.Author, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	UpdateAuthor(ctx context.Context, author *models.Author) error
	DeleteAuthor(ctx context.Context, id int64) error
}

type authorRepository struct {
	DB DBTX
}

func NewAuthorRepo(db DBTX) AuthorRepository {
	return &authorRepository{DB: db}
}

func (r *authorRepository) CreateAuthor(ctx context.Context, author *models.Author) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, author.Name, author.Bio).Scan(&author.ID)
}

func (r *authorRepository) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	author := &models.Author{}

	query := `SELECT id, name, bio FROM authors WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&author.ID, &author.Name, &author.Bio)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return author, nil
}

func (r *authorRepository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, bio FROM authors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []models.Author{}

	for rows.Next() {
		var author models.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.Bio); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}

func (r *authorRepository) UpdateAuthor(ctx context.Context, author *models.Author) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE authors SET name = $1, bio = $2 WHERE id = $3`, author.Name, author.Bio, author.ID)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}

	return expectAffected(result)
}

func (r *authorRepository) DeleteAuthor(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	return expectAffected(result)
}

// expectAffected maps a statement that touched no rows to sql.ErrNoRows.
func expectAffected(result sql.Result) error {

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
