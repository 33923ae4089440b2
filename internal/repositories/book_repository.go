package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
)

type BookRepository interface {
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	BookExists(ctx context.Context, id int64) (bool, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, int, error)
}

type bookRepository struct {
	DB DBTX
}

func NewBookRepo(db DBTX) BookRepository {
	return &bookRepository{DB: db}
}

const bookColumns = `b.id, b.title, b.author_id, b.category_id, b.description, b.price, b.stock, b.published_date`

// bookOrderings maps the public ordering keys to ORDER BY clauses. b.id is the
// tie breaker so pages are stable.
var bookOrderings = map[string]string{
	"":                "b.id ASC",
	"price":           "b.price ASC, b.id ASC",
	"-price":          "b.price DESC, b.id ASC",
	"published_date":  "b.published_date ASC, b.id ASC",
	"-published_date": "b.published_date DESC, b.id ASC",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner, book *models.Book) error {

	var categoryID sql.NullInt64

	if err := row.Scan(&book.ID, &book.Title, &book.AuthorID, &categoryID, &book.Description, &book.Price, &book.Stock, &book.PublishedDate); err != nil {
		return err
	}

	if categoryID.Valid {
		id := categoryID.Int64
		book.CategoryID = &id
	}

	return nil
}

func (r *bookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO books (title, author_id, category_id, description, price, stock, published_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.DB.QueryRowContext(dbCtx, query, book.Title, book.AuthorID, book.CategoryID, book.Description, book.Price, book.Stock, book.PublishedDate).Scan(&book.ID)
}

func (r *bookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	book := &models.Book{}

	query := `SELECT ` + bookColumns + ` FROM books b WHERE b.id = $1`

	if err := scanBook(r.DB.QueryRowContext(dbCtx, query, id), book); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return book, nil
}

func (r *bookRepository) BookExists(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check book: %w", err)
	}

	return exists, nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE books
		SET title = $1, author_id = $2, category_id = $3, description = $4, price = $5, stock = $6, published_date = $7
		WHERE id = $8
	`

	result, err := r.DB.ExecContext(dbCtx, query, book.Title, book.AuthorID, book.CategoryID, book.Description, book.Price, book.Stock, book.PublishedDate, book.ID)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	return expectAffected(result)
}

func (r *bookRepository) DeleteBook(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	return expectAffected(result)
}

// buildBookFilter renders the FROM and WHERE part of the list query together
// with its positional arguments.
func buildBookFilter(filter models.BookFilter) (string, []any) {

	var (
		conditions []string
		args       []any
	)

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.AuthorName != "" {
		conditions = append(conditions, "LOWER(a.name) = LOWER("+next(filter.AuthorName)+")")
	}

	if filter.CategoryName != "" {
		conditions = append(conditions, "LOWER(c.name) = LOWER("+next(filter.CategoryName)+")")
	}

	if filter.Price != nil {
		conditions = append(conditions, "b.price = "+next(*filter.Price))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, "b.price >= "+next(*filter.MinPrice))
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, "b.price <= "+next(*filter.MaxPrice))
	}

	if filter.Search != "" {
		p := next("%" + escapeLike(filter.Search) + "%")
		conditions = append(conditions, "(b.title ILIKE "+p+" OR b.description ILIKE "+p+")")
	}

	from := ` FROM books b JOIN authors a ON a.id = b.author_id LEFT JOIN categories c ON c.id = b.category_id`

	if len(conditions) > 0 {
		from += " WHERE " + strings.Join(conditions, " AND ")
	}

	return from, args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *bookRepository) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	orderBy, ok := bookOrderings[filter.Ordering]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported ordering %q", filter.Ordering)
	}

	from, args := buildBookFilter(filter)

	var total int

	if err := r.DB.QueryRowContext(dbCtx, "SELECT COUNT(*)"+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	// Offset
	offset := (filter.Page - 1) * filter.PageSize

	n := len(args)
	query := "SELECT " + bookColumns + from +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)

	rows, err := r.DB.QueryContext(dbCtx, query, append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}

	for rows.Next() {
		var book models.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, total, nil
}
