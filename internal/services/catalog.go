package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"net/url"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/cache"
	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
)

type CatalogService interface {
	CreateAuthor(ctx context.Context, req *models.AuthorRequest) (*models.Author, error)
	GetAuthor(ctx context.Context, id int64) (*models.Author, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	UpdateAuthor(ctx context.Context, id int64, req *models.AuthorRequest) (*models.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, filter models.BookFilter) (*models.Page[models.Book], error)
}

type catalogService struct {
	authorRepo   repository.AuthorRepository
	categoryRepo repository.CategoryRepository
	bookRepo     repository.BookRepository
	reviewRepo   repository.ReviewRepository
	cache        cache.Cache
	listTTL      time.Duration
}

func NewCatalogService(
	authorRepo repository.AuthorRepository,
	categoryRepo repository.CategoryRepository,
	bookRepo repository.BookRepository,
	reviewRepo repository.ReviewRepository,
	cache cache.Cache,
	listTTL time.Duration,
) CatalogService {
	return &catalogService{
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
		reviewRepo:   reviewRepo,
		cache:        cache,
		listTTL:      listTTL,
	}
}

// Authors

func (s *catalogService) CreateAuthor(ctx context.Context, req *models.AuthorRequest) (*models.Author, error) {

	author := &models.Author{
		Name: utils.StripHTML(req.Name),
		Bio:  utils.StripHTML(req.Bio),
	}

	if author.Name == "" {
		return nil, errors.ValidationError("Author name cannot be empty")
	}

	if err := s.authorRepo.CreateAuthor(ctx, author); err != nil {
		return nil, errors.DatabaseError("Failed to create author").WithError(err)
	}

	return author, nil
}

func (s *catalogService) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {

	author, err := s.authorRepo.GetAuthorByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Author not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch author").WithError(err)
	}

	return author, nil
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]models.Author, error) {

	authors, err := s.authorRepo.ListAuthors(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list authors").WithError(err)
	}

	return authors, nil
}

func (s *catalogService) UpdateAuthor(ctx context.Context, id int64, req *models.AuthorRequest) (*models.Author, error) {

	author := &models.Author{
		ID:   id,
		Name: utils.StripHTML(req.Name),
		Bio:  utils.StripHTML(req.Bio),
	}

	if author.Name == "" {
		return nil, errors.ValidationError("Author name cannot be empty")
	}

	if err := s.authorRepo.UpdateAuthor(ctx, author); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Author not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update author").WithError(err)
	}

	return author, nil
}

// DeleteAuthor also removes the author's books. It fails with a conflict when
// one of those books has been ordered.
func (s *catalogService) DeleteAuthor(ctx context.Context, id int64) error {

	if err := s.authorRepo.DeleteAuthor(ctx, id); err != nil {
		switch {
		case stdErrors.Is(err, sql.ErrNoRows):
			return errors.NotFoundError("Author not found").WithError(err)
		case repository.IsForeignKeyViolation(err):
			return errors.ConflictError("Author has books that appear in orders").WithError(err)
		}
		return errors.DatabaseError("Failed to delete author").WithError(err)
	}

	return nil
}

// Categories

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {

	category := &models.Category{Name: utils.StripHTML(req.Name)}
	if category.Name == "" {
		return nil, errors.ValidationError("Category name cannot be empty")
	}

	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list categories").WithError(err)
	}

	return categories, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error) {

	category := &models.Category{ID: id, Name: utils.StripHTML(req.Name)}
	if category.Name == "" {
		return nil, errors.ValidationError("Category name cannot be empty")
	}

	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

// DeleteCategory leaves the category's books in place with no category.
func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Category not found").WithError(err)
		}
		return errors.DatabaseError("Failed to delete category").WithError(err)
	}

	return nil
}

// Books

func validatePrice(book *models.Book) error {
	if book.Price.LessThan(models.MinBookPrice) {
		return errors.FieldError("price", "must be at least "+models.MinBookPrice.StringFixed(2))
	}

	return nil
}

func (s *catalogService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {

	book := &models.Book{
		Title:         utils.StripHTML(req.Title),
		AuthorID:      req.AuthorID,
		CategoryID:    req.CategoryID,
		Description:   utils.SanitizeRichText(req.Description),
		Price:         req.Price.Round(2),
		Stock:         req.Stock,
		PublishedDate: req.PublishedDate,
	}

	if book.Title == "" {
		return nil, errors.ValidationError("Book title cannot be empty")
	}

	if book.PublishedDate.IsZero() {
		return nil, errors.FieldError("published_date", "is required")
	}

	if err := validatePrice(book); err != nil {
		return nil, err
	}

	if err := s.bookRepo.CreateBook(ctx, book); err != nil {
		switch {
		case repository.IsForeignKeyViolation(err):
			return nil, errors.ValidationError("Author or category does not exist").WithError(err)
		case repository.IsNumericOutOfRange(err):
			return nil, errors.ValidationError("Price or stock is out of range").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to create book").WithError(err)
	}

	return book, nil
}

// GetBook returns the book with its average rating, 0 when it has no reviews.
func (s *catalogService) GetBook(ctx context.Context, id int64) (*models.Book, error) {

	book, err := s.bookRepo.GetBookByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Book not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch book").WithError(err)
	}

	summary, err := s.reviewRepo.GetRatingSummary(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to compute average rating").WithError(err)
	}

	avg := summary.Average()
	book.AverageRating = &avg

	return book, nil
}

func (s *catalogService) UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error) {

	book, err := s.bookRepo.GetBookByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Book not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch book").WithError(err)
	}

	if req.Title != nil {
		book.Title = utils.StripHTML(*req.Title)
		if book.Title == "" {
			return nil, errors.ValidationError("Book title cannot be empty")
		}
	}
	if req.AuthorID != nil {
		book.AuthorID = *req.AuthorID
	}
	if req.CategoryID.Set {
		if req.CategoryID.Value != nil && *req.CategoryID.Value <= 0 {
			return nil, errors.FieldError("category", "must be a positive id")
		}
		// null detaches the book from its category
		book.CategoryID = req.CategoryID.Value
	}
	if req.Description != nil {
		book.Description = utils.SanitizeRichText(*req.Description)
	}
	if req.Price != nil {
		book.Price = req.Price.Round(2)
	}
	if req.Stock != nil {
		book.Stock = *req.Stock
	}
	if req.PublishedDate != nil {
		book.PublishedDate = *req.PublishedDate
	}

	if err := validatePrice(book); err != nil {
		return nil, err
	}

	if err := s.bookRepo.UpdateBook(ctx, book); err != nil {
		switch {
		case stdErrors.Is(err, sql.ErrNoRows):
			return nil, errors.NotFoundError("Book not found").WithError(err)
		case repository.IsForeignKeyViolation(err):
			return nil, errors.ValidationError("Author or category does not exist").WithError(err)
		case repository.IsCheckViolation(err):
			return nil, errors.ValidationError("Book violates a catalog constraint").WithError(err)
		case repository.IsNumericOutOfRange(err):
			return nil, errors.ValidationError("Price or stock is out of range").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update book").WithError(err)
	}

	return book, nil
}

func (s *catalogService) DeleteBook(ctx context.Context, id int64) error {

	if err := s.bookRepo.DeleteBook(ctx, id); err != nil {
		switch {
		case stdErrors.Is(err, sql.ErrNoRows):
			return errors.NotFoundError("Book not found").WithError(err)
		case repository.IsForeignKeyViolation(err):
			return errors.ConflictError("Book appears in orders and cannot be deleted").WithError(err)
		}
		return errors.DatabaseError("Failed to delete book").WithError(err)
	}

	return nil
}

// bookListKey builds a cache key that is identical for equivalent queries.
// url.Values.Encode sorts by key.
func bookListKey(f models.BookFilter) string {

	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("pageSize", strconv.Itoa(f.PageSize))

	if f.AuthorName != "" {
		q.Set("author", f.AuthorName)
	}
	if f.CategoryName != "" {
		q.Set("category", f.CategoryName)
	}
	if f.Price != nil {
		q.Set("price", f.Price.String())
	}
	if f.MinPrice != nil {
		q.Set("min_price", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q.Set("max_price", f.MaxPrice.String())
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Ordering != "" {
		q.Set("ordering", f.Ordering)
	}

	return cache.QueryKey(cache.BookListKeyPrefix, q)
}

// ListBooks serves pages from the cache when present. Cached pages are not
// evicted on writes and may be stale for up to the list TTL.
func (s *catalogService) ListBooks(ctx context.Context, filter models.BookFilter) (*models.Page[models.Book], error) {

	if filter.Page < 1 {
		filter.Page = utils.DefaultPage
	}
	if filter.Page > utils.MaxPage {
		filter.Page = utils.MaxPage
	}
	if filter.PageSize < 1 || filter.PageSize > utils.MaxPageSize {
		filter.PageSize = utils.DefaultPageSize
	}

	if _, ok := bookOrderings[filter.Ordering]; !ok {
		return nil, errors.FieldError("ordering", "must be one of price, -price, published_date, -published_date")
	}

	page, err := cache.Fetch(ctx, s.cache, bookListKey(filter), s.listTTL, func(ctx context.Context) (*models.Page[models.Book], error) {
		books, total, err := s.bookRepo.ListBooks(ctx, filter)
		if err != nil {
			return nil, err
		}
		return models.NewPage(books, total, filter.Page, filter.PageSize), nil
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to list books").WithError(err)
	}

	return page, nil
}

var bookOrderings = map[string]struct{}{
	"":                {},
	"price":           {},
	"-price":          {},
	"published_date":  {},
	"-published_date": {},
}
