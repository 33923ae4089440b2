package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: utils.NewValidator()}
}

// CreateAuthor godoc
//	@Summary		Create an author
//	@Tags			Authors
//	@Accept			json
//	@Produce		json
//	@Param			author	body		models.AuthorRequest	true	"Author details"
//	@Success		201		{object}	models.Author
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/authors [post]
func (h *CatalogHandler) CreateAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AuthorRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create author input")
			return
		}

		author, err := h.catalogService.CreateAuthor(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create author", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Author created", slog.Int64("authorId", author.ID))
		response.Success(w, http.StatusCreated, author)
	}
}

// GetAuthor godoc
//	@Summary	Get an author
//	@Tags		Authors
//	@Produce	json
//	@Param		id	path		int	true	"Author ID"
//	@Success	200	{object}	models.Author
//	@Failure	400	{object}	response.ErrorResponse	"Invalid author ID"
//	@Failure	404	{object}	response.ErrorResponse	"Author not found"
//	@Router		/authors/{id} [get]
func (h *CatalogHandler) GetAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			logger.Warn("Invalid author id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		author, err := h.catalogService.GetAuthor(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get author", slog.Int64("authorId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, author)
	}
}

// ListAuthors godoc
//	@Summary	List authors
//	@Tags		Authors
//	@Produce	json
//	@Success	200	{array}		models.Author
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Router		/authors [get]
func (h *CatalogHandler) ListAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authors, err := h.catalogService.ListAuthors(r.Context())
		if err != nil {
			logger.Error("Failed to list authors", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, authors)
	}
}

// UpdateAuthor godoc
//	@Summary	Update an author
//	@Tags		Authors
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Author ID"
//	@Param		author	body		models.AuthorRequest	true	"Author details"
//	@Success	200		{object}	models.Author
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Author not found"
//	@Security	BearerAuth
//	@Router		/authors/{id} [put]
func (h *CatalogHandler) UpdateAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AuthorRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		author, err := h.catalogService.UpdateAuthor(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update author", slog.Int64("authorId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Author updated", slog.Int64("authorId", id))
		response.Success(w, http.StatusOK, author)
	}
}

// DeleteAuthor godoc
//	@Summary		Delete an author
//	@Description	Deletes the author and their books. Fails with 409 when one of the books has been ordered.
//	@Tags			Authors
//	@Param			id	path	int	true	"Author ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse	"Author not found"
//	@Failure		409	{object}	response.ErrorResponse	"Author has ordered books"
//	@Security		BearerAuth
//	@Router			/authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteAuthor(r.Context(), id); err != nil {
			logger.Error("Failed to delete author", slog.Int64("authorId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Author deleted", slog.Int64("authorId", id))
		response.NoContent(w)
	}
}

// CreateCategory godoc
//	@Summary	Create a category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.CategoryRequest	true	"Category details"
//	@Success	201			{object}	models.Category
//	@Failure	400			{object}	response.ErrorResponse	"Validation error"
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CatalogHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusCreated, category)
	}
}

// GetCategory godoc
//	@Summary	Get a category
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		int	true	"Category ID"
//	@Success	200	{object}	models.Category
//	@Failure	404	{object}	response.ErrorResponse	"Category not found"
//	@Router		/categories/{id} [get]
func (h *CatalogHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.catalogService.GetCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// ListCategories godoc
//	@Summary	List categories
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{array}	models.Category
//	@Router		/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// UpdateCategory godoc
//	@Summary	Update a category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int						true	"Category ID"
//	@Param		category	body		models.CategoryRequest	true	"Category details"
//	@Success	200			{object}	models.Category
//	@Failure	404			{object}	response.ErrorResponse	"Category not found"
//	@Security	BearerAuth
//	@Router		/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.Int64("categoryId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// DeleteCategory godoc
//	@Summary		Delete a category
//	@Description	Books in the category are kept with no category.
//	@Tags			Categories
//	@Param			id	path	int	true	"Category ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Security		BearerAuth
//	@Router			/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
			logger.Error("Failed to delete category", slog.Int64("categoryId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted", slog.Int64("categoryId", id))
		response.NoContent(w)
	}
}

// CreateBook godoc
//	@Summary	Create a book
//	@Tags		Books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		models.CreateBookRequest	true	"Book details"
//	@Success	201		{object}	models.Book
//	@Failure	400		{object}	response.ErrorResponse	"Validation error or unknown author/category"
//	@Security	BearerAuth
//	@Router		/books [post]
func (h *CatalogHandler) CreateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create book input")
			return
		}

		book, err := h.catalogService.CreateBook(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create book", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book created", slog.Int64("bookId", book.ID))
		response.Success(w, http.StatusCreated, book)
	}
}

// GetBook godoc
//	@Summary		Get a book
//	@Description	Returns the book with its average review rating (0 when unreviewed).
//	@Tags			Books
//	@Produce		json
//	@Param			id	path		int	true	"Book ID"
//	@Success		200	{object}	models.Book
//	@Failure		404	{object}	response.ErrorResponse	"Book not found"
//	@Router			/books/{id} [get]
func (h *CatalogHandler) GetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		book, err := h.catalogService.GetBook(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, book)
	}
}

// UpdateBook godoc
//	@Summary	Partially update a book
//	@Tags		Books
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Book ID"
//	@Param		book	body		models.UpdateBookRequest	true	"Fields to change"
//	@Success	200		{object}	models.Book
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	404		{object}	response.ErrorResponse	"Book not found"
//	@Security	BearerAuth
//	@Router		/books/{id} [put]
func (h *CatalogHandler) UpdateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		book, err := h.catalogService.UpdateBook(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book updated", slog.Int64("bookId", id))
		response.Success(w, http.StatusOK, book)
	}
}

// DeleteBook godoc
//	@Summary	Delete a book
//	@Tags		Books
//	@Param		id	path	int	true	"Book ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Book not found"
//	@Failure	409	{object}	response.ErrorResponse	"Book appears in orders"
//	@Security	BearerAuth
//	@Router		/books/{id} [delete]
func (h *CatalogHandler) DeleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteBook(r.Context(), id); err != nil {
			logger.Error("Failed to delete book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book deleted", slog.Int64("bookId", id))
		response.NoContent(w)
	}
}

// ListBooks godoc
//	@Summary		List books
//	@Description	Filtered, ordered and paginated book listing. Pages are cached for a short time.
//	@Tags			Books
//	@Produce		json
//	@Param			author		query		string										false	"Author name (exact, case-insensitive)"
//	@Param			category	query		string										false	"Category name"
//	@Param			price		query		number										false	"Exact price"
//	@Param			min_price	query		number										false	"Minimum price"
//	@Param			max_price	query		number										false	"Maximum price"
//	@Param			search		query		string										false	"Matches title or description"
//	@Param			ordering	query		string										false	"price, -price, published_date or -published_date"
//	@Param			page		query		int											false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int											false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.Page[models.Book]
//	@Failure		400			{object}	response.ErrorResponse	"Invalid filter"
//	@Router			/books [get]
func (h *CatalogHandler) ListBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseBookFilter(r)
		if err != nil {
			logger.Warn("Invalid book filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, err := h.catalogService.ListBooks(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list books", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

func parseBookFilter(r *http.Request) (models.BookFilter, error) {

	q := r.URL.Query()
	page, pageSize := utils.ParsePagination(r)

	filter := models.BookFilter{
		AuthorName:   strings.TrimSpace(q.Get("author")),
		CategoryName: strings.TrimSpace(q.Get("category")),
		Search:       strings.TrimSpace(q.Get("search")),
		Ordering:     q.Get("ordering"),
		Page:         page,
		PageSize:     pageSize,
	}

	var err error
	if filter.Price, err = decimalParam(q.Get("price"), "price"); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = decimalParam(q.Get("min_price"), "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = decimalParam(q.Get("max_price"), "max_price"); err != nil {
		return filter, err
	}

	return filter, nil
}

func decimalParam(raw, name string) (*decimal.Decimal, error) {

	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.FieldError(name, "must be a number").WithError(err)
	}

	return &d, nil
}
