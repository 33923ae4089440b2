// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/stretchr/testify/mock"
)

type AuthorRepository struct {
	mock.Mock
}

func NewAuthorRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthorRepository {
	m := &AuthorRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *AuthorRepository) CreateAuthor(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *AuthorRepository) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Author)
	return r0, args.Error(1)
}

func (m *AuthorRepository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	r0, _ := args.Get(0).([]models.Author)
	return r0, args.Error(1)
}

func (m *AuthorRepository) UpdateAuthor(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *AuthorRepository) DeleteAuthor(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Category)
	return r0, args.Error(1)
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	r0, _ := args.Get(0).([]models.Category)
	return r0, args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BookRepository struct {
	mock.Mock
}

func NewBookRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BookRepository {
	m := &BookRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *BookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *BookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Book)
	return r0, args.Error(1)
}

func (m *BookRepository) BookExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *BookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *BookRepository) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookRepository) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, int, error) {
	args := m.Called(ctx, filter)
	r0, _ := args.Get(0).([]models.Book)
	return r0, args.Int(1), args.Error(2)
}

type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) GetReview(ctx context.Context, bookID, id int64) (*models.Review, error) {
	args := m.Called(ctx, bookID, id)
	r0, _ := args.Get(0).(*models.Review)
	return r0, args.Error(1)
}

func (m *ReviewRepository) ListReviews(ctx context.Context, bookID int64) ([]models.Review, error) {
	args := m.Called(ctx, bookID)
	r0, _ := args.Get(0).([]models.Review)
	return r0, args.Error(1)
}

func (m *ReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) DeleteReview(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReviewRepository) GetRatingSummary(ctx context.Context, bookID int64) (models.RatingSummary, error) {
	args := m.Called(ctx, bookID)
	r0, _ := args.Get(0).(models.RatingSummary)
	return r0, args.Error(1)
}
