// Package mocks holds testify mocks of the service interfaces and of the
// collaborators services depend on.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func NewCatalogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogService {
	m := &CatalogService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CatalogService) CreateAuthor(ctx context.Context, req *models.AuthorRequest) (*models.Author, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*models.Author)
	return r0, args.Error(1)
}

func (m *CatalogService) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Author)
	return r0, args.Error(1)
}

func (m *CatalogService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	r0, _ := args.Get(0).([]models.Author)
	return r0, args.Error(1)
}

func (m *CatalogService) UpdateAuthor(ctx context.Context, id int64, req *models.AuthorRequest) (*models.Author, error) {
	args := m.Called(ctx, id, req)
	r0, _ := args.Get(0).(*models.Author)
	return r0, args.Error(1)
}

func (m *CatalogService) DeleteAuthor(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*models.Category)
	return r0, args.Error(1)
}

func (m *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Category)
	return r0, args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	r0, _ := args.Get(0).([]models.Category)
	return r0, args.Error(1)
}

func (m *CatalogService) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)
	r0, _ := args.Get(0).(*models.Category)
	return r0, args.Error(1)
}

func (m *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*models.Book)
	return r0, args.Error(1)
}

func (m *CatalogService) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Book)
	return r0, args.Error(1)
}

func (m *CatalogService) UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)
	r0, _ := args.Get(0).(*models.Book)
	return r0, args.Error(1)
}

func (m *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogService) ListBooks(ctx context.Context, filter models.BookFilter) (*models.Page[models.Book], error) {
	args := m.Called(ctx, filter)
	r0, _ := args.Get(0).(*models.Page[models.Book])
	return r0, args.Error(1)
}

type ReviewService struct {
	mock.Mock
}

func NewReviewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewService {
	m := &ReviewService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ReviewService) CreateReview(ctx context.Context, bookID int64, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, bookID, userID, req)
	r0, _ := args.Get(0).(*models.Review)
	return r0, args.Error(1)
}

func (m *ReviewService) GetReview(ctx context.Context, bookID, id int64) (*models.Review, error) {
	args := m.Called(ctx, bookID, id)
	r0, _ := args.Get(0).(*models.Review)
	return r0, args.Error(1)
}

func (m *ReviewService) ListReviews(ctx context.Context, bookID int64) ([]models.Review, error) {
	args := m.Called(ctx, bookID)
	r0, _ := args.Get(0).([]models.Review)
	return r0, args.Error(1)
}

func (m *ReviewService) UpdateReview(ctx context.Context, bookID, id int64, userID uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, bookID, id, userID, req)
	r0, _ := args.Get(0).(*models.Review)
	return r0, args.Error(1)
}

func (m *ReviewService) DeleteReview(ctx context.Context, bookID, id int64, userID uuid.UUID) error {
	args := m.Called(ctx, bookID, id, userID)
	return args.Error(0)
}

func (m *ReviewService) AverageRating(ctx context.Context, bookID int64) (float64, error) {
	args := m.Called(ctx, bookID)
	r0, _ := args.Get(0).(float64)
	return r0, args.Error(1)
}
