package service

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/google/uuid"
)

type WishlistService interface {
	GetWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error)
	AddBook(ctx context.Context, userID uuid.UUID, bookID int64) error
	RemoveBook(ctx context.Context, userID uuid.UUID, bookID int64) error
	ReplaceBooks(ctx context.Context, userID uuid.UUID, bookIDs []int64) (*models.Wishlist, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	bookRepo     repository.BookRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, bookRepo repository.BookRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo, bookRepo: bookRepo}
}

func (s *wishlistService) wishlistFor(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {

	wishlist, err := s.wishlistRepo.GetOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to retrieve wishlist").WithError(err)
	}

	return wishlist, nil
}

func (s *wishlistService) ensureBook(ctx context.Context, bookID int64) error {

	exists, err := s.bookRepo.BookExists(ctx, bookID)
	if err != nil {
		return errors.DatabaseError("Failed to fetch book").WithError(err)
	}

	if !exists {
		return errors.NotFoundError("Book not found")
	}

	return nil
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {

	wishlist, err := s.wishlistFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	books, err := s.wishlistRepo.ListWishlistBooks(ctx, wishlist.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to retrieve wishlist books").WithError(err)
	}

	if books == nil {
		books = []models.Book{}
	}

	wishlist.Books = books

	return wishlist, nil
}

// AddBook is idempotent: adding a book twice leaves one entry.
func (s *wishlistService) AddBook(ctx context.Context, userID uuid.UUID, bookID int64) error {

	if err := s.ensureBook(ctx, bookID); err != nil {
		return err
	}

	wishlist, err := s.wishlistFor(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.AddWishlistBook(ctx, wishlist.ID, bookID); err != nil {
		return errors.DatabaseError("Failed to add book to wishlist").WithError(err)
	}

	return nil
}

func (s *wishlistService) RemoveBook(ctx context.Context, userID uuid.UUID, bookID int64) error {

	if err := s.ensureBook(ctx, bookID); err != nil {
		return err
	}

	wishlist, err := s.wishlistFor(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.RemoveWishlistBook(ctx, wishlist.ID, bookID); err != nil {
		return errors.DatabaseError("Failed to remove book from wishlist").WithError(err)
	}

	return nil
}

// ReplaceBooks swaps the whole set. Duplicate ids collapse to one entry.
func (s *wishlistService) ReplaceBooks(ctx context.Context, userID uuid.UUID, bookIDs []int64) (*models.Wishlist, error) {

	seen := make(map[int64]struct{}, len(bookIDs))
	unique := make([]int64, 0, len(bookIDs))

	for _, id := range bookIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	wishlist, err := s.wishlistFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.ReplaceWishlistBooks(ctx, wishlist.ID, unique); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, errors.NotFoundError("One or more books do not exist").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update wishlist").WithError(err)
	}

	return s.GetWishlist(ctx, userID)
}
