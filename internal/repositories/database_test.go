package repository_test

import (
	"testing"

	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	db, mock := newMockDB(t)

	repos := repository.NewRepositories(db)

	assert.Same(t, db, repos.DB)
	assert.NotNil(t, repos.Author)
	assert.NotNil(t, repos.Category)
	assert.NotNil(t, repos.Book)
	assert.NotNil(t, repos.Review)
	assert.NotNil(t, repos.Cart)
	assert.NotNil(t, repos.Wishlist)
	assert.NotNil(t, repos.Order)
	assert.NotNil(t, repos.User)
	assert.NotNil(t, repos.Notification)
	assert.NotNil(t, repos.Checkout)

	mock.ExpectClose()
	assert.NoError(t, repos.Close())
}
