package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User, verificationToken string) error {
	args := m.Called(ctx, user, verificationToken)
	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	r0, _ := args.Get(0).(*models.User)
	return r0, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.User)
	return r0, args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*models.Profile)
	return r0, args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *UserRepository) VerifyEmail(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	r0, _ := args.Get(0).(uuid.UUID)
	return r0, args.Error(1)
}

type LoginLimiter struct {
	mock.Mock
}

func NewLoginLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *LoginLimiter {
	m := &LoginLimiter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *LoginLimiter) Attempt(ctx context.Context, email string) (repository.RateLimit, error) {
	args := m.Called(ctx, email)
	r0, _ := args.Get(0).(repository.RateLimit)
	return r0, args.Error(1)
}

type ResetTokenRepository struct {
	mock.Mock
}

func NewResetTokenRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ResetTokenRepository {
	m := &ResetTokenRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ResetTokenRepository) SaveResetToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, ttl)
	return args.Error(0)
}

func (m *ResetTokenRepository) ConsumeResetToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}
