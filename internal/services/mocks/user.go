package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func NewUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserService {
	m := &UserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*models.User)
	return r0, args.Error(1)
}

func (m *UserService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*models.LoginResponse)
	return r0, args.Error(1)
}

func (m *UserService) RefreshToken(ctx context.Context, refresh string) (*models.LoginResponse, error) {
	args := m.Called(ctx, refresh)
	r0, _ := args.Get(0).(*models.LoginResponse)
	return r0, args.Error(1)
}

func (m *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserService) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	args := m.Called(ctx, uid, token, newPassword)
	return args.Error(0)
}

func (m *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*models.Profile)
	return r0, args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	r0, _ := args.Get(0).(*models.Profile)
	return r0, args.Error(1)
}
