package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/events"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetMessage is returned whether or not the email is registered.
const PasswordResetMessage = "If an account with that email exists, a password reset link has been sent."

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	RefreshToken(ctx context.Context, refresh string) (*models.LoginResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
}

type userService struct {
	userRepo    repository.UserRepository
	rateLimiter repository.LoginLimiter
	resetTokens repository.ResetTokenRepository
	publisher   events.Publisher
	jwtKey      []byte
	tokenTTL    time.Duration
	refreshTTL  time.Duration
	resetTTL    time.Duration
	parser      *jwt.Parser
	publicURL   string
}

func NewUserService(
	userRepo repository.UserRepository,
	rateLimiter repository.LoginLimiter,
	resetTokens repository.ResetTokenRepository,
	publisher events.Publisher,
	cfg *config.Config,
) UserService {
	return &userService{
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
		resetTokens: resetTokens,
		publisher:   publisher,
		jwtKey:      []byte(cfg.Security.JWTKey),
		tokenTTL:    time.Duration(cfg.Security.JWTExpiryHours) * time.Hour,
		refreshTTL:  cfg.Security.RefreshTokenTTL,
		resetTTL:    cfg.Security.ResetTokenTTL,
		publicURL:   strings.TrimRight(cfg.PublicURL, "/"),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithAudience(models.RefreshTokenAudience),
		),
	}
}

// randomToken returns 2*n hex characters from crypto/rand.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func DecodeUID(uid string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(uid, "="))
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(string(raw))
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	if req.Password != req.Password2 {
		return nil, errors.FieldError("password", "Password fields didn't match.")
	}

	if len(req.Password) < 8 {
		return nil, errors.FieldError("password", "must be at least 8 characters")
	}

	username := utils.StripHTML(req.Username)
	if username == "" {
		return nil, errors.FieldError("username", "cannot be empty")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	token, err := randomToken(16)
	if err != nil {
		return nil, errors.InternalError("Failed to generate verification token").WithError(err)
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashedPassword),
	}

	if err := s.userRepo.CreateUser(ctx, user, token); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.DuplicateEntryError("Username or email already registered").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	s.publish(ctx, user.ID, events.UserRegistered, events.UserRegisteredPayload{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		VerifyURL: fmt.Sprintf("%s/api/v1/verify/%s", s.publicURL, token),
	})

	return user, nil
}

// VerifyEmail consumes the token; a second call with the same token fails.
func (s *userService) VerifyEmail(ctx context.Context, token string) error {

	if token == "" {
		return errors.InvalidTokenError("Invalid token")
	}

	if _, err := s.userRepo.VerifyEmail(ctx, token); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.InvalidTokenError("Invalid token").WithError(err)
		}
		return errors.DatabaseError("Failed to verify email").WithError(err)
	}

	return nil
}

// Login applies the per-email rate limit before checking credentials. A
// rejected attempt comes back as an unsuccessful response, not an error.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	limit, err := s.rateLimiter.Attempt(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !limit.Allowed {
		middleware.LoggerFromContext(ctx).Warn("Login rate limit exceeded",
			slog.String("email", req.Email),
			slog.Int64("attempts", limit.Attempts),
			slog.Duration("retryAfter", limit.RetryAfter))

		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: int(math.Ceil(limit.RetryAfter.Seconds())),
		}, nil
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: limit.Remaining,
		}, nil
	}

	access, err := s.signToken(user, models.AccessTokenAudience, s.tokenTTL)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	refresh, err := s.signToken(user, models.RefreshTokenAudience, s.refreshTTL)
	if err != nil {
		return nil, errors.InternalError("Failed to generate refresh token").WithError(err)
	}

	return &models.LoginResponse{
		Success:      true,
		Token:        access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.tokenTTL.Seconds()),
	}, nil
}

// RefreshToken trades a valid refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *userService) RefreshToken(ctx context.Context, refresh string) (*models.LoginResponse, error) {

	claims := &models.Claims{}
	if _, err := s.parser.ParseWithClaims(refresh, claims, func(*jwt.Token) (any, error) {
		return s.jwtKey, nil
	}); err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired refresh token").WithError(err)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.UnauthorizedError("Invalid or expired refresh token").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	access, err := s.signToken(user, models.AccessTokenAudience, s.tokenTTL)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     access,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *userService) signToken(user *models.User, audience string, ttl time.Duration) (string, error) {

	now := time.Now()
	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
}

// RequestPasswordReset never reveals whether the email is registered: an
// unknown email returns nil just like a known one.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {

	logger := middleware.LoggerFromContext(ctx)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	token, err := randomToken(20)
	if err != nil {
		return errors.InternalError("Failed to generate reset token").WithError(err)
	}

	if err := s.resetTokens.SaveResetToken(ctx, user.ID, token, s.resetTTL); err != nil {
		return errors.ThirdPartyError("Failed to store reset token").WithError(err)
	}

	s.publish(ctx, user.ID, events.PasswordResetRequested, events.PasswordResetPayload{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		ResetURL: fmt.Sprintf("%s/api/v1/password-reset-confirm/%s/%s", s.publicURL, EncodeUID(user.ID), token),
	})

	return nil
}

func (s *userService) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {

	if len(newPassword) < 8 {
		return errors.FieldError("new_password", "must be at least 8 characters")
	}

	userID, err := DecodeUID(uid)
	if err != nil || token == "" {
		return errors.InvalidTokenError("Invalid token")
	}

	valid, err := s.resetTokens.ConsumeResetToken(ctx, userID, token)
	if err != nil {
		return errors.ThirdPartyError("Failed to validate reset token").WithError(err)
	}

	if !valid {
		return errors.InvalidTokenError("Invalid token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.InternalError("Failed to secure password").WithError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.InvalidTokenError("Invalid token").WithError(err)
		}
		return errors.DatabaseError("Failed to update password").WithError(err)
	}

	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {

	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Profile not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch profile").WithError(err)
	}

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		profile.Address = utils.StripHTML(*req.Address)
	}

	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
		if len(profile.Phone) > 20 {
			return nil, errors.FieldError("phone", "must be at most 20 characters")
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Profile not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return profile, nil
}

// publish hands an account event to the broker. Email delivery is
// asynchronous, so a failure here is logged and never fails the request.
func (s *userService) publish(ctx context.Context, userID uuid.UUID, t events.Type, payload any) {

	logger := middleware.LoggerFromContext(ctx)

	event, err := events.New(t, payload)
	if err == nil {
		err = s.publisher.Publish(ctx, userID.String(), event)
	}

	if err != nil {
		logger.Error("Failed to publish account event", slog.String("type", string(t)), slog.String("userId", userID.String()), slog.Any("error", err))
		metrics.RecordPublishFailure(string(t))
	}
}
