package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: utils.NewValidator()}
}

// Register godoc
//	@Summary		Register a new user
//	@Description	Creates the account and its profile, then emails a verification link.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.User
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or passwords do not match"
//	@Failure		409		{object}	response.ErrorResponse	"Username or email already registered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("User registration failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// VerifyEmail godoc
//	@Summary	Verify an email address
//	@Tags		Users
//	@Produce	json
//	@Param		token	path		string	true	"Verification token from the email"
//	@Success	200		{object}	models.MessageResponse
//	@Failure	400		{object}	response.ErrorResponse	"Invalid token"
//	@Router		/verify/{token} [get]
func (h *UserHandler) VerifyEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.userService.VerifyEmail(r.Context(), r.PathValue("token")); err != nil {
			logger.Warn("Email verification failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Email verified")
		response.Success(w, http.StatusOK, models.MessageResponse{Message: "Email verified successfully"})
	}
}

// Login godoc
//	@Summary		Obtain a JWT
//	@Description	Attempts are rate limited per email; a blocked client receives 429 with a Retry-After header.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest	true	"Email and password"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many login attempts"
//	@Router			/token [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message).
					WithDetail(fmt.Sprintf("retry after %d seconds", resp.RetryAfter)))
				return
			}

			logger.Warn("Invalid login credentials", slog.String("email", req.Email), slog.Int("remainingTries", resp.RemainingTries))
			response.Error(w, errors.UnauthorizedError(resp.Message).
				WithDetail(fmt.Sprintf("%d attempts remaining", resp.RemainingTries)))
			return
		}

		logger.Info("User logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

// RefreshToken godoc
//	@Summary	Exchange a refresh token for a new access token
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		refresh	body		models.RefreshTokenRequest	true	"Refresh token from /token"
//	@Success	200		{object}	models.LoginResponse
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Failure	401		{object}	response.ErrorResponse	"Invalid or expired refresh token"
//	@Router		/token/refresh [post]
func (h *UserHandler) RefreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RefreshTokenRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.RefreshToken(r.Context(), req.Refresh)
		if err != nil {
			logger.Warn("Token refresh failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Access token refreshed")
		response.Success(w, http.StatusOK, resp)
	}
}

// RequestPasswordReset godoc
//	@Summary		Request a password reset link
//	@Description	Always answers with the same message so callers cannot probe which emails are registered.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.PasswordResetRequest	true	"Account email"
//	@Success		200		{object}	models.MessageResponse
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/password-reset [post]
func (h *UserHandler) RequestPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.PasswordResetRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.RequestPasswordReset(r.Context(), req.Email); err != nil {
			logger.Error("Password reset request failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.MessageResponse{Message: service.PasswordResetMessage})
	}
}

// ConfirmPasswordReset godoc
//	@Summary	Set a new password with a reset link
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		uid		path		string								true	"Encoded user ID from the link"
//	@Param		token	path		string								true	"Reset token from the link"
//	@Param		request	body		models.PasswordResetConfirmRequest	true	"New password"
//	@Success	200		{object}	models.MessageResponse
//	@Failure	400		{object}	response.ErrorResponse	"Invalid token or password"
//	@Router		/password-reset-confirm/{uid}/{token} [post]
func (h *UserHandler) ConfirmPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.PasswordResetConfirmRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		err := h.userService.ConfirmPasswordReset(r.Context(), r.PathValue("uid"), r.PathValue("token"), req.NewPassword)
		if err != nil {
			logger.Warn("Password reset confirmation failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password reset completed")
		response.Success(w, http.StatusOK, models.MessageResponse{Message: "Password has been reset."})
	}
}

// GetProfile godoc
//	@Summary	Get the current user's profile
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	models.Profile
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure	404	{object}	response.ErrorResponse	"Profile not found"
//	@Security	BearerAuth
//	@Router		/profile [get]
func (h *UserHandler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		profile, err := h.userService.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Failed to get profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// UpdateProfile godoc
//	@Summary	Update address and phone
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		profile	body		models.UpdateProfileRequest	true	"Fields to change"
//	@Success	200		{object}	models.Profile
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Security	BearerAuth
//	@Router		/profile [put]
func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.userService.UpdateProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to update profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Profile updated")
		response.Success(w, http.StatusOK, profile)
	}
}
