package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	service "github.com/aaravmahajanofficial/bookstore-api/internal/services"
	"github.com/aaravmahajanofficial/bookstore-api/internal/services/mocks"
	"github.com/aaravmahajanofficial/bookstore-api/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {

	t.Run("Success - User Registered", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)
		userID := uuid.New()

		body := `{"username":"ursula","email":"ursula@example.com","password":"earthsea1","password2":"earthsea1"}`

		userService.On("Register", mock.Anything, &models.RegisterRequest{
			Username:  "ursula",
			Email:     "ursula@example.com",
			Password:  "earthsea1",
			Password2: "earthsea1",
		}).Return(&models.User{ID: userID, Username: "ursula", Email: "ursula@example.com", Password: "hash"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/register", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hash")

		var user models.User
		require.NoError(t, testutils.DecodeData(rr.Body.Bytes(), &user))
		assert.Equal(t, userID, user.ID)
	})

	t.Run("Failure - Short Password", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		body := `{"username":"ursula","email":"ursula@example.com","password":"short","password2":"short"}`

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/register", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, rr).Code)
		userService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		body := `{"username":"ursula","email":"ursula@example.com","password":"earthsea1","password2":"earthsea1"}`

		userService.On("Register", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("A user with that username or email already exists")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/register", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, decodeError(t, rr).Code)
	})
}

func TestVerifyEmail(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("VerifyEmail", mock.Anything, "abc123").Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/verify/abc123", nil, map[string]string{"token": "abc123"})
		rr := httptest.NewRecorder()

		handler.VerifyEmail().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unknown Token", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("VerifyEmail", mock.Anything, "nope").Return(appErrors.InvalidTokenError("Invalid verification token")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/verify/nope", nil, map[string]string{"token": "nope"})
		rr := httptest.NewRecorder()

		handler.VerifyEmail().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInvalidToken, decodeError(t, rr).Code)
	})
}

func TestLogin(t *testing.T) {
	body := `{"email":"ursula@example.com","password":"earthsea1"}`
	loginReq := &models.LoginRequest{Email: "ursula@example.com", Password: "earthsea1"}

	t.Run("Success - Token Issued", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, loginReq).
			Return(&models.LoginResponse{Success: true, Token: "jwt", ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, testutils.DecodeData(rr.Body.Bytes(), &resp))
		assert.Equal(t, "jwt", resp.Token)
		assert.Equal(t, 86400, resp.ExpiresIn)
	})

	t.Run("Failure - Bad Credentials", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, loginReq).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 2}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		errResp := decodeError(t, rr)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, errResp.Code)
		assert.Equal(t, "Invalid email or password", errResp.Message)
		assert.Equal(t, []string{"2 attempts remaining"}, errResp.Details)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, loginReq).
			Return(&models.LoginResponse{Success: false, Message: "Too many login attempts", RetryAfter: 42}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "42", rr.Header().Get("Retry-After"))

		errResp := decodeError(t, rr)
		assert.Equal(t, []string{"retry after 42 seconds"}, errResp.Details)
	})

	t.Run("Failure - Limiter Unavailable", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, loginReq).Return(nil, appErrors.ThirdPartyError("Rate limiter unavailable")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token", bytes.NewBufferString(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, appErrors.ErrCodeThirdPartyError, decodeError(t, rr).Code)
	})
}

func TestRefreshToken(t *testing.T) {

	t.Run("Success - Access Token Issued", func(t *testing.T) {
		// Arrange
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("RefreshToken", mock.Anything, "refresh-jwt").
			Return(&models.LoginResponse{Success: true, Token: "access-jwt", ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token/refresh",
			bytes.NewBufferString(`{"refresh":"refresh-jwt"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.RefreshToken().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, testutils.DecodeData(rr.Body.Bytes(), &resp))
		assert.Equal(t, "access-jwt", resp.Token)
		assert.Empty(t, resp.RefreshToken)
	})

	t.Run("Failure - Missing Refresh", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token/refresh", bytes.NewBufferString(`{}`), nil)
		rr := httptest.NewRecorder()

		handler.RefreshToken().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		userService.AssertNotCalled(t, "RefreshToken", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Expired Refresh", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("RefreshToken", mock.Anything, "stale").
			Return(nil, appErrors.UnauthorizedError("Invalid or expired refresh token")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/token/refresh", bytes.NewBufferString(`{"refresh":"stale"}`), nil)
		rr := httptest.NewRecorder()

		handler.RefreshToken().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid or expired refresh token", decodeError(t, rr).Message)
	})
}

func TestPasswordReset(t *testing.T) {

	t.Run("Request - Same Message", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("RequestPasswordReset", mock.Anything, "ghost@example.com").Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/password-reset",
			bytes.NewBufferString(`{"email":"ghost@example.com"}`), nil)
		rr := httptest.NewRecorder()

		handler.RequestPasswordReset().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var msg models.MessageResponse
		require.NoError(t, testutils.DecodeData(rr.Body.Bytes(), &msg))
		assert.Equal(t, service.PasswordResetMessage, msg.Message)
	})

	t.Run("Confirm - Success", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("ConfirmPasswordReset", mock.Anything, "dWlk", "tok", "newpassword").Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/password-reset-confirm/dWlk/tok",
			bytes.NewBufferString(`{"new_password":"newpassword"}`), map[string]string{"uid": "dWlk", "token": "tok"})
		rr := httptest.NewRecorder()

		handler.ConfirmPasswordReset().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Confirm - Invalid Token", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("ConfirmPasswordReset", mock.Anything, "dWlk", "used", "newpassword").
			Return(appErrors.InvalidTokenError("Invalid token")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/password-reset-confirm/dWlk/used",
			bytes.NewBufferString(`{"new_password":"newpassword"}`), map[string]string{"uid": "dWlk", "token": "used"})
		rr := httptest.NewRecorder()

		handler.ConfirmPasswordReset().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid token", decodeError(t, rr).Message)
	})
}

func TestProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("Get - Requires Auth", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/profile", nil, nil)
		rr := httptest.NewRecorder()

		handler.GetProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Update - Success", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(req *models.UpdateProfileRequest) bool {
			return req.Address != nil && *req.Address == "12 Main St" && req.Phone == nil
		})).Return(&models.Profile{UserID: userID, Address: "12 Main St"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/profile",
			bytes.NewBufferString(`{"address":"12 Main St"}`), userID, nil)
		rr := httptest.NewRecorder()

		handler.UpdateProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var profile models.Profile
		require.NoError(t, testutils.DecodeData(rr.Body.Bytes(), &profile))
		assert.Equal(t, "12 Main St", profile.Address)
	})

	t.Run("Update - Phone Too Long", func(t *testing.T) {
		userService := mocks.NewUserService(t)
		handler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/profile",
			bytes.NewBufferString(`{"phone":"123456789012345678901"}`), userID, nil)
		rr := httptest.NewRecorder()

		handler.UpdateProfile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
