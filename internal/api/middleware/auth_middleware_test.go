package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("bookstore-test-signing-key-0001")

func signToken(t *testing.T, claims *models.Claims, key []byte, method jwt.SigningMethod) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func readerClaims(userID uuid.UUID, ttl time.Duration) *models.Claims {
	now := time.Now()
	return &models.Claims{
		UserID: userID,
		Email:  "reader@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{models.AccessTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func refreshClaims(userID uuid.UUID) *models.Claims {
	claims := readerClaims(userID, time.Hour)
	claims.Audience = jwt.ClaimStrings{models.RefreshTokenAudience}
	return claims
}

func TestAuthenticate(t *testing.T) {
	auth := middleware.NewAuthMiddleware(signingKey)
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Success - Valid Token",
			header:     "Bearer " + signToken(t, readerClaims(userID, time.Hour), signingKey, jwt.SigningMethodHS256),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "Fail - Missing Header",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Authorization header is required",
		},
		{
			name:       "Fail - Basic Scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid authorization format",
		},
		{
			name:       "Fail - Empty Bearer",
			header:     "Bearer   ",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid authorization format",
		},
		{
			name:       "Fail - Malformed Token",
			header:     "Bearer abc.def.ghi",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "Fail - Foreign Signing Key",
			header:     "Bearer " + signToken(t, readerClaims(userID, time.Hour), []byte("another-key-entirely-000000000"), jwt.SigningMethodHS256),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "Fail - HS512 Not Accepted",
			header:     "Bearer " + signToken(t, readerClaims(userID, time.Hour), signingKey, jwt.SigningMethodHS512),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "Fail - Expired",
			header:     "Bearer " + signToken(t, readerClaims(userID, -time.Minute), signingKey, jwt.SigningMethodHS256),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "Fail - Refresh Token As Bearer",
			header:     "Bearer " + signToken(t, refreshClaims(userID), signingKey, jwt.SigningMethodHS256),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "Fail - No Expiry Claim",
			header:     "Bearer " + signToken(t, &models.Claims{UserID: userID}, signingKey, jwt.SigningMethodHS256),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or expired token",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				claims, ok := middleware.ClaimsFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, userID, claims.UserID)
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			// Act
			auth.Authenticate(next).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantMsg == "", called)

			if tc.wantMsg != "" {
				var body struct {
					Success bool `json:"success"`
					Error   struct {
						Code    string `json:"code"`
						Message string `json:"message"`
					} `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.False(t, body.Success)
				assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
				assert.Equal(t, tc.wantMsg, body.Error.Message)
			}
		})
	}
}

func TestContextHelpers(t *testing.T) {
	t.Run("Claims round trip", func(t *testing.T) {
		claims := &models.Claims{UserID: uuid.New()}

		got, ok := middleware.ClaimsFromContext(middleware.WithClaims(context.Background(), claims))

		require.True(t, ok)
		assert.Same(t, claims, got)
	})

	t.Run("No claims", func(t *testing.T) {
		_, ok := middleware.ClaimsFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("Logger falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), middleware.LoggerFromContext(context.Background()))
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.LoggerFromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})

	t.Run("Generates request id", func(t *testing.T) {
		buf.Reset()
		rr := httptest.NewRecorder()

		middleware.Logging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/books/9", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		id := rr.Header().Get(middleware.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"correlation_id":"`+id+`"`)
		assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	})

	t.Run("Propagates request id and logs outcome", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books/9", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rr := httptest.NewRecorder()

		middleware.Logging(next).ServeHTTP(rr, req)

		assert.Equal(t, "req-123", rr.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), `"level":"WARN","msg":"Request completed"`)
		assert.Contains(t, buf.String(), `"http_status":404`)
		assert.Contains(t, buf.String(), `"bytes":7`)
	})
}
