package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type claimsKey struct{}

const bearerPrefix = "Bearer "

type AuthMiddleware struct {
	jwtKey []byte
	parser *jwt.Parser
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{
		jwtKey: jwtKey,
		// only HS256 tokens are ever issued by the account service
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithAudience(models.AccessTokenAudience),
		),
	}
}

// Authenticate rejects requests without a valid bearer token. On success the
// claims and a logger tagged with the user id are added to the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		tokenString, appErr := bearerToken(r)
		if appErr != nil {
			logger.Warn("Rejected authorization header", slog.String("reason", appErr.Message))
			response.Error(w, appErr)
			return
		}

		claims, err := m.parse(tokenString)
		if err != nil {
			logger.Warn("JWT validation failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		userLogger := logger.With(slog.String("userId", claims.UserID.String()))
		userLogger.Debug("User authenticated")

		ctx := WithClaims(r.Context(), claims)
		ctx = WithLogger(ctx, userLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) parse(tokenString string) (*models.Claims, error) {

	claims := &models.Claims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.jwtKey, nil
	}); err != nil {
		return nil, err
	}

	return claims, nil
}

func bearerToken(r *http.Request) (string, *errors.AppError) {

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.UnauthorizedError("Authorization header is required")
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errors.UnauthorizedError("Invalid authorization format")
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", errors.UnauthorizedError("Invalid authorization format")
	}

	return token, nil
}

func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*models.Claims)
	return claims, ok && claims != nil
}
