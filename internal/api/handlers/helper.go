package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/aaravmahajanofficial/bookstore-api/internal/models"
	"github.com/aaravmahajanofficial/bookstore-api/internal/utils/response"
)

// requireClaims writes 401 and returns false when the request carries no
// authenticated user.
func requireClaims(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.Claims, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized access attempt: missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}
