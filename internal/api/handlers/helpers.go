package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/aaravmahajanofficial/nutricart/internal/utils/response"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// authenticated returns the caller's claims, writing a 401 when the request
// did not pass through the auth middleware.
func authenticated(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Warn("Missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}

// owner is authenticated plus a check that the {id} path value names the
// caller.
func owner(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := authenticated(w, r)
	if !ok {
		return nil, false
	}

	id, err := utils.ParseID(r, "id")
	if err != nil {
		response.Error(w, err)
		return nil, false
	}

	if id != claims.UserID {
		middleware.LoggerFromContext(r.Context()).Warn("Attempted to access another user's resource",
			slog.String("requesterId", claims.UserID.String()),
			slog.String("ownerId", id.String()),
		)
		response.Error(w, errors.ForbiddenError("You don't have permission to access this resource"))

		return nil, false
	}

	return claims, true
}
