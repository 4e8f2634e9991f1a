package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	service "github.com/aaravmahajanofficial/nutricart/internal/services"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/aaravmahajanofficial/nutricart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	validator           *validator.Validate
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, validator: validator.New()}
}

// UpdateSubscription godoc
//
//	@Summary		Replace the caller's subscription
//	@Description	Stores the supplied subscription. The feature map is derived from the tier and any supplied one is ignored.
//	@Tags			Subscription
//	@Accept			json
//	@Produce		json
//	@Param			id				path		string								true	"User ID (must be the caller)"	Format(uuid)
//	@Param			subscription	body		models.UpdateSubscriptionRequest	true	"New subscription"
//	@Success		200				{object}	models.User
//	@Failure		400				{object}	response.ErrorResponse
//	@Failure		403				{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id}/subscription [put]
func (h *SubscriptionHandler) UpdateSubscription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := owner(w, r)
		if !ok {
			return
		}

		var req models.UpdateSubscriptionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.subscriptionService.UpdateSubscription(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update subscription", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
