package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/nutricart/internal/access"
	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/aaravmahajanofficial/nutricart/pkg/sendgrid"
	"github.com/google/uuid"
)

type SubscriptionService interface {
	UpdateSubscription(ctx context.Context, userID uuid.UUID, req *models.UpdateSubscriptionRequest) (*models.User, error)
}

type subscriptionService struct {
	users repository.UserRepository
	email sendgrid.EmailService
}

func NewSubscriptionService(users repository.UserRepository, email sendgrid.EmailService) SubscriptionService {
	return &subscriptionService{users: users, email: email}
}

// UpdateSubscription stores the supplied subscription as is, except for the
// feature map which is always derived from the tier. Payment is taken by the
// client, so the tier is trusted and PaymentReference is recorded unverified.
func (s *subscriptionService) UpdateSubscription(ctx context.Context, userID uuid.UUID, req *models.UpdateSubscriptionRequest) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)

	if !req.Tier.Valid() {
		return nil, appErrors.ValidationError("Unknown subscription tier")
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, appErrors.ValidationError("Subscription end date must not precede its start date")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	previous := models.TierFree
	if user.Subscription != nil {
		previous = user.Subscription.Tier
	}

	sub := &models.Subscription{
		Tier:             req.Tier,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		IsActive:         req.IsActive,
		Features:         access.Features(req.Tier),
		PaymentReference: req.PaymentReference,
	}

	if err := s.users.UpdateSubscription(ctx, userID, sub); err != nil {
		return nil, appErrors.DatabaseError("Failed to update subscription").WithError(err)
	}

	user.Subscription = sub

	metrics.RecordSubscriptionUpdate(string(sub.Tier), sub.IsActive)

	logger.Info("Subscription updated",
		slog.String("from", string(previous)),
		slog.String("to", string(sub.Tier)),
		slog.Bool("active", sub.IsActive),
	)

	if previous != sub.Tier {
		s.sendReceipt(ctx, user)
	}

	return user, nil
}

func (s *subscriptionService) sendReceipt(ctx context.Context, user *models.User) {
	sub := user.Subscription

	content := fmt.Sprintf("Hi %s,\n\nYou are now on the %s plan at %s per month.", user.Name, sub.Tier, access.MonthlyPrice(sub.Tier).StringFixed(2))
	if sub.PaymentReference != "" {
		content += fmt.Sprintf("\nPayment reference: %s", sub.PaymentReference)
	}

	if sub.EndDate != nil {
		content += fmt.Sprintf("\nRenews on %s.", sub.EndDate.Format("2 Jan 2006"))
	}

	msg := &models.EmailMessage{
		To:      user.Email,
		Subject: "Your NutriCart subscription",
		Content: content,
	}

	if err := s.email.Send(ctx, msg); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to send subscription receipt", slog.String("error", err.Error()))
	}
}
