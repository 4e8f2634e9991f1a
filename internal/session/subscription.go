package session

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/access"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
)

const refreshTimeout = 10 * time.Second

// SubscriptionAPI is the slice of the storefront client the subscription
// store uses.
type SubscriptionAPI interface {
	UpdateSubscription(ctx context.Context, userID uuid.UUID, req models.UpdateSubscriptionRequest) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
}

// SubscriptionStore holds the signed-in user's subscription.
//
// Persisting a change to the backend is best-effort: when it fails the local
// state keeps the change and a background refresh of the user is logged, so
// the client and the server can disagree until the next sign-in.
type SubscriptionStore struct {
	api      SubscriptionAPI
	payments PaymentProcessor
	currency string
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	userID uuid.UUID
	email  string
	sub    models.Subscription

	wg sync.WaitGroup
}

func NewSubscriptionStore(api SubscriptionAPI, payments PaymentProcessor, currency string, logger *slog.Logger) *SubscriptionStore {
	if logger == nil {
		logger = slog.Default()
	}

	s := &SubscriptionStore{
		api:      api,
		payments: payments,
		currency: currency,
		logger:   logger.With(slog.String("component", "subscription")),
		now:      time.Now,
	}
	s.sub = defaultSubscription()

	return s
}

func defaultSubscription() models.Subscription {
	return models.Subscription{
		Tier:     models.TierFree,
		IsActive: true,
		Features: access.Features(models.TierFree),
	}
}

// Initialize loads the subscription carried by user, or a free active one.
func (s *SubscriptionStore) Initialize(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.userID, s.email = uuid.Nil, ""
		s.sub = defaultSubscription()

		return
	}

	s.userID, s.email = user.ID, user.Email

	if user.Subscription == nil {
		s.sub = defaultSubscription()
		return
	}

	s.sub = cloneSubscription(*user.Subscription)
	s.sub.Tier = models.ParseTier(string(s.sub.Tier))
	if len(s.sub.Features) == 0 {
		s.sub.Features = access.Features(s.sub.Tier)
	}
}

// Reset returns the store to the signed-out state.
func (s *SubscriptionStore) Reset() {
	s.Initialize(nil)
}

// Upgrade charges for target and replaces the subscription with a fresh one
// month term. A failed charge leaves the subscription unchanged.
func (s *SubscriptionStore) Upgrade(ctx context.Context, target models.Tier) (models.Subscription, error) {
	if target != models.TierPremium && target != models.TierPro {
		return s.Current(), ErrInvalidTier
	}

	s.mu.RLock()
	userID, email := s.userID, s.email
	s.mu.RUnlock()

	if userID == uuid.Nil {
		return s.Current(), ErrNotAuthenticated
	}

	ref, err := s.payments.Charge(ctx, PaymentRequest{
		UserID:   userID,
		Email:    email,
		Tier:     target,
		Amount:   access.MonthlyPrice(target),
		Currency: s.currency,
	})
	if err != nil {
		s.logger.Warn("Subscription payment failed", slog.String("tier", string(target)), slog.String("error", err.Error()))
		return s.Current(), err
	}

	start := s.now()
	end := start.AddDate(0, 1, 0)

	sub := models.Subscription{
		Tier:             target,
		StartDate:        &start,
		EndDate:          &end,
		IsActive:         true,
		Features:         access.Features(target),
		PaymentReference: ref,
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	s.logger.Info("Subscription upgraded", slog.String("tier", string(target)), slog.String("paymentReference", ref))

	s.persist(ctx, userID, sub)

	return s.Current(), nil
}

// Cancel marks the subscription inactive, keeping its tier and dates.
func (s *SubscriptionStore) Cancel(ctx context.Context) (models.Subscription, error) {
	s.mu.Lock()
	if s.userID == uuid.Nil {
		s.mu.Unlock()
		return s.Current(), ErrNotAuthenticated
	}

	userID := s.userID
	s.sub.IsActive = false
	sub := cloneSubscription(s.sub)
	s.mu.Unlock()

	s.logger.Info("Subscription cancelled", slog.String("tier", string(sub.Tier)))

	s.persist(ctx, userID, sub)

	return s.Current(), nil
}

func (s *SubscriptionStore) persist(ctx context.Context, userID uuid.UUID, sub models.Subscription) {
	_, err := s.api.UpdateSubscription(ctx, userID, models.UpdateSubscriptionRequest{
		Tier:             sub.Tier,
		StartDate:        sub.StartDate,
		EndDate:          sub.EndDate,
		IsActive:         sub.IsActive,
		PaymentReference: sub.PaymentReference,
	})
	if err == nil {
		return
	}

	s.logger.Error("Failed to persist subscription, keeping local state",
		slog.String("tier", string(sub.Tier)),
		slog.String("error", err.Error()),
	)

	s.wg.Add(1)
	go s.refresh(context.WithoutCancel(ctx), sub)
}

// refresh re-reads the user and logs whether the server caught up with the
// local subscription. It never overwrites local state.
func (s *SubscriptionStore) refresh(ctx context.Context, local models.Subscription) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("Subscription refresh failed", slog.String("error", err.Error()))
		return
	}

	if user == nil || user.Subscription == nil {
		s.logger.Warn("Server has no subscription for user", slog.String("localTier", string(local.Tier)))
		return
	}

	if user.Subscription.Tier != local.Tier || user.Subscription.IsActive != local.IsActive {
		s.logger.Warn("Server subscription differs from local state",
			slog.String("localTier", string(local.Tier)),
			slog.String("serverTier", string(user.Subscription.Tier)),
			slog.Bool("localActive", local.IsActive),
			slog.Bool("serverActive", user.Subscription.IsActive),
		)

		return
	}

	s.logger.Debug("Subscription refresh matches local state")
}

// Wait blocks until background refreshes have finished.
func (s *SubscriptionStore) Wait() {
	s.wg.Wait()
}

func (s *SubscriptionStore) Current() models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneSubscription(s.sub)
}

func (s *SubscriptionStore) Features() models.FeatureMap {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.sub.Features)
}

func (s *SubscriptionStore) CanAccess(contentTier models.Tier) bool {
	sub := s.Current()
	return access.CanAccessContent(&sub, contentTier)
}

func (s *SubscriptionStore) HasFeature(f models.Feature) bool {
	sub := s.Current()
	return access.HasFeature(&sub, f)
}

func cloneSubscription(sub models.Subscription) models.Subscription {
	out := sub
	out.Features = maps.Clone(sub.Features)

	if sub.StartDate != nil {
		start := *sub.StartDate
		out.StartDate = &start
	}

	if sub.EndDate != nil {
		end := *sub.EndDate
		out.EndDate = &end
	}

	return out
}
