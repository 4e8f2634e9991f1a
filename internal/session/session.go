// Package session holds the client-side state of one signed-in storefront
// user: the bearer token, the cart and the subscription.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
)

// AuthAPI is the slice of the storefront client used for sign-in and profile
// changes.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
}

type Tokens interface {
	storefront.TokenSource
	SetToken(token string) error
	Clear() error
}

// Session ties the token, the user and both stores to the sign-in lifecycle.
// Logging in loads the user's subscription and cart; logging out discards
// them.
type Session struct {
	auth   AuthAPI
	tokens Tokens
	logger *slog.Logger

	Cart         *CartStore
	Subscription *SubscriptionStore

	mu   sync.RWMutex
	user *models.User
}

func New(auth AuthAPI, tokens Tokens, cart *CartStore, subscription *SubscriptionStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		auth:         auth,
		tokens:       tokens,
		logger:       logger.With(slog.String("component", "session")),
		Cart:         cart,
		Subscription: subscription,
	}
}

// User returns the signed-in user, nil when signed out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	u := *s.user

	return &u
}

func (s *Session) start(ctx context.Context, user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.Subscription.Initialize(user)

	if _, err := s.Cart.FetchCart(ctx); err != nil {
		s.logger.Warn("Could not load cart after sign-in", slog.String("error", err.Error()))
	}
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.auth.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if resp == nil || resp.Token == "" || resp.User == nil {
		message := "Login failed"
		if resp != nil && resp.Message != "" {
			message = resp.Message
		}

		return nil, &storefront.APIError{StatusCode: http.StatusUnauthorized, Message: message}
	}

	if err := s.tokens.SetToken(resp.Token); err != nil {
		return nil, err
	}

	s.start(ctx, resp.User)
	s.logger.Info("Signed in", slog.String("userId", resp.User.ID.String()))

	return s.User(), nil
}

// Register creates the account and signs in with the same credentials.
func (s *Session) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if _, err := s.auth.Register(ctx, req); err != nil {
		return nil, err
	}

	return s.Login(ctx, req.Email, req.Password)
}

// Restore resumes a session from a stored token. It returns nil when there is
// no token or the backend rejects it, in which case the token is dropped.
func (s *Session) Restore(ctx context.Context) (*models.User, error) {
	if _, ok := s.tokens.Token(); !ok {
		return nil, nil
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		var apiErr *storefront.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			s.logger.Info("Stored token rejected, signing out")
			return nil, s.Logout()
		}

		return nil, err
	}

	s.start(ctx, user)

	return s.User(), nil
}

// Logout drops the token and all user state.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.Cart.Reset()
	s.Subscription.Reset()

	return s.tokens.Clear()
}

func (s *Session) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if s.User() == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := s.auth.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return s.User(), nil
}

func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	if s.User() == nil {
		return ErrNotAuthenticated
	}

	return s.auth.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
}
