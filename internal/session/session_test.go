package session_test

import (
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/session"
	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	users  *mockUserAPI
	carts  *mockCartAPI
	tokens *session.TokenStore
	sess   *session.Session
}

func setupSession(tokens *session.TokenStore) *sessionFixture {
	f := &sessionFixture{
		users:  new(mockUserAPI),
		carts:  new(mockCartAPI),
		tokens: tokens,
	}

	cart := session.NewCartStore(f.carts, tokens, nil)
	subscription := session.NewSubscriptionStore(f.users, new(mockPayments), "inr", nil)
	f.sess = session.New(f.users, tokens, cart, subscription, nil)

	return f
}

func premiumUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        "asha@example.com",
		Name:         "Asha",
		Subscription: &models.Subscription{Tier: models.TierPremium, IsActive: true},
	}
}

func TestSession_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := setupSession(signedOut(t))
		user := premiumUser()
		productID := uuid.New()

		f.users.On("Login", mock.Anything, models.LoginRequest{Email: "asha@example.com", Password: "secret1"}).
			Return(&models.LoginResponse{Success: true, Token: "jwt-1", User: user}, nil).Once()
		f.carts.On("GetCart", mock.Anything).Return(cartWith(productID, 3, "30.00"), nil).Once()

		got, err := f.sess.Login(t.Context(), "asha@example.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		token, ok := f.tokens.Token()
		assert.True(t, ok)
		assert.Equal(t, "jwt-1", token)
		assert.Equal(t, models.TierPremium, f.sess.Subscription.Current().Tier)
		assert.Equal(t, 3, f.sess.Cart.ItemCount())
		f.carts.AssertExpectations(t)
	})

	t.Run("Cart Failure Does Not Fail Login", func(t *testing.T) {
		f := setupSession(signedOut(t))

		f.users.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: true, Token: "jwt-1", User: premiumUser()}, nil).Once()
		f.carts.On("GetCart", mock.Anything).Return(nil, assert.AnError).Once()

		_, err := f.sess.Login(t.Context(), "asha@example.com", "secret1")

		require.NoError(t, err)
		assert.NotNil(t, f.sess.User())
		assert.Equal(t, 0, f.sess.Cart.ItemCount())
	})

	t.Run("No Token In Response", func(t *testing.T) {
		f := setupSession(signedOut(t))

		f.users.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Message: "Invalid email or password"}, nil).Once()

		_, err := f.sess.Login(t.Context(), "asha@example.com", "wrong")

		var apiErr *storefront.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid email or password", session.UserMessage(err))

		_, ok := f.tokens.Token()
		assert.False(t, ok)
		assert.Nil(t, f.sess.User())
	})

	t.Run("Backend Error", func(t *testing.T) {
		f := setupSession(signedOut(t))

		f.users.On("Login", mock.Anything, mock.Anything).
			Return(nil, &storefront.APIError{StatusCode: http.StatusTooManyRequests, Message: "Too many login attempts"}).Once()

		_, err := f.sess.Login(t.Context(), "asha@example.com", "secret1")

		assert.Equal(t, "Too many login attempts", session.UserMessage(err))
		f.carts.AssertNotCalled(t, "GetCart", mock.Anything)
	})
}

func TestSession_Register(t *testing.T) {
	f := setupSession(signedOut(t))
	req := models.RegisterRequest{Email: "asha@example.com", Password: "secret1", Name: "Asha"}
	user := &models.User{ID: uuid.New(), Email: req.Email, Name: req.Name}

	f.users.On("Register", mock.Anything, req).Return(user, nil).Once()
	f.users.On("Login", mock.Anything, models.LoginRequest{Email: req.Email, Password: req.Password}).
		Return(&models.LoginResponse{Token: "jwt-2", User: user}, nil).Once()
	f.carts.On("GetCart", mock.Anything).Return(&models.Cart{ID: uuid.New()}, nil).Once()

	got, err := f.sess.Register(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, models.TierFree, f.sess.Subscription.Current().Tier)
	f.users.AssertExpectations(t)
}

func TestSession_Logout(t *testing.T) {
	f := setupSession(signedIn(t))

	f.users.On("Login", mock.Anything, mock.Anything).
		Return(&models.LoginResponse{Token: "jwt-1", User: premiumUser()}, nil).Once()
	f.carts.On("GetCart", mock.Anything).Return(cartWith(uuid.New(), 2, "10.00"), nil).Once()

	_, err := f.sess.Login(t.Context(), "asha@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, f.sess.Logout())

	_, ok := f.tokens.Token()
	assert.False(t, ok)
	assert.Nil(t, f.sess.User())
	assert.Nil(t, f.sess.Cart.Cart())
	assert.Equal(t, models.TierFree, f.sess.Subscription.Current().Tier)
}

func TestSession_Restore(t *testing.T) {
	t.Run("No Token", func(t *testing.T) {
		f := setupSession(signedOut(t))

		user, err := f.sess.Restore(t.Context())

		require.NoError(t, err)
		assert.Nil(t, user)
		f.users.AssertNotCalled(t, "Me", mock.Anything)
	})

	t.Run("Valid Token", func(t *testing.T) {
		f := setupSession(signedIn(t))
		user := premiumUser()

		f.users.On("Me", mock.Anything).Return(user, nil).Once()
		f.carts.On("GetCart", mock.Anything).Return(&models.Cart{ID: uuid.New()}, nil).Once()

		got, err := f.sess.Restore(t.Context())

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.True(t, f.sess.Subscription.CanAccess(models.TierPremium))
	})

	t.Run("Rejected Token Signs Out", func(t *testing.T) {
		f := setupSession(signedIn(t))

		f.users.On("Me", mock.Anything).
			Return(nil, &storefront.APIError{StatusCode: http.StatusUnauthorized, Message: "Token expired"}).Once()

		user, err := f.sess.Restore(t.Context())

		require.NoError(t, err)
		assert.Nil(t, user)

		_, ok := f.tokens.Token()
		assert.False(t, ok)
	})

	t.Run("Network Error Keeps Token", func(t *testing.T) {
		f := setupSession(signedIn(t))

		f.users.On("Me", mock.Anything).
			Return(nil, &storefront.NetworkError{Method: http.MethodGet, Path: "/auth/me", Err: assert.AnError}).Once()

		_, err := f.sess.Restore(t.Context())

		require.Error(t, err)
		_, ok := f.tokens.Token()
		assert.True(t, ok)
	})
}

func TestSession_RequiresSignIn(t *testing.T) {
	f := setupSession(signedOut(t))
	name := "Asha"

	_, err := f.sess.UpdateProfile(t.Context(), models.UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	err = f.sess.ChangePassword(t.Context(), "old", "newpass")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	f.users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}
