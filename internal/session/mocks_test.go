package session_test

import (
	"context"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCartAPI struct {
	mock.Mock
}

func (m *mockCartAPI) cart(args mock.Arguments) (*models.Cart, error) {
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *mockCartAPI) GetCart(ctx context.Context) (*models.Cart, error) {
	return m.cart(m.Called(ctx))
}

func (m *mockCartAPI) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	return m.cart(m.Called(ctx, productID, quantity))
}

func (m *mockCartAPI) UpdateCartItem(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	return m.cart(m.Called(ctx, productID, quantity))
}

func (m *mockCartAPI) RemoveFromCart(ctx context.Context, productID uuid.UUID) (*models.Cart, error) {
	return m.cart(m.Called(ctx, productID))
}

func (m *mockCartAPI) ClearCart(ctx context.Context) (*models.Cart, error) {
	return m.cart(m.Called(ctx))
}

func (m *mockCartAPI) ApplyCoupon(ctx context.Context, code string) (*models.Cart, error) {
	return m.cart(m.Called(ctx, code))
}

func (m *mockCartAPI) RemoveCoupon(ctx context.Context) (*models.Cart, error) {
	return m.cart(m.Called(ctx))
}

type mockUserAPI struct {
	mock.Mock
}

func (m *mockUserAPI) user(args mock.Arguments) (*models.User, error) {
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return m.user(m.Called(ctx, req))
}

func (m *mockUserAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)

	return resp, args.Error(1)
}

func (m *mockUserAPI) Me(ctx context.Context) (*models.User, error) {
	return m.user(m.Called(ctx))
}

func (m *mockUserAPI) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	return m.user(m.Called(ctx, req))
}

func (m *mockUserAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockUserAPI) UpdateSubscription(ctx context.Context, userID uuid.UUID, req models.UpdateSubscriptionRequest) (*models.User, error) {
	return m.user(m.Called(ctx, userID, req))
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Charge(ctx context.Context, req session.PaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
