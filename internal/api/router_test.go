package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/api"
	"github.com/aaravmahajanofficial/nutricart/internal/api/handlers"
	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/services/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("router-test-key")

type routerFixture struct {
	users         *mocks.UserService
	products      *mocks.ProductService
	catalog       *mocks.CatalogService
	carts         *mocks.CartService
	orders        *mocks.OrderService
	subscriptions *mocks.SubscriptionService
	server        *httptest.Server
}

func setupRouter(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		users:         new(mocks.UserService),
		products:      new(mocks.ProductService),
		catalog:       new(mocks.CatalogService),
		carts:         new(mocks.CartService),
		orders:        new(mocks.OrderService),
		subscriptions: new(mocks.SubscriptionService),
	}

	mux := api.NewRouter(api.Handlers{
		Users:         handlers.NewUserHandler(f.users),
		Products:      handlers.NewProductHandler(f.products),
		Catalog:       handlers.NewCatalogHandler(f.catalog),
		Carts:         handlers.NewCartHandler(f.carts),
		Orders:        handlers.NewOrderHandler(f.orders),
		Subscriptions: handlers.NewSubscriptionHandler(f.subscriptions),
	}, middleware.NewAuthMiddleware(testKey), nil)

	f.server = httptest.NewServer(middleware.Logging(mux))
	t.Cleanup(f.server.Close)

	return f
}

func token(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Email:  "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	return signed
}

func (f *routerFixture) do(t *testing.T, method, path, bearer, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := setupRouter(t)
	id := uuid.New()

	f.products.On("GetProductByID", mock.Anything, id).Return(&models.Product{ID: id}, nil).Once()
	f.catalog.On("ListDietPlans", mock.Anything).Return([]models.DietPlan{}, nil).Once()

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/products/"+id.String(), "", "").StatusCode)

	resp := f.do(t, http.MethodGet, "/api/diet-plans", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	f.catalog.AssertExpectations(t)
}

func TestRouter_CartRequiresToken(t *testing.T) {
	f := setupRouter(t)

	resp := f.do(t, http.MethodGet, "/api/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/cart", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	f.carts.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestRouter_AuthenticatedCart(t *testing.T) {
	f := setupRouter(t)
	userID := uuid.New()
	productID := uuid.New()

	f.carts.On("RemoveItem", mock.Anything, userID, productID).Return(&models.Cart{UserID: userID}, nil).Once()
	f.carts.On("ClearCart", mock.Anything, userID).Return(&models.Cart{UserID: userID}, nil).Twice()

	bearer := token(t, userID)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/cart/remove/"+productID.String(), bearer, "").StatusCode)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/cart/clear", bearer, "").StatusCode)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/cart", bearer, "").StatusCode)

	f.carts.AssertExpectations(t)
}

func TestRouter_OwnerRoutes(t *testing.T) {
	f := setupRouter(t)
	userID := uuid.New()
	bearer := token(t, userID)

	f.orders.On("ListOrders", mock.Anything, userID, 1, 10).
		Return(models.NewPaginatedResponse([]*models.Order{}, 0, 1, 10), nil).Once()

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/users/"+userID.String()+"/orders", bearer, "").StatusCode)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/users/"+uuid.NewString()+"/orders", bearer, "").StatusCode)
	assert.Equal(t, http.StatusForbidden,
		f.do(t, http.MethodPut, "/api/users/"+uuid.NewString()+"/subscription", bearer, `{"tier":"pro"}`).StatusCode)

	f.orders.AssertExpectations(t)
}

func TestRouter_MethodAndMetrics(t *testing.T) {
	f := setupRouter(t)

	assert.Equal(t, http.StatusMethodNotAllowed, f.do(t, http.MethodPost, "/api/diet-plans", "", "").StatusCode)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/metrics", "", "").StatusCode)
}
