package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/nutricart/internal/api/handlers"
	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	_ "github.com/aaravmahajanofficial/nutricart/internal/docs"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Users         *handlers.UserHandler
	Products      *handlers.ProductHandler
	Catalog       *handlers.CatalogHandler
	Carts         *handlers.CartHandler
	Orders        *handlers.OrderHandler
	Subscriptions *handlers.SubscriptionHandler
}

// NewRouter registers every route. Health is optional so tests can build a
// router without live backing services.
func NewRouter(h Handlers, auth *middleware.AuthMiddleware, health http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// auth
	mux.HandleFunc("POST /api/auth/register", h.Users.Register())
	mux.HandleFunc("POST /api/auth/login", h.Users.Login())
	mux.HandleFunc("GET /api/auth/me", auth.Authenticate(h.Users.Me()))
	mux.HandleFunc("PUT /api/auth/profile", auth.Authenticate(h.Users.UpdateProfile()))
	mux.HandleFunc("POST /api/auth/change-password", auth.Authenticate(h.Users.ChangePassword()))

	// catalog
	mux.HandleFunc("GET /api/products", h.Products.ListProducts())
	mux.HandleFunc("GET /api/products/{id}", h.Products.GetProduct())
	mux.HandleFunc("GET /api/categories", h.Products.ListCategories())
	mux.HandleFunc("GET /api/diet-plans", h.Catalog.ListDietPlans())
	mux.HandleFunc("GET /api/diet-plans/{id}", h.Catalog.GetDietPlan())
	mux.HandleFunc("GET /api/recipes", h.Catalog.ListRecipes())
	mux.HandleFunc("GET /api/recipes/{id}", h.Catalog.GetRecipe())
	mux.HandleFunc("GET /api/partnerships", h.Catalog.ListPartnerships())
	mux.HandleFunc("GET /api/partnerships/{id}", h.Catalog.GetPartnership())
	mux.HandleFunc("POST /api/recommendations", h.Catalog.Recommend())

	// cart
	mux.HandleFunc("GET /api/cart", auth.Authenticate(h.Carts.GetCart()))
	mux.HandleFunc("DELETE /api/cart", auth.Authenticate(h.Carts.ClearCart()))
	mux.HandleFunc("POST /api/cart/add", auth.Authenticate(h.Carts.AddItem()))
	mux.HandleFunc("PUT /api/cart/update", auth.Authenticate(h.Carts.UpdateQuantity()))
	mux.HandleFunc("DELETE /api/cart/remove/{productId}", auth.Authenticate(h.Carts.RemoveItem()))
	mux.HandleFunc("POST /api/cart/clear", auth.Authenticate(h.Carts.ClearCart()))
	mux.HandleFunc("POST /api/cart/apply-coupon", auth.Authenticate(h.Carts.ApplyCoupon()))
	mux.HandleFunc("POST /api/cart/remove-coupon", auth.Authenticate(h.Carts.RemoveCoupon()))

	// orders and subscription
	mux.HandleFunc("POST /api/users/{id}/orders", auth.Authenticate(h.Orders.CreateOrder()))
	mux.HandleFunc("GET /api/users/{id}/orders", auth.Authenticate(h.Orders.ListOrders()))
	mux.HandleFunc("GET /api/users/{id}/orders/{orderId}", auth.Authenticate(h.Orders.GetOrder()))
	mux.HandleFunc("PUT /api/users/{id}/subscription", auth.Authenticate(h.Subscriptions.UpdateSubscription()))

	// ops
	if health != nil {
		mux.Handle("GET /health", health)
	}
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return mux
}
