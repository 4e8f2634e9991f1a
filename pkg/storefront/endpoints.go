package storefront

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
)

// Page is one page of a paginated listing.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type ProductQuery struct {
	CategoryID int64
	Search     string
	Page       int
	PageSize   int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.CategoryID > 0 {
		v.Set("category", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	return v
}

// auth

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return send[*models.User](ctx, c, http.MethodPost, "/auth/register", req)
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return send[*models.LoginResponse](ctx, c, http.MethodPost, "/auth/login", req)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	return get[*models.User](ctx, c, "/auth/me", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	return send[*models.User](ctx, c, http.MethodPut, "/auth/profile", req)
}

func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/change-password", nil, req, nil)
}

// catalog

func (c *Client) ListDietPlans(ctx context.Context) ([]models.DietPlan, error) {
	return get[[]models.DietPlan](ctx, c, "/diet-plans", nil)
}

func (c *Client) GetDietPlan(ctx context.Context, id uuid.UUID) (*models.DietPlan, error) {
	return get[*models.DietPlan](ctx, c, "/diet-plans/"+id.String(), nil)
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*Page[models.Product], error) {
	return get[*Page[models.Product]](ctx, c, "/products", q.values())
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return get[*models.Product](ctx, c, "/products/"+id.String(), nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return get[[]models.Category](ctx, c, "/categories", nil)
}

func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return get[[]models.Recipe](ctx, c, "/recipes", nil)
}

func (c *Client) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return get[*models.Recipe](ctx, c, "/recipes/"+id.String(), nil)
}

func (c *Client) ListPartnerships(ctx context.Context) ([]models.Partnership, error) {
	return get[[]models.Partnership](ctx, c, "/partnerships", nil)
}

func (c *Client) GetPartnership(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	return get[*models.Partnership](ctx, c, "/partnerships/"+id.String(), nil)
}

func (c *Client) Recommend(ctx context.Context, profile models.UserProfile) (*models.RecommendationResult, error) {
	return send[*models.RecommendationResult](ctx, c, http.MethodPost, "/recommendations", profile)
}

// cart

func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	return get[*models.Cart](ctx, c, "/cart", nil)
}

func (c *Client) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	return send[*models.Cart](ctx, c, http.MethodPost, "/cart/add", models.AddItemRequest{ProductID: productID, Quantity: quantity})
}

func (c *Client) UpdateCartItem(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	return send[*models.Cart](ctx, c, http.MethodPut, "/cart/update", models.UpdateQuantityRequest{ProductID: productID, Quantity: quantity})
}

func (c *Client) RemoveFromCart(ctx context.Context, productID uuid.UUID) (*models.Cart, error) {
	return send[*models.Cart](ctx, c, http.MethodDelete, "/cart/remove/"+productID.String(), nil)
}

func (c *Client) ClearCart(ctx context.Context) (*models.Cart, error) {
	return send[*models.Cart](ctx, c, http.MethodPost, "/cart/clear", nil)
}

func (c *Client) ApplyCoupon(ctx context.Context, code string) (*models.Cart, error) {
	return send[*models.Cart](ctx, c, http.MethodPost, "/cart/apply-coupon", models.ApplyCouponRequest{Code: code})
}

func (c *Client) RemoveCoupon(ctx context.Context) (*models.Cart, error) {
	return send[*models.Cart](ctx, c, http.MethodPost, "/cart/remove-coupon", nil)
}

// orders and subscription

func (c *Client) CreateOrder(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error) {
	return send[*models.Order](ctx, c, http.MethodPost, "/users/"+userID.String()+"/orders", req)
}

func (c *Client) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*Page[models.Order], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	return get[*Page[models.Order]](ctx, c, "/users/"+userID.String()+"/orders", q)
}

func (c *Client) UpdateSubscription(ctx context.Context, userID uuid.UUID, req models.UpdateSubscriptionRequest) (*models.User, error) {
	return send[*models.User](ctx, c, http.MethodPut, "/users/"+userID.String()+"/subscription", req)
}
