package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartAPI is the slice of the storefront client the cart store uses.
type CartAPI interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, productID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context) (*models.Cart, error)
	ApplyCoupon(ctx context.Context, code string) (*models.Cart, error)
	RemoveCoupon(ctx context.Context) (*models.Cart, error)
}

// CartStore mirrors the signed-in user's server cart. Every successful call
// replaces the local cart with the server's; totals are never computed
// locally.
//
// Requests may overlap. Each one takes a sequence number when issued and its
// response is applied only if no later-issued response has been applied
// already.
type CartStore struct {
	api    CartAPI
	tokens storefront.TokenSource
	logger *slog.Logger

	mu      sync.Mutex
	cart    *models.Cart
	issued  uint64
	applied uint64
}

func NewCartStore(api CartAPI, tokens storefront.TokenSource, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CartStore{api: api, tokens: tokens, logger: logger.With(slog.String("component", "cart"))}
}

func (s *CartStore) authenticated() bool {
	_, ok := s.tokens.Token()
	return ok
}

func (s *CartStore) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++

	return s.issued
}

// apply installs cart if seq is newer than the last applied response and
// returns the resulting local cart.
func (s *CartStore) apply(op string, seq uint64, cart *models.Cart) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		s.logger.Debug("Discarding stale cart response",
			slog.String("op", op),
			slog.Uint64("seq", seq),
			slog.Uint64("applied", s.applied),
		)

		return cloneCart(s.cart)
	}

	s.applied = seq
	s.cart = cloneCart(cart)

	return cloneCart(s.cart)
}

func (s *CartStore) mutate(ctx context.Context, op string, call func(context.Context) (*models.Cart, error)) (*models.Cart, error) {
	if !s.authenticated() {
		return nil, ErrNotAuthenticated
	}

	seq := s.next()

	cart, err := call(ctx)
	if err != nil {
		s.logger.Warn("Cart request failed", slog.String("op", op), slog.String("error", err.Error()))
		return nil, err
	}

	return s.apply(op, seq, cart), nil
}

// FetchCart loads the server cart. Signed out, it empties the local cart and
// returns nil.
func (s *CartStore) FetchCart(ctx context.Context) (*models.Cart, error) {
	if !s.authenticated() {
		s.Reset()
		return nil, nil
	}

	return s.mutate(ctx, "fetch", s.api.GetCart)
}

// AddToCart adds quantity units; anything below 1 adds a single unit.
func (s *CartStore) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	return s.mutate(ctx, "add", func(ctx context.Context) (*models.Cart, error) {
		return s.api.AddToCart(ctx, productID, quantity)
	})
}

// UpdateCartItem sends quantity as is. Callers route quantities below 1 to
// RemoveFromCart.
func (s *CartStore) UpdateCartItem(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	return s.mutate(ctx, "update", func(ctx context.Context) (*models.Cart, error) {
		return s.api.UpdateCartItem(ctx, productID, quantity)
	})
}

func (s *CartStore) RemoveFromCart(ctx context.Context, productID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, "remove", func(ctx context.Context) (*models.Cart, error) {
		return s.api.RemoveFromCart(ctx, productID)
	})
}

func (s *CartStore) ClearCart(ctx context.Context) (*models.Cart, error) {
	return s.mutate(ctx, "clear", s.api.ClearCart)
}

func (s *CartStore) ApplyCoupon(ctx context.Context, code string) (*models.Cart, error) {
	return s.mutate(ctx, "apply_coupon", func(ctx context.Context) (*models.Cart, error) {
		return s.api.ApplyCoupon(ctx, code)
	})
}

func (s *CartStore) RemoveCoupon(ctx context.Context) (*models.Cart, error) {
	return s.mutate(ctx, "remove_coupon", s.api.RemoveCoupon)
}

// Cart returns a copy of the local cart, nil before the first fetch.
func (s *CartStore) Cart() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneCart(s.cart)
}

func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return 0
	}

	return s.cart.ItemCount()
}

// Total is the server-supplied total of the local cart.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return decimal.Zero
	}

	return s.cart.Total
}

// Reset drops the local cart. Responses to requests issued before the reset
// are discarded.
func (s *CartStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.applied = s.issued
}

func cloneCart(c *models.Cart) *models.Cart {
	if c == nil {
		return nil
	}

	out := *c
	out.Items = append([]models.CartItem(nil), c.Items...)

	return &out
}
