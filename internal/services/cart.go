package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	opAdd          = "add"
	opUpdate       = "update"
	opRemove       = "remove"
	opClear        = "clear"
	opApplyCoupon  = "apply_coupon"
	opRemoveCoupon = "remove_coupon"
)

var hundred = decimal.NewFromInt(100)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, req *models.ApplyCouponRequest) (*models.Cart, error)
	RemoveCoupon(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	coupons  repository.CouponRepository
	now      func() time.Time
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, coupons repository.CouponRepository) CartService {
	return &cartService{
		carts:    carts,
		products: products,
		coupons:  coupons,
		now:      time.Now,
	}
}

// loadCart returns the user's cart, creating an empty one on first use.
func (s *cartService) loadCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartItem{},
	}

	if err := s.carts.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Cart created", slog.String("cartId", cart.ID.String()))

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon := cart.CouponCode

	if err := s.price(ctx, cart); err != nil {
		return nil, err
	}

	// save a dropped coupon so later reads don't repeat the lookup
	if cart.CouponCode != coupon {
		if err := s.carts.UpdateCart(ctx, cart); err != nil {
			return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}
	}

	return cart, nil
}

// mutate runs change against the current cart, reprices it and saves it.
func (s *cartService) mutate(ctx context.Context, op string, userID uuid.UUID, change func(*models.Cart) error) (cart *models.Cart, err error) {
	defer func() { metrics.RecordCartMutation(op, err) }()

	cart, err = s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err = change(cart); err != nil {
		return nil, err
	}

	if err = s.price(ctx, cart); err != nil {
		return nil, err
	}

	if err = s.carts.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// availableProduct loads productID and checks that quantity units can be sold.
func (s *cartService) availableProduct(ctx context.Context, productID uuid.UUID, quantity int) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Status != models.ProductStatusActive {
		return nil, appErrors.BadRequestError("Product is not available")
	}

	if quantity > product.StockQuantity {
		return nil, appErrors.InsufficientStockError(product.Name).
			WithDetail(fmt.Sprintf("%d in stock", product.StockQuantity))
	}

	return product, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	return s.mutate(ctx, opAdd, userID, func(cart *models.Cart) error {
		quantity := req.Quantity

		idx := cart.FindItem(req.ProductID)
		if idx >= 0 {
			quantity += cart.Items[idx].Quantity
		}

		product, err := s.availableProduct(ctx, req.ProductID, quantity)
		if err != nil {
			return err
		}

		if idx >= 0 {
			cart.Items[idx].Quantity = quantity
			cart.Items[idx].UnitPrice = product.Price
			cart.Items[idx].Name = product.Name

			return nil
		}

		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})

		return nil
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	return s.mutate(ctx, opUpdate, userID, func(cart *models.Cart) error {
		idx := cart.FindItem(req.ProductID)
		if idx < 0 {
			return appErrors.NotFoundError("Item not found in the cart")
		}

		if req.Quantity <= 0 {
			cart.Items = removeAt(cart.Items, idx)
			return nil
		}

		product, err := s.availableProduct(ctx, req.ProductID, req.Quantity)
		if err != nil {
			return err
		}

		cart.Items[idx].Quantity = req.Quantity
		cart.Items[idx].UnitPrice = product.Price

		return nil
	})
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, opRemove, userID, func(cart *models.Cart) error {
		idx := cart.FindItem(productID)
		if idx < 0 {
			return appErrors.NotFoundError("Item not found in the cart")
		}

		cart.Items = removeAt(cart.Items, idx)

		return nil
	})
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, opClear, userID, func(cart *models.Cart) error {
		cart.Items = []models.CartItem{}
		cart.CouponCode = ""

		return nil
	})
}

func (s *cartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, req *models.ApplyCouponRequest) (*models.Cart, error) {
	return s.mutate(ctx, opApplyCoupon, userID, func(cart *models.Cart) error {
		coupon, err := s.lookupCoupon(ctx, req.Code)
		if err != nil {
			return err
		}

		if err := checkCoupon(coupon, subtotal(cart.Items), s.now()); err != nil {
			return err
		}

		cart.CouponCode = coupon.Code

		return nil
	})
}

func (s *cartService) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, opRemoveCoupon, userID, func(cart *models.Cart) error {
		cart.CouponCode = ""
		return nil
	})
}

func (s *cartService) lookupCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.coupons.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.InvalidCouponError("Invalid coupon code")
		}

		return nil, appErrors.DatabaseError("Failed to fetch coupon").WithError(err)
	}

	return coupon, nil
}

// price recomputes line totals, subtotal, discount and total. A coupon that no
// longer applies is dropped from the cart.
func (s *cartService) price(ctx context.Context, cart *models.Cart) error {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	for i := range cart.Items {
		cart.Items[i].LineTotal = cart.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(cart.Items[i].Quantity)))
	}

	cart.Subtotal = subtotal(cart.Items)
	cart.Discount = decimal.Zero

	if cart.CouponCode != "" {
		coupon, err := s.lookupCoupon(ctx, cart.CouponCode)
		if err != nil && !appErrors.HasCode(err, appErrors.ErrCodeInvalidCoupon) {
			return err
		}

		if err == nil {
			err = checkCoupon(coupon, cart.Subtotal, s.now())
		}

		if err != nil {
			middleware.LoggerFromContext(ctx).Info("Dropping coupon that no longer applies",
				slog.String("coupon", cart.CouponCode),
				slog.String("reason", err.Error()),
			)

			cart.CouponCode = ""
		} else {
			cart.Discount = discount(coupon, cart.Subtotal)
		}
	}

	cart.Total = cart.Subtotal.Sub(cart.Discount)
	if cart.Total.IsNegative() {
		cart.Total = decimal.Zero
	}

	return nil
}

func subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return sum
}

func checkCoupon(coupon *models.Coupon, amount decimal.Decimal, now time.Time) error {
	switch {
	case !coupon.Active:
		return appErrors.InvalidCouponError("Coupon is no longer active")
	case coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom):
		return appErrors.InvalidCouponError("Coupon is not valid yet")
	case coupon.ValidTo != nil && now.After(*coupon.ValidTo):
		return appErrors.InvalidCouponError("Coupon has expired")
	case amount.LessThan(coupon.MinOrderValue):
		return appErrors.InvalidCouponError(fmt.Sprintf("Minimum order value of %s not met", coupon.MinOrderValue.StringFixed(2)))
	}

	return nil
}

// discount never exceeds amount. Percent discounts round to paise.
func discount(coupon *models.Coupon, amount decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal

	switch coupon.DiscountType {
	case models.DiscountPercent:
		d = amount.Mul(coupon.DiscountValue).Div(hundred).Round(2)
	case models.DiscountFlat:
		d = coupon.DiscountValue
	default:
		return decimal.Zero
	}

	if d.GreaterThan(amount) {
		return amount
	}

	return d
}

func removeAt(items []models.CartItem, idx int) []models.CartItem {
	return append(items[:idx], items[idx+1:]...)
}
