package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	service "github.com/aaravmahajanofficial/nutricart/internal/services"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/aaravmahajanofficial/nutricart/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CartHandler serves the caller's own cart. Every response carries the whole
// cart with server-computed totals.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// cartAction authenticates the caller and writes the cart returned by run.
func (h *CartHandler) cartAction(action string, run func(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := authenticated(w, r)
		if !ok {
			return
		}

		cart, err := run(w, r, claims.UserID)
		if errors.Is(err, errBodyWritten) {
			return
		}

		if err != nil {
			logger.Warn("Cart "+action+" failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Debug("Cart "+action, slog.Int("items", cart.ItemCount()), slog.String("total", cart.Total.StringFixed(2)))
		response.Success(w, http.StatusOK, cart)
	}
}

// errBodyWritten reports that the error response was already written.
var errBodyWritten = errors.New("response already written")

// withBody decodes and validates T before handing it to run. Validation
// failures are written by ParseAndValidate.
func withBody[T any](w http.ResponseWriter, r *http.Request, v *validator.Validate, run func(*T) (*models.Cart, error)) (*models.Cart, error) {
	var req T
	if !utils.ParseAndValidate(r, w, &req, v) {
		return nil, errBodyWritten
	}

	return run(&req)
}

// GetCart godoc
//
//	@Summary	Get the cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.Cart
//	@Failure	401	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return h.cartAction("get", func(_ http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		return h.cartService.GetCart(r.Context(), userID)
	})
}

// AddItem godoc
//
//	@Summary		Add a product
//	@Description	Adds quantity units of a product. Adding a product already in the cart increases its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Insufficient stock"
//	@Security		BearerAuth
//	@Router			/cart/add [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return h.cartAction("add", func(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		return withBody(w, r, h.validator, func(req *models.AddItemRequest) (*models.Cart, error) {
			return h.cartService.AddItem(r.Context(), userID, req)
		})
	})
}

// UpdateQuantity godoc
//
//	@Summary		Set a line quantity
//	@Description	A quantity of zero or below removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Product and quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		404		{object}	response.ErrorResponse	"Item not in cart"
//	@Security		BearerAuth
//	@Router			/cart/update [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return h.cartAction("update", func(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		return withBody(w, r, h.validator, func(req *models.UpdateQuantityRequest) (*models.Cart, error) {
			return h.cartService.UpdateQuantity(r.Context(), userID, req)
		})
	})
}

// RemoveItem godoc
//
//	@Summary	Remove a product
//	@Tags		Cart
//	@Produce	json
//	@Param		productId	path		string	true	"Product ID"	Format(uuid)
//	@Success	200			{object}	models.Cart
//	@Failure	404			{object}	response.ErrorResponse	"Item not in cart"
//	@Security	BearerAuth
//	@Router		/cart/remove/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return h.cartAction("remove", func(_ http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			return nil, err
		}

		return h.cartService.RemoveItem(r.Context(), userID, productID)
	})
}

// ClearCart godoc
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.Cart
//	@Security	BearerAuth
//	@Router		/cart/clear [post]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return h.cartAction("clear", func(_ http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		return h.cartService.ClearCart(r.Context(), userID)
	})
}

// ApplyCoupon godoc
//
//	@Summary	Apply a coupon
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		coupon	body		models.ApplyCouponRequest	true	"Coupon code"
//	@Success	200		{object}	models.Cart
//	@Failure	400		{object}	response.ErrorResponse	"Coupon rejected"
//	@Security	BearerAuth
//	@Router		/cart/apply-coupon [post]
func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return h.cartAction("apply coupon", func(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		return withBody(w, r, h.validator, func(req *models.ApplyCouponRequest) (*models.Cart, error) {
			return h.cartService.ApplyCoupon(r.Context(), userID, req)
		})
	})
}

// RemoveCoupon godoc
//
//	@Summary	Remove the coupon
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.Cart
//	@Security	BearerAuth
//	@Router		/cart/remove-coupon [post]
func (h *CartHandler) RemoveCoupon() http.HandlerFunc {
	return h.cartAction("remove coupon", func(_ http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Cart, error) {
		return h.cartService.RemoveCoupon(r.Context(), userID)
	})
}
