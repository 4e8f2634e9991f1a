package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	service "github.com/aaravmahajanofficial/nutricart/internal/services"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/aaravmahajanofficial/nutricart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder godoc
//
//	@Summary		Place an order
//	@Description	Creates an order from the caller's current cart, reserves stock and empties the cart. Requires authentication.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID (must be the caller)"	Format(uuid)
//	@Param			order	body		models.CreateOrderRequest	true	"Shipping and payment details"
//	@Success		201		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse	"Not the caller's account"
//	@Failure		409		{object}	response.ErrorResponse	"Insufficient stock"
//	@Security		BearerAuth
//	@Router			/users/{id}/orders [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := owner(w, r)
		if !ok {
			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//
//	@Summary	Get one of the caller's orders
//	@Tags		Orders
//	@Produce	json
//	@Param		id		path		string	true	"User ID"	Format(uuid)
//	@Param		orderId	path		string	true	"Order ID"	Format(uuid)
//	@Success	200		{object}	models.Order
//	@Failure	403		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/users/{id}/orders/{orderId} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := owner(w, r)
		if !ok {
			return
		}

		orderID, err := utils.ParseID(r, "orderId")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), claims.UserID, orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary	List the caller's orders, newest first
//	@Tags		Orders
//	@Produce	json
//	@Param		id			path		string	true	"User ID"	Format(uuid)
//	@Param		page		query		int		false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int		false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.Order}
//	@Failure	403			{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id}/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := owner(w, r)
		if !ok {
			return
		}

		page, pageSize := utils.ParsePagination(r, defaultPageSize, maxPageSize)

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
