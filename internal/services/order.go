package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/aaravmahajanofficial/nutricart/pkg/sendgrid"
	"github.com/google/uuid"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error)
}

type orderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	carts  CartService
	email  sendgrid.EmailService
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, carts CartService, email sendgrid.EmailService) OrderService {
	return &orderService{orders: orders, users: users, carts: carts, email: email}
}

// CreateOrder turns the caller's priced cart into a confirmed order. Stock is
// reserved and the cart emptied in the same transaction as the insert.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.EmptyCartError()
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, models.OrderItem(item))
	}

	address := req.ShippingAddress
	address.Street = utils.SanitizeText(address.Street)
	address.City = utils.SanitizeText(address.City)
	address.State = utils.SanitizeText(address.State)
	address.PostalCode = utils.SanitizeText(address.PostalCode)

	order := &models.Order{
		ID:               uuid.New(),
		UserID:           userID,
		Status:           models.OrderStatusConfirmed,
		Items:            items,
		Subtotal:         cart.Subtotal,
		Discount:         cart.Discount,
		Total:            cart.Total,
		CouponCode:       cart.CouponCode,
		ShippingAddress:  address,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	}

	if err := s.orders.CreateOrder(ctx, order, cart.ID); err != nil {
		var stockErr *repository.StockError
		if errors.As(err, &stockErr) {
			return nil, appErrors.InsufficientStockError(stockErr.Name).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.RecordOrderPlaced()

	logger.Info("Order placed",
		slog.String("orderId", order.ID.String()),
		slog.String("total", order.Total.StringFixed(2)),
		slog.Int("lines", len(order.Items)),
	)

	s.sendConfirmation(ctx, order)

	return order, nil
}

// sendConfirmation is best-effort: a failed email never fails the order.
func (s *orderService) sendConfirmation(ctx context.Context, order *models.Order) {
	logger := middleware.LoggerFromContext(ctx)

	user, err := s.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Skipping order confirmation email", slog.String("error", err.Error()))
		return
	}

	var body strings.Builder

	fmt.Fprintf(&body, "Hi %s,\n\nThanks for your order %s.\n\n", user.Name, order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&body, "%d x %s  %s\n", item.Quantity, item.Name, item.LineTotal.StringFixed(2))
	}

	if order.Discount.IsPositive() {
		fmt.Fprintf(&body, "\nDiscount (%s): -%s", order.CouponCode, order.Discount.StringFixed(2))
	}

	fmt.Fprintf(&body, "\nTotal: %s\n", order.Total.StringFixed(2))

	msg := &models.EmailMessage{
		To:      user.Email,
		Subject: "Your NutriCart order is confirmed",
		Content: body.String(),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		logger.Warn("Failed to send order confirmation", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}
}

func (s *orderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// Another user's order is reported as missing.
	if order.UserID != userID {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error) {
	orders, total, err := s.orders.ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return models.NewPaginatedResponse(orders, total, page, pageSize), nil
}
