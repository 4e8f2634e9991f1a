package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, userID, page, pageSize)
	resp, _ := args.Get(0).(*models.PaginatedResponse)

	return resp, args.Error(1)
}
