package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]*models.Product)

	return products, args.Int(1), args.Error(2)
}

func (m *ProductRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*models.Category)

	return categories, args.Error(1)
}

func (m *ProductRepository) FindIDsByName(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	args := m.Called(ctx, names)
	ids, _ := args.Get(0).(map[string]uuid.UUID)

	return ids, args.Error(1)
}
