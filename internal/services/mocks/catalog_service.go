package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*models.PaginatedResponse)

	return resp, args.Error(1)
}

func (m *ProductService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*models.Category)

	return categories, args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListDietPlans(ctx context.Context) ([]models.DietPlan, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]models.DietPlan)

	return plans, args.Error(1)
}

func (m *CatalogService) GetDietPlan(ctx context.Context, id uuid.UUID) (*models.DietPlan, error) {
	args := m.Called(ctx, id)
	plan, _ := args.Get(0).(*models.DietPlan)

	return plan, args.Error(1)
}

func (m *CatalogService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	args := m.Called(ctx)
	recipes, _ := args.Get(0).([]models.Recipe)

	return recipes, args.Error(1)
}

func (m *CatalogService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	recipe, _ := args.Get(0).(*models.Recipe)

	return recipe, args.Error(1)
}

func (m *CatalogService) ListPartnerships(ctx context.Context) ([]models.Partnership, error) {
	args := m.Called(ctx)
	partnerships, _ := args.Get(0).([]models.Partnership)

	return partnerships, args.Error(1)
}

func (m *CatalogService) GetPartnership(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	args := m.Called(ctx, id)
	partnership, _ := args.Get(0).(*models.Partnership)

	return partnership, args.Error(1)
}

func (m *CatalogService) Recommend(ctx context.Context, profile *models.UserProfile) (*models.RecommendationResult, error) {
	args := m.Called(ctx, profile)
	result, _ := args.Get(0).(*models.RecommendationResult)

	return result, args.Error(1)
}
