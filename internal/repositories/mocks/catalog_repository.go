package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListDietPlans(ctx context.Context) ([]models.DietPlan, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]models.DietPlan)

	return plans, args.Error(1)
}

func (m *CatalogRepository) GetDietPlanByID(ctx context.Context, id uuid.UUID) (*models.DietPlan, error) {
	args := m.Called(ctx, id)
	plan, _ := args.Get(0).(*models.DietPlan)

	return plan, args.Error(1)
}

func (m *CatalogRepository) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	args := m.Called(ctx)
	recipes, _ := args.Get(0).([]models.Recipe)

	return recipes, args.Error(1)
}

func (m *CatalogRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	recipe, _ := args.Get(0).(*models.Recipe)

	return recipe, args.Error(1)
}

func (m *CatalogRepository) ListPartnerships(ctx context.Context) ([]models.Partnership, error) {
	args := m.Called(ctx)
	partnerships, _ := args.Get(0).([]models.Partnership)

	return partnerships, args.Error(1)
}

func (m *CatalogRepository) GetPartnershipByID(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	args := m.Called(ctx, id)
	partnership, _ := args.Get(0).(*models.Partnership)

	return partnership, args.Error(1)
}
