package service_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/cache"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/recommend"
	"github.com/aaravmahajanofficial/nutricart/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/nutricart/internal/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalogService(c cache.Cache) (*mocks.CatalogRepository, *mocks.ProductRepository, service.CatalogService) {
	catalog := new(mocks.CatalogRepository)
	products := new(mocks.ProductRepository)

	return catalog, products, service.NewCatalogService(catalog, products, c, time.Minute)
}

func samplePlans() []models.DietPlan {
	return []models.DietPlan{
		{ID: uuid.New(), Name: "Mediterranean Heart Plan", SuitableFor: []string{"heart-health"}, Budget: models.BudgetMedium, ContentTier: models.TierFree},
		{ID: uuid.New(), Name: "Keto Weight Loss", SuitableFor: []string{"weight-loss"}, Budget: models.BudgetHigh, ContentTier: models.TierPremium},
		{ID: uuid.New(), Name: "Plant Protein Vegan", SuitableFor: []string{"vegan", "muscle"}, Budget: models.BudgetLow, ContentTier: models.TierPro},
	}
}

func TestCatalogService_ListDietPlans_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	catalog, _, svc := setupCatalogService(cache.NewRedisCache(client, time.Minute))
	plans := samplePlans()

	catalog.On("ListDietPlans", mock.Anything).Return(plans, nil).Once()

	first, err := svc.ListDietPlans(t.Context())
	require.NoError(t, err)

	second, err := svc.ListDietPlans(t.Context())
	require.NoError(t, err)

	assert.Len(t, second, len(plans))
	assert.Equal(t, first[1].Name, second[1].Name)
	assert.True(t, mr.Exists(cache.Key(cache.DietPlanKeyPrefix, "all")))
	catalog.AssertExpectations(t)
}

func TestCatalogService_GetDietPlan(t *testing.T) {
	t.Run("Failure - Not Found", func(t *testing.T) {
		catalog, _, svc := setupCatalogService(nil)
		id := uuid.New()

		catalog.On("GetDietPlanByID", mock.Anything, id).Return(nil, fmt.Errorf("querying database: %w", sql.ErrNoRows)).Once()

		_, err := svc.GetDietPlan(t.Context(), id)

		assertAppCode(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, "Diet plan not found", err.Error())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		catalog, _, svc := setupCatalogService(nil)
		id := uuid.New()

		catalog.On("GetDietPlanByID", mock.Anything, id).Return(nil, assert.AnError).Once()

		_, err := svc.GetDietPlan(t.Context(), id)

		assertAppCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestCatalogService_GetRecipe_LinksIngredients(t *testing.T) {
	catalog, products, svc := setupCatalogService(nil)
	oatsID := uuid.New()

	recipe := &models.Recipe{
		ID:    uuid.New(),
		Title: "Overnight Oats",
		Ingredients: []models.Ingredient{
			{Name: "Rolled Oats", Quantity: "1 cup"},
			{Name: "water", Quantity: "1 cup"},
			{Name: "ROLLED OATS", Quantity: "to top"},
		},
	}

	catalog.On("GetRecipeByID", mock.Anything, recipe.ID).Return(recipe, nil).Once()
	products.On("FindIDsByName", mock.Anything, []string{"rolled oats", "water"}).
		Return(map[string]uuid.UUID{"rolled oats": oatsID}, nil).Once()

	got, err := svc.GetRecipe(t.Context(), recipe.ID)

	require.NoError(t, err)
	require.NotNil(t, got.Ingredients[0].ProductID)
	assert.Equal(t, oatsID, *got.Ingredients[0].ProductID)
	assert.Nil(t, got.Ingredients[1].ProductID)
	require.NotNil(t, got.Ingredients[2].ProductID)
	products.AssertExpectations(t)
}

func TestCatalogService_GetRecipe_LinkFailureIsTolerated(t *testing.T) {
	catalog, products, svc := setupCatalogService(nil)
	recipe := &models.Recipe{ID: uuid.New(), Ingredients: []models.Ingredient{{Name: "Quinoa"}}}

	catalog.On("GetRecipeByID", mock.Anything, recipe.ID).Return(recipe, nil).Once()
	products.On("FindIDsByName", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	got, err := svc.GetRecipe(t.Context(), recipe.ID)

	require.NoError(t, err)
	assert.Nil(t, got.Ingredients[0].ProductID)
}

func TestCatalogService_Recommend(t *testing.T) {
	t.Run("Success - Ranked Plans And Filtered Recipes", func(t *testing.T) {
		catalog, products, svc := setupCatalogService(nil)

		recipes := []models.Recipe{
			{ID: uuid.New(), Title: "Chicken Stew", DietCompatible: []string{"high-protein"}},
			{ID: uuid.New(), Title: "Lentil Soup", DietCompatible: []string{"vegan", "vegetarian"}},
			{ID: uuid.New(), Title: "Plain Rice"},
		}

		catalog.On("ListDietPlans", mock.Anything).Return(samplePlans(), nil).Once()
		catalog.On("ListRecipes", mock.Anything).Return(recipes, nil).Once()

		result, err := svc.Recommend(t.Context(), &models.UserProfile{
			HealthGoals:         []string{"Muscle Building"},
			DietaryRestrictions: []string{"Vegan"},
			Budget:              "Budget-friendly",
		})

		require.NoError(t, err)
		require.NotEmpty(t, result.Plans)
		assert.Equal(t, "Plant Protein Vegan", result.Plans[0].Plan.Name)
		assert.Equal(t, 95, result.Plans[0].Score)

		titles := []string{}
		for _, r := range result.Recipes {
			titles = append(titles, r.Title)
		}

		assert.Equal(t, []string{"Lentil Soup", "Plain Rice"}, titles)
		products.AssertNotCalled(t, "FindIDsByName", mock.Anything, mock.Anything)
	})

	t.Run("Success - Fallback When Nothing Matches", func(t *testing.T) {
		catalog, _, svc := setupCatalogService(nil)

		catalog.On("ListDietPlans", mock.Anything).Return(samplePlans(), nil).Once()
		catalog.On("ListRecipes", mock.Anything).Return([]models.Recipe{}, nil).Once()

		result, err := svc.Recommend(t.Context(), &models.UserProfile{})

		require.NoError(t, err)
		require.Len(t, result.Plans, 1)
		assert.Equal(t, recommend.FallbackPlanName, result.Plans[0].Plan.Name)
		assert.Equal(t, recommend.FallbackScore, result.Plans[0].Score)
	})

	t.Run("Failure - Catalog Unavailable", func(t *testing.T) {
		catalog, _, svc := setupCatalogService(nil)

		catalog.On("ListDietPlans", mock.Anything).Return(nil, assert.AnError).Once()

		_, err := svc.Recommend(t.Context(), &models.UserProfile{})

		assertAppCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestCatalogService_Partnerships(t *testing.T) {
	catalog, _, svc := setupCatalogService(nil)
	partner := models.Partnership{ID: uuid.New(), Name: "FitLife Gym", DiscountPercent: 15, ContentTier: models.TierPremium}

	catalog.On("ListPartnerships", mock.Anything).Return([]models.Partnership{partner}, nil).Once()
	catalog.On("GetPartnershipByID", mock.Anything, partner.ID).Return(&partner, nil).Once()

	list, err := svc.ListPartnerships(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := svc.GetPartnership(t.Context(), partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.DiscountPercent)
}
