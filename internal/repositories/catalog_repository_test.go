package repository_test

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_DietPlans(t *testing.T) {
	columns := []string{"id", "name", "description", "suitable_for", "budget", "benefits", "content_tier", "price_per_month", "duration_weeks"}
	id := uuid.New()

	t.Run("List", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCatalogRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM diet_plans ORDER BY name`)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), "Keto Kickstart", "", "{weight-loss,keto}", "medium", `{"Fast results"}`, "premium", "0", 8))

		plans, err := repo.ListDietPlans(t.Context())

		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, []string{"weight-loss", "keto"}, plans[0].SuitableFor)
		assert.Equal(t, []string{"Fast results"}, plans[0].Benefits)
		assert.Equal(t, models.BudgetMedium, plans[0].Budget)
		assert.Equal(t, models.TierPremium, plans[0].ContentTier)
		assert.True(t, decimal.Zero.Equal(plans[0].PricePerMonth))
	})

	t.Run("Empty list is not nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCatalogRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM diet_plans`)).WillReturnRows(sqlmock.NewRows(columns))

		plans, err := repo.ListDietPlans(t.Context())

		require.NoError(t, err)
		assert.NotNil(t, plans)
		assert.Empty(t, plans)
	})

	t.Run("Get not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCatalogRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM diet_plans WHERE id = $1`)).WithArgs(id).WillReturnError(sql.ErrNoRows)

		plan, err := repo.GetDietPlanByID(t.Context(), id)

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, plan)
	})
}

func TestCatalogRepository_Recipes(t *testing.T) {
	columns := []string{"id", "title", "description", "ingredients", "steps", "diet_compatible", "content_tier", "prep_minutes", "servings"}
	id := uuid.New()

	db, mock := newMockDB(t)
	repo := repository.NewCatalogRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM recipes WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "Overnight Oats", "", []byte(`[{"name":"Rolled Oats","quantity":"1 cup"}]`),
				`{"Mix","Chill overnight"}`, "{vegetarian}", "free", 10, 1))

	recipe, err := repo.GetRecipeByID(t.Context(), id)

	require.NoError(t, err)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Rolled Oats", recipe.Ingredients[0].Name)
	assert.Nil(t, recipe.Ingredients[0].ProductID)
	assert.Equal(t, []string{"Mix", "Chill overnight"}, recipe.Steps)
	assert.Equal(t, []string{"vegetarian"}, recipe.DietCompatible)
}

func TestCatalogRepository_Partnerships(t *testing.T) {
	columns := []string{"id", "name", "description", "kind", "discount_percent", "website", "content_tier"}

	db, mock := newMockDB(t)
	repo := repository.NewCatalogRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM partnerships ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), "FitStudio", "", "gym", 15, "https://fit.example", "pro"))

	partnerships, err := repo.ListPartnerships(t.Context())

	require.NoError(t, err)
	require.Len(t, partnerships, 1)
	assert.Equal(t, 15, partnerships[0].DiscountPercent)
	assert.Equal(t, models.TierPro, partnerships[0].ContentTier)
}
