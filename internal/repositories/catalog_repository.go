package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CatalogRepository reads the editorial catalog: diet plans, recipes and
// partner offers.
type CatalogRepository interface {
	ListDietPlans(ctx context.Context) ([]models.DietPlan, error)
	GetDietPlanByID(ctx context.Context, id uuid.UUID) (*models.DietPlan, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipeByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListPartnerships(ctx context.Context) ([]models.Partnership, error)
	GetPartnershipByID(ctx context.Context, id uuid.UUID) (*models.Partnership, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const dietPlanColumns = `id, name, description, suitable_for, budget, benefits, content_tier, price_per_month, duration_weeks`

func scanDietPlan(row scanner) (models.DietPlan, error) {
	var plan models.DietPlan

	err := row.Scan(&plan.ID, &plan.Name, &plan.Description, pq.Array(&plan.SuitableFor), &plan.Budget,
		pq.Array(&plan.Benefits), &plan.ContentTier, &plan.PricePerMonth, &plan.DurationWeeks)

	return plan, err
}

const recipeColumns = `id, title, description, ingredients, steps, diet_compatible, content_tier, prep_minutes, servings`

func scanRecipe(row scanner) (models.Recipe, error) {
	var (
		recipe      models.Recipe
		ingredients []byte
	)

	err := row.Scan(&recipe.ID, &recipe.Title, &recipe.Description, &ingredients, pq.Array(&recipe.Steps),
		pq.Array(&recipe.DietCompatible), &recipe.ContentTier, &recipe.PrepMinutes, &recipe.Servings)
	if err != nil {
		return recipe, err
	}

	if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
		return recipe, fmt.Errorf("failed to unmarshal ingredients: %w", err)
	}

	return recipe, nil
}

const partnershipColumns = `id, name, description, kind, discount_percent, website, content_tier`

func scanPartnership(row scanner) (models.Partnership, error) {
	var p models.Partnership

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Kind, &p.DiscountPercent, &p.Website, &p.ContentTier)

	return p, err
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(scanner) (T, error)) ([]T, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func queryOne[T any](ctx context.Context, db *sql.DB, query string, id uuid.UUID, scan func(scanner) (T, error)) (*T, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	item, err := scan(db.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *catalogRepository) ListDietPlans(ctx context.Context) ([]models.DietPlan, error) {
	plans, err := queryAll(ctx, r.DB, `SELECT `+dietPlanColumns+` FROM diet_plans ORDER BY name`, scanDietPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to list diet plans: %w", err)
	}

	return plans, nil
}

func (r *catalogRepository) GetDietPlanByID(ctx context.Context, id uuid.UUID) (*models.DietPlan, error) {
	plan, err := queryOne(ctx, r.DB, `SELECT `+dietPlanColumns+` FROM diet_plans WHERE id = $1`, id, scanDietPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to get diet plan: %w", err)
	}

	return plan, nil
}

func (r *catalogRepository) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := queryAll(ctx, r.DB, `SELECT `+recipeColumns+` FROM recipes ORDER BY title`, scanRecipe)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return recipes, nil
}

func (r *catalogRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := queryOne(ctx, r.DB, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id, scanRecipe)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return recipe, nil
}

func (r *catalogRepository) ListPartnerships(ctx context.Context) ([]models.Partnership, error) {
	partnerships, err := queryAll(ctx, r.DB, `SELECT `+partnershipColumns+` FROM partnerships ORDER BY name`, scanPartnership)
	if err != nil {
		return nil, fmt.Errorf("failed to list partnerships: %w", err)
	}

	return partnerships, nil
}

func (r *catalogRepository) GetPartnershipByID(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	p, err := queryOne(ctx, r.DB, `SELECT `+partnershipColumns+` FROM partnerships WHERE id = $1`, id, scanPartnership)
	if err != nil {
		return nil, fmt.Errorf("failed to get partnership: %w", err)
	}

	return p, nil
}
