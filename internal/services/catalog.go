package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/api/middleware"
	"github.com/aaravmahajanofficial/nutricart/internal/cache"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/metrics"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/recommend"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/google/uuid"
)

// CatalogService serves diet plans, recipes and partnerships. Lists return
// every tier; gating content is left to the caller's TierAccessPolicy.
type CatalogService interface {
	ListDietPlans(ctx context.Context) ([]models.DietPlan, error)
	GetDietPlan(ctx context.Context, id uuid.UUID) (*models.DietPlan, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListPartnerships(ctx context.Context) ([]models.Partnership, error)
	GetPartnership(ctx context.Context, id uuid.UUID) (*models.Partnership, error)
	Recommend(ctx context.Context, profile *models.UserProfile) (*models.RecommendationResult, error)
}

type catalogService struct {
	catalog  repository.CatalogRepository
	products repository.ProductRepository
	cache    cache.Cache
	ttl      time.Duration
}

func NewCatalogService(catalog repository.CatalogRepository, products repository.ProductRepository, c cache.Cache, ttl time.Duration) CatalogService {
	return &catalogService{catalog: catalog, products: products, cache: c, ttl: ttl}
}

func lookupError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError(what + " not found").WithError(err)
	}

	return appErrors.DatabaseError("Failed to fetch " + strings.ToLower(what)).WithError(err)
}

func (s *catalogService) ListDietPlans(ctx context.Context) ([]models.DietPlan, error) {
	plans, err := cache.Fetch(ctx, s.cache, cache.Key(cache.DietPlanKeyPrefix, "all"), s.ttl, s.catalog.ListDietPlans)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list diet plans").WithError(err)
	}

	return plans, nil
}

func (s *catalogService) GetDietPlan(ctx context.Context, id uuid.UUID) (*models.DietPlan, error) {
	plan, err := s.catalog.GetDietPlanByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Diet plan")
	}

	return plan, nil
}

func (s *catalogService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := cache.Fetch(ctx, s.cache, cache.Key(cache.RecipeKeyPrefix, "all"), s.ttl, func(ctx context.Context) ([]models.Recipe, error) {
		recipes, err := s.catalog.ListRecipes(ctx)
		if err != nil {
			return nil, err
		}

		s.linkIngredients(ctx, recipes)

		return recipes, nil
	})
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list recipes").WithError(err)
	}

	return recipes, nil
}

func (s *catalogService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.catalog.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Recipe")
	}

	recipes := []models.Recipe{*recipe}
	s.linkIngredients(ctx, recipes)

	return &recipes[0], nil
}

// linkIngredients sets ProductID on every ingredient whose name matches a
// catalog product, ignoring case. A lookup failure leaves recipes unlinked.
func (s *catalogService) linkIngredients(ctx context.Context, recipes []models.Recipe) {
	seen := make(map[string]struct{})
	names := []string{}

	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			key := strings.ToLower(strings.TrimSpace(ing.Name))
			if _, ok := seen[key]; ok || key == "" {
				continue
			}

			seen[key] = struct{}{}
			names = append(names, key)
		}
	}

	if len(names) == 0 {
		return
	}

	ids, err := s.products.FindIDsByName(ctx, names)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to link recipe ingredients", slog.String("error", err.Error()))
		return
	}

	for i := range recipes {
		for j := range recipes[i].Ingredients {
			ing := &recipes[i].Ingredients[j]
			if id, ok := ids[strings.ToLower(strings.TrimSpace(ing.Name))]; ok {
				ing.ProductID = &id
			}
		}
	}
}

func (s *catalogService) ListPartnerships(ctx context.Context) ([]models.Partnership, error) {
	partnerships, err := cache.Fetch(ctx, s.cache, cache.Key(cache.PartnershipKeyPrefix, "all"), s.ttl, s.catalog.ListPartnerships)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list partnerships").WithError(err)
	}

	return partnerships, nil
}

func (s *catalogService) GetPartnership(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	partnership, err := s.catalog.GetPartnershipByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Partnership")
	}

	return partnership, nil
}

func (s *catalogService) Recommend(ctx context.Context, profile *models.UserProfile) (*models.RecommendationResult, error) {
	plans, err := s.ListDietPlans(ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	result := recommend.Recommend(*profile, plans, recipes)

	metrics.RecordRecommendation(len(result.Plans))

	middleware.LoggerFromContext(ctx).Info("Recommendation computed",
		slog.Int("plans", len(result.Plans)),
		slog.Int("recipes", len(result.Recipes)),
	)

	return &result, nil
}
