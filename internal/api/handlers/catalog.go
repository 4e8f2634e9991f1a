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
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

// list writes the result of fetch as a success envelope.
func list[T any](fetch func(r *http.Request) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fetch(r)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Catalog read failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

// byID parses the {id} path value and writes the result of fetch.
func byID[T any](fetch func(r *http.Request, id uuid.UUID) (T, error)) http.HandlerFunc {
	return list(func(r *http.Request) (T, error) {
		id, err := utils.ParseID(r, "id")
		if err != nil {
			var zero T
			return zero, err
		}

		return fetch(r, id)
	})
}

// ListDietPlans godoc
//
//	@Summary	List diet plans
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	models.DietPlan
//	@Router		/diet-plans [get]
func (h *CatalogHandler) ListDietPlans() http.HandlerFunc {
	return list(func(r *http.Request) ([]models.DietPlan, error) {
		return h.catalogService.ListDietPlans(r.Context())
	})
}

// GetDietPlan godoc
//
//	@Summary	Get a diet plan
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"Diet plan ID"	Format(uuid)
//	@Success	200	{object}	models.DietPlan
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/diet-plans/{id} [get]
func (h *CatalogHandler) GetDietPlan() http.HandlerFunc {
	return byID(func(r *http.Request, id uuid.UUID) (*models.DietPlan, error) {
		return h.catalogService.GetDietPlan(r.Context(), id)
	})
}

// ListRecipes godoc
//
//	@Summary	List recipes
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	models.Recipe
//	@Router		/recipes [get]
func (h *CatalogHandler) ListRecipes() http.HandlerFunc {
	return list(func(r *http.Request) ([]models.Recipe, error) {
		return h.catalogService.ListRecipes(r.Context())
	})
}

// GetRecipe godoc
//
//	@Summary		Get a recipe
//	@Description	Ingredients that match a catalog product carry its product_id.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string	true	"Recipe ID"	Format(uuid)
//	@Success		200	{object}	models.Recipe
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/recipes/{id} [get]
func (h *CatalogHandler) GetRecipe() http.HandlerFunc {
	return byID(func(r *http.Request, id uuid.UUID) (*models.Recipe, error) {
		return h.catalogService.GetRecipe(r.Context(), id)
	})
}

// ListPartnerships godoc
//
//	@Summary	List partner offers
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	models.Partnership
//	@Router		/partnerships [get]
func (h *CatalogHandler) ListPartnerships() http.HandlerFunc {
	return list(func(r *http.Request) ([]models.Partnership, error) {
		return h.catalogService.ListPartnerships(r.Context())
	})
}

// GetPartnership godoc
//
//	@Summary	Get a partner offer
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"Partnership ID"	Format(uuid)
//	@Success	200	{object}	models.Partnership
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/partnerships/{id} [get]
func (h *CatalogHandler) GetPartnership() http.HandlerFunc {
	return byID(func(r *http.Request, id uuid.UUID) (*models.Partnership, error) {
		return h.catalogService.GetPartnership(r.Context(), id)
	})
}

// Recommend godoc
//
//	@Summary		Recommend diet plans
//	@Description	Scores every diet plan against the quiz answers and returns the best matches with compatible recipes.
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		models.UserProfile	true	"Quiz answers"
//	@Success		200		{object}	models.RecommendationResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/recommendations [post]
func (h *CatalogHandler) Recommend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile models.UserProfile
		if !utils.ParseAndValidate(r, w, &profile, h.validator) {
			return
		}

		result, err := h.catalogService.Recommend(r.Context(), &profile)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
