package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	service "github.com/aaravmahajanofficial/nutricart/internal/services"
	"github.com/aaravmahajanofficial/nutricart/internal/utils"
	"github.com/aaravmahajanofficial/nutricart/internal/utils/response"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts godoc
//
//	@Summary	List active products
//	@Tags		Products
//	@Produce	json
//	@Param		category	query		int		false	"Category ID"
//	@Param		q			query		string	false	"Name search"
//	@Param		page		query		int		false	"Page number (default: 1)"				minimum(1)
//	@Param		pageSize	query		int		false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.Product}
//	@Failure	400			{object}	response.ErrorResponse	"Invalid category"
//	@Router		/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := utils.ParsePagination(r, defaultPageSize, maxPageSize)

		filter := models.ProductFilter{
			Search:   strings.TrimSpace(r.URL.Query().Get("q")),
			Page:     page,
			PageSize: pageSize,
		}

		if raw := r.URL.Query().Get("category"); raw != "" {
			categoryID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || categoryID < 1 {
				response.Error(w, errors.BadRequestError("Invalid category"))
				return
			}

			filter.CategoryID = categoryID
		}

		products, err := h.productService.ListProducts(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"	Format(uuid)
//	@Success	200	{object}	models.Product
//	@Failure	400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return byID(func(r *http.Request, id uuid.UUID) (*models.Product, error) {
		return h.productService.GetProductByID(r.Context(), id)
	})
}

// ListCategories godoc
//
//	@Summary	List product categories
//	@Tags		Products
//	@Produce	json
//	@Success	200	{array}	models.Category
//	@Router		/categories [get]
func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return list(func(r *http.Request) ([]*models.Category, error) {
		return h.productService.ListCategories(r.Context())
	})
}
