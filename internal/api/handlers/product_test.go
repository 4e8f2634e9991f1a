package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/nutricart/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/services/mocks"
	"github.com/aaravmahajanofficial/nutricart/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandler_ListProducts(t *testing.T) {
	t.Run("Success - Filters Forwarded", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		products := []*models.Product{{ID: uuid.New(), Name: "Quinoa", Price: decimal.RequireFromString("120.00"), Status: models.ProductStatusActive}}
		page := models.NewPaginatedResponse(products, 1, 1, 20)

		mockProductService.On("ListProducts", mock.Anything, models.ProductFilter{
			CategoryID: 3,
			Search:     "quinoa",
			Page:       1,
			PageSize:   20,
		}).Return(page, nil).Once()

		req := testutils.NewRequest(http.MethodGet, "/api/products?category=3&q=+quinoa+&pageSize=20", nil)
		w := httptest.NewRecorder()

		productHandler.ListProducts()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		got := decodeData[models.PaginatedResponse](t, w)
		assert.Equal(t, 1, got.Total)
		mockProductService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Category", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.NewRequest(http.MethodGet, "/api/products?category=fruit", nil)
		w := httptest.NewRecorder()

		productHandler.ListProducts()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, errorCode(t, w))
		mockProductService.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_GetProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)
		product := &models.Product{ID: uuid.New(), Name: "Almond Butter", Price: decimal.RequireFromString("349.00"), StockQuantity: 4}

		mockProductService.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		req := testutils.NewRequest(http.MethodGet, "/api/products/"+product.ID.String(), nil,
			testutils.WithPathValues(map[string]string{"id": product.ID.String()}))
		w := httptest.NewRecorder()

		productHandler.GetProduct()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		got := decodeData[models.Product](t, w)
		assert.Equal(t, "Almond Butter", got.Name)
		assert.Equal(t, "349.00", got.Price.StringFixed(2))
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)

		req := testutils.NewRequest(http.MethodGet, "/api/products/abc", nil, testutils.WithPathValues(map[string]string{"id": "abc"}))
		w := httptest.NewRecorder()

		productHandler.GetProduct()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockProductService.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockProductService := new(mocks.ProductService)
		productHandler := handlers.NewProductHandler(mockProductService)
		id := uuid.New()

		mockProductService.On("GetProductByID", mock.Anything, id).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.NewRequest(http.MethodGet, "/api/products/"+id.String(), nil,
			testutils.WithPathValues(map[string]string{"id": id.String()}))
		w := httptest.NewRecorder()

		productHandler.GetProduct()(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, appErrors.ErrCodeNotFound, errorCode(t, w))
	})
}

func TestProductHandler_ListCategories(t *testing.T) {
	mockProductService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockProductService)

	mockProductService.On("ListCategories", mock.Anything).Return([]*models.Category{
		{ID: 1, Name: "Grains", Slug: "grains"},
		{ID: 2, Name: "Dairy", Slug: "dairy"},
	}, nil).Once()

	req := testutils.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	productHandler.ListCategories()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	got := decodeData[[]models.Category](t, w)
	assert.Len(t, got, 2)
	assert.Equal(t, "grains", got[0].Slug)
}
