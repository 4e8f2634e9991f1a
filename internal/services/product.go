package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/cache"
	appErrors "github.com/aaravmahajanofficial/nutricart/internal/errors"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration) ProductService {
	return &productService{repo: repo, cache: c, ttl: ttl}
}

// Product detail is never cached: it carries the live stock level.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

type productPage struct {
	Products []*models.Product `json:"products"`
	Total    int               `json:"total"`
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.PaginatedResponse, error) {
	key := cache.Key(cache.ProductKeyPrefix, "list",
		strconv.FormatInt(filter.CategoryID, 10),
		filter.Search,
		strconv.Itoa(filter.Page),
		strconv.Itoa(filter.PageSize),
	)

	page, err := cache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (productPage, error) {
		products, total, err := s.repo.ListProducts(ctx, filter)
		return productPage{Products: products, Total: total}, err
	})
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return models.NewPaginatedResponse(page.Products, page.Total, filter.Page, filter.PageSize), nil
}

func (s *productService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := cache.Fetch(ctx, s.cache, cache.Key(cache.CategoryKeyPrefix, "all"), s.ttl, s.repo.ListCategories)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list categories").WithError(err)
	}

	return categories, nil
}
