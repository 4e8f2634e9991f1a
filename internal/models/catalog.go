package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Product struct {
	ID            uuid.UUID       `json:"id"`
	CategoryID    int64           `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

const ProductStatusActive = "active"

type ProductFilter struct {
	CategoryID int64
	Search     string
	Page       int
	PageSize   int
}

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

type DietPlan struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SuitableFor   []string        `json:"suitable_for"`
	Budget        BudgetTier      `json:"budget"`
	Benefits      []string        `json:"benefits"`
	ContentTier   Tier            `json:"content_tier"`
	PricePerMonth decimal.Decimal `json:"price_per_month"`
	DurationWeeks int             `json:"duration_weeks"`
}

// Ingredient.ProductID is set when the ingredient name matches a catalog product.
type Ingredient struct {
	Name      string     `json:"name"`
	Quantity  string     `json:"quantity,omitempty"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
}

type Recipe struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Ingredients    []Ingredient `json:"ingredients"`
	Steps          []string     `json:"steps,omitempty"`
	DietCompatible []string     `json:"diet_compatible"`
	ContentTier    Tier         `json:"content_tier"`
	PrepMinutes    int          `json:"prep_minutes"`
	Servings       int          `json:"servings"`
}

type Partnership struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Kind            string    `json:"kind"`
	DiscountPercent int       `json:"discount_percent"`
	Website         string    `json:"website,omitempty"`
	ContentTier     Tier      `json:"content_tier"`
}
