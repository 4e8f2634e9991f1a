package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
)

// CartRepository persists the lines and coupon of a user's cart. Money totals
// are derived by the service and never stored.
type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func marshalItems(items []models.CartItem) ([]byte, error) {
	if items == nil {
		items = []models.CartItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}

	return data, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO carts (id, user_id, items, coupon_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON, nullString(cart.CouponCode)).
		Scan(&cart.CreatedAt, &cart.UpdatedAt)
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, coupon_code, created_at, updated_at
		FROM carts
		WHERE user_id = $1`

	cart := &models.Cart{}

	var (
		itemsJSON []byte
		coupon    sql.NullString
	)

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &itemsJSON, &coupon, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	cart.CouponCode = coupon.String

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE carts
		SET items = $1, coupon_code = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	if err := r.DB.QueryRowContext(dbCtx, query, itemsJSON, nullString(cart.CouponCode), cart.ID).Scan(&cart.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return nil
}
