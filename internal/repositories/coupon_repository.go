package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
)

type CouponRepository interface {
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

// Codes are stored upper-case.
func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT code, discount_type, discount_value, min_order_value, active, valid_from, valid_to
		FROM coupons
		WHERE code = $1`

	coupon := &models.Coupon{}

	var validFrom, validTo sql.NullTime

	err := r.DB.QueryRowContext(dbCtx, query, strings.ToUpper(strings.TrimSpace(code))).
		Scan(&coupon.Code, &coupon.DiscountType, &coupon.DiscountValue, &coupon.MinOrderValue, &coupon.Active, &validFrom, &validTo)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	if validFrom.Valid {
		coupon.ValidFrom = &validFrom.Time
	}

	if validTo.Valid {
		coupon.ValidTo = &validTo.Time
	}

	return coupon, nil
}
