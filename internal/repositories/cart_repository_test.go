package repository_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	repository "github.com/aaravmahajanofficial/nutricart/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_CreateCart(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)

	cart := &models.Cart{ID: uuid.New(), UserID: uuid.New()}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts (id, user_id, items, coupon_code, created_at, updated_at)`)).
		WithArgs(cart.ID, cart.UserID, []byte("[]"), sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := repo.CreateCart(t.Context(), cart)

	require.NoError(t, err)
	assert.WithinDuration(t, now, cart.CreatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_GetCartByUserID(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	now := time.Now()
	columns := []string{"id", "user_id", "items", "coupon_code", "created_at", "updated_at"}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		items, err := json.Marshal([]models.CartItem{{
			ProductID: productID, Name: "Oats", Quantity: 2,
			UnitPrice: decimal.NewFromInt(120), LineTotal: decimal.NewFromInt(240),
		}})
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM carts`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(cartID.String(), userID.String(), items, "SAVE10", now, now))

		cart, err := repo.GetCartByUserID(t.Context(), userID)

		require.NoError(t, err)
		assert.Equal(t, cartID, cart.ID)
		assert.Equal(t, "SAVE10", cart.CouponCode)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.True(t, decimal.NewFromInt(120).Equal(cart.Items[0].UnitPrice))
	})

	t.Run("No cart", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM carts`)).WillReturnError(sql.ErrNoRows)

		cart, err := repo.GetCartByUserID(t.Context(), userID)

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, cart)
	})

	t.Run("Corrupt items", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM carts`)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(cartID.String(), userID.String(), []byte("{"), nil, now, now))

		_, err := repo.GetCartByUserID(t.Context(), userID)

		require.ErrorContains(t, err, "failed to unmarshal cart items")
	})
}

func TestCartRepository_UpdateCart(t *testing.T) {
	cart := &models.Cart{ID: uuid.New(), CouponCode: "FLAT50"}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE carts`)).
			WithArgs([]byte("[]"), sql.NullString{String: "FLAT50", Valid: true}, cart.ID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		require.NoError(t, repo.UpdateCart(t.Context(), cart))
		assert.WithinDuration(t, now, cart.UpdatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCartRepo(db)
		dbErr := errors.New("deadlock")

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE carts`)).WillReturnError(dbErr)

		err := repo.UpdateCart(t.Context(), cart)

		require.ErrorIs(t, err, dbErr)
	})
}

func TestCouponRepository_GetCouponByCode(t *testing.T) {
	columns := []string{"code", "discount_type", "discount_value", "min_order_value", "active", "valid_from", "valid_to"}

	t.Run("Normalises code", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCouponRepo(db)
		validTo := time.Now().Add(24 * time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons`)).
			WithArgs("SAVE10").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("SAVE10", "percent", "10", "500", true, nil, validTo))

		coupon, err := repo.GetCouponByCode(t.Context(), " save10 ")

		require.NoError(t, err)
		assert.Equal(t, models.DiscountPercent, coupon.DiscountType)
		assert.True(t, decimal.NewFromInt(500).Equal(coupon.MinOrderValue))
		assert.Nil(t, coupon.ValidFrom)
		require.NotNil(t, coupon.ValidTo)
		assert.WithinDuration(t, validTo, *coupon.ValidTo, time.Second)
	})

	t.Run("Unknown code", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCouponRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons`)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCouponByCode(t.Context(), "NOPE")

		require.ErrorIs(t, err, sql.ErrNoRows)
	})
}
