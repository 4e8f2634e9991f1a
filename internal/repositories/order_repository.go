package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
)

// StockError reports an order line the catalog cannot fulfil.
type StockError struct {
	ProductID uuid.UUID
	Name      string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s)", e.Name, e.ProductID)
}

type OrderRepository interface {
	// CreateOrder reserves stock for every line, stores the order and empties
	// the cart in one transaction.
	CreateOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order, cartID uuid.UUID) (err error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, item := range order.Items {
		stockErr := execOne(dbCtx, tx, `
			UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW()
			WHERE id = $2 AND stock_quantity >= $1`, item.Quantity, item.ProductID)
		if errors.Is(stockErr, sql.ErrNoRows) {
			return &StockError{ProductID: item.ProductID, Name: item.Name}
		}

		if stockErr != nil {
			return fmt.Errorf("failed to reserve stock: %w", stockErr)
		}
	}

	query := `
		INSERT INTO orders (id, user_id, status, items, subtotal, discount, total, coupon_code, shipping_address, payment_method, payment_reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(dbCtx, query, order.ID, order.UserID, order.Status, itemsJSON, order.Subtotal, order.Discount,
		order.Total, nullString(order.CouponCode), addressJSON, order.PaymentMethod, order.PaymentReference).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err = execOne(dbCtx, tx, `UPDATE carts SET items = '[]', coupon_code = NULL, updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

const orderColumns = `id, user_id, status, items, subtotal, discount, total, coupon_code, shipping_address, payment_method, payment_reference, created_at, updated_at`

func scanOrder(row scanner) (*models.Order, error) {
	order := &models.Order{}

	var (
		itemsJSON, addressJSON []byte
		coupon                 sql.NullString
	)

	err := row.Scan(&order.ID, &order.UserID, &order.Status, &itemsJSON, &order.Subtotal, &order.Discount, &order.Total,
		&coupon, &addressJSON, &order.PaymentMethod, &order.PaymentReference, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}

	order.CouponCode = coupon.String

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
