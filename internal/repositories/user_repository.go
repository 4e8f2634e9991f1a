package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = "23505"

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateSubscription(ctx context.Context, id uuid.UUID, sub *models.Subscription) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, name, email, password, phone, address, subscription, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}

	var subscription []byte

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Phone, &user.Address, &subscription, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(subscription) > 0 {
		user.Subscription = &models.Subscription{}
		if err := json.Unmarshal(subscription, user.Subscription); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subscription: %w", err)
		}
	}

	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	var subscription []byte

	if user.Subscription != nil {
		data, err := json.Marshal(user.Subscription)
		if err != nil {
			return fmt.Errorf("failed to marshal subscription: %w", err)
		}

		subscription = data
	}

	query := `
		INSERT INTO users (name, email, password, phone, address, subscription, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, user.Name, user.Email, user.Password, user.Phone, user.Address, subscription).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}

		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(r.DB.QueryRowContext(dbCtx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users SET name = $1, phone = $2, address = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	if err := r.DB.QueryRowContext(dbCtx, query, user.Name, user.Phone, user.Address, user.ID).Scan(&user.UpdatedAt); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`

	return execOne(dbCtx, r.DB, query, passwordHash, id)
}

func (r *userRepository) UpdateSubscription(ctx context.Context, id uuid.UUID, sub *models.Subscription) error {
	dbCtx, cancel := withTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	query := `UPDATE users SET subscription = $1, updated_at = NOW() WHERE id = $2`

	return execOne(dbCtx, r.DB, query, data, id)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execOne runs a statement expected to touch exactly one row. Zero affected
// rows yields sql.ErrNoRows.
func execOne(ctx context.Context, db execer, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
