package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/nutricart/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

// withTimeout bounds a single repository call.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// Repositories bundles every postgres-backed repository over one pool.
type Repositories struct {
	DB       *sql.DB
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Coupons  CouponRepository
	Catalog  CatalogRepository
	Orders   OrderRepository
}

// Open connects to postgres through an instrumented driver and verifies the
// connection.
func Open(ctx context.Context, cfg *config.Database) (*sql.DB, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := withTimeout(ctx)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func New(db *sql.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Users:    NewUserRepo(db),
		Products: NewProductRepo(db),
		Carts:    NewCartRepo(db),
		Coupons:  NewCouponRepo(db),
		Catalog:  NewCatalogRepo(db),
		Orders:   NewOrderRepo(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
