package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

type cartRepository struct {
	db *sqlx.DB
}

// NewCartRepository creates a new CartRepository backed by Postgres.
func NewCartRepository(db *sqlx.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Cart, error) {
	query, args, err := qb.From("carts").
		Where(goqu.C("session_id").Eq(sessionID)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build cart query: %w", err)
	}

	var cart entity.Cart
	if err := r.db.GetContext(ctx, &cart, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) FindWithItems(ctx context.Context, sessionID string) (*entity.Cart, error) {
	cart, err := r.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := findCartItems(ctx, r.db, goqu.I("ci.cart_id").Eq(cart.ID))
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	query, args, err := qb.Insert("carts").
		Rows(goqu.Record{
			"session_id": cart.SessionID,
			"created_at": cart.CreatedAt,
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build cart insert: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&cart.ID); err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}
	return nil
}
