package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

type cartItemRepository struct {
	db *sqlx.DB
}

// NewCartItemRepository creates a new CartItemRepository backed by Postgres.
func NewCartItemRepository(db *sqlx.DB) repository.CartItemRepository {
	return &cartItemRepository{db: db}
}

type cartItemRow struct {
	ID           int64           `db:"id"`
	CartID       int64           `db:"cart_id"`
	ProductID    int64           `db:"product_id"`
	Quantity     int             `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	CreatedAt    time.Time       `db:"created_at"`
	ModifiedAt   *time.Time      `db:"modified_at"`
	ProductName  string          `db:"product_name"`
	ProductSKU   string          `db:"product_sku"`
	ProductPrice decimal.Decimal `db:"product_price"`
}

func (r cartItemRow) toEntity() entity.CartItem {
	return entity.CartItem{
		ID:         r.ID,
		CartID:     r.CartID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
		Product: &entity.Product{
			ID:    r.ProductID,
			Name:  r.ProductName,
			SKU:   r.ProductSKU,
			Price: r.ProductPrice,
		},
	}
}

// findCartItems loads cart items matching the condition, each joined with
// its product and the product's images.
func findCartItems(ctx context.Context, db *sqlx.DB, cond exp.Expression) ([]entity.CartItem, error) {
	query, args, err := qb.From(goqu.T("cart_items").As("ci")).
		Select(
			goqu.I("ci.id").As("id"),
			goqu.I("ci.cart_id").As("cart_id"),
			goqu.I("ci.product_id").As("product_id"),
			goqu.I("ci.quantity").As("quantity"),
			goqu.I("ci.unit_price").As("unit_price"),
			goqu.I("ci.created_at").As("created_at"),
			goqu.I("ci.modified_at").As("modified_at"),
			goqu.I("p.name").As("product_name"),
			goqu.I("p.sku").As("product_sku"),
			goqu.I("p.price").As("product_price"),
		).
		InnerJoin(goqu.T("products").As("p"), goqu.On(goqu.I("ci.product_id").Eq(goqu.I("p.id")))).
		Where(cond).
		Order(goqu.I("ci.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build cart items query: %w", err)
	}

	var rows []cartItemRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}

	items := make([]entity.CartItem, 0, len(rows))
	products := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
		products = append(products, items[len(items)-1].Product)
	}
	if err := attachProductImages(ctx, db, products); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartItemRepository) FindByID(ctx context.Context, id int64) (*entity.CartItem, error) {
	items, err := findCartItems(ctx, r.db, goqu.I("ci.id").Eq(id))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

func (r *cartItemRepository) FindByCartAndProduct(ctx context.Context, cartID, productID int64) (*entity.CartItem, error) {
	items, err := findCartItems(ctx, r.db, goqu.And(
		goqu.I("ci.cart_id").Eq(cartID),
		goqu.I("ci.product_id").Eq(productID),
	))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

func (r *cartItemRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query, args, err := qb.Insert("cart_items").
		Rows(goqu.Record{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"created_at": item.CreatedAt,
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build cart item insert: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("failed to insert cart item: %w", err)
	}
	return nil
}

func (r *cartItemRepository) Update(ctx context.Context, item *entity.CartItem) error {
	query, args, err := qb.Update("cart_items").
		Set(goqu.Record{
			"quantity":    item.Quantity,
			"modified_at": item.ModifiedAt,
		}).
		Where(goqu.C("id").Eq(item.ID)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build cart item update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cartItemRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.Delete("cart_items").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build cart item delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cartItemRepository) DeleteByCartID(ctx context.Context, cartID int64) error {
	query, args, err := qb.Delete("cart_items").
		Where(goqu.C("cart_id").Eq(cartID)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build cart items delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}
