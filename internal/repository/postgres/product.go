package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

type productRow struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Price         decimal.Decimal `db:"price"`
	SKU           string          `db:"sku"`
	CategoryID    int64           `db:"category_id"`
	StockQuantity int             `db:"stock_quantity"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
	ModifiedAt    *time.Time      `db:"modified_at"`
	CategoryName  sql.NullString  `db:"category_name"`
}

func (r productRow) toEntity() entity.Product {
	return entity.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		SKU:           r.SKU,
		CategoryID:    r.CategoryID,
		StockQuantity: r.StockQuantity,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		ModifiedAt:    r.ModifiedAt,
		CategoryName:  r.CategoryName.String,
	}
}

func productSelect() *goqu.SelectDataset {
	return qb.From(goqu.T("products").As("p")).
		Select(
			goqu.I("p.id").As("id"),
			goqu.I("p.name").As("name"),
			goqu.I("p.description").As("description"),
			goqu.I("p.price").As("price"),
			goqu.I("p.sku").As("sku"),
			goqu.I("p.category_id").As("category_id"),
			goqu.I("p.stock_quantity").As("stock_quantity"),
			goqu.I("p.is_active").As("is_active"),
			goqu.I("p.created_at").As("created_at"),
			goqu.I("p.modified_at").As("modified_at"),
			goqu.I("c.name").As("category_name"),
		).
		LeftJoin(goqu.T("categories").As("c"), goqu.On(goqu.I("p.category_id").Eq(goqu.I("c.id"))))
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query, args, err := productSelect().
		Where(goqu.I("p.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	product := row.toEntity()
	if err := attachProductImages(ctx, r.db, []*entity.Product{&product}); err != nil {
		return nil, err
	}
	if err := attachProductSpecifications(ctx, r.db, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAllActive(ctx context.Context) ([]entity.Product, error) {
	query, args, err := productSelect().
		Where(goqu.I("p.is_active").IsTrue()).
		Order(goqu.I("p.name").Asc(), goqu.I("p.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build products query: %w", err)
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := make([]entity.Product, 0, len(rows))
	refs := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toEntity())
		refs = append(refs, &products[len(products)-1])
	}
	if err := attachProductImages(ctx, r.db, refs); err != nil {
		return nil, err
	}
	return products, nil
}

// attachProductImages loads images for the given products in one query and
// distributes them in display order. Shared with the cart item repository,
// which needs product images for the primary image URL.
func attachProductImages(ctx context.Context, db *sqlx.DB, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query, args, err := qb.From("product_images").
		Where(goqu.C("product_id").In(ids)).
		Order(goqu.C("product_id").Asc(), goqu.C("display_order").Asc(), goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build product images query: %w", err)
	}

	var images []entity.ProductImage
	if err := db.SelectContext(ctx, &images, query, args...); err != nil {
		return fmt.Errorf("failed to query product images: %w", err)
	}

	for _, img := range images {
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return nil
}

func attachProductSpecifications(ctx context.Context, db *sqlx.DB, product *entity.Product) error {
	query, args, err := qb.From("product_specifications").
		Where(goqu.C("product_id").Eq(product.ID)).
		Order(goqu.C("display_order").Asc(), goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build product specifications query: %w", err)
	}

	if err := db.SelectContext(ctx, &product.Specifications, query, args...); err != nil {
		return fmt.Errorf("failed to query product specifications: %w", err)
	}
	return nil
}
