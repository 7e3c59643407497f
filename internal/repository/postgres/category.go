package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

type categoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository backed by Postgres.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

type categoryRow struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	Description      string     `db:"description"`
	IsActive         bool       `db:"is_active"`
	ParentCategoryID *int64     `db:"parent_category_id"`
	CreatedAt        time.Time  `db:"created_at"`
	ModifiedAt       *time.Time `db:"modified_at"`
	ProductCount     int        `db:"product_count"`
}

func (r categoryRow) toEntity() entity.Category {
	return entity.Category{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		IsActive:         r.IsActive,
		ParentCategoryID: r.ParentCategoryID,
		CreatedAt:        r.CreatedAt,
		ModifiedAt:       r.ModifiedAt,
		ProductCount:     r.ProductCount,
	}
}

func categorySelect() *goqu.SelectDataset {
	// Product counts are derived per query; only active products count.
	return qb.From(goqu.T("categories").As("c")).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.name").As("name"),
			goqu.I("c.description").As("description"),
			goqu.I("c.is_active").As("is_active"),
			goqu.I("c.parent_category_id").As("parent_category_id"),
			goqu.I("c.created_at").As("created_at"),
			goqu.I("c.modified_at").As("modified_at"),
			goqu.COUNT(goqu.I("p.id")).As("product_count"),
		).
		LeftJoin(goqu.T("products").As("p"), goqu.On(
			goqu.I("p.category_id").Eq(goqu.I("c.id")),
			goqu.I("p.is_active").IsTrue(),
		)).
		GroupBy(goqu.I("c.id")).
		Order(goqu.I("c.name").Asc(), goqu.I("c.id").Asc())
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	query, args, err := categorySelect().
		Where(goqu.I("c.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	var row categoryRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	category := row.toEntity()
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	return r.findCategories(ctx, categorySelect())
}

func (r *categoryRepository) FindActive(ctx context.Context) ([]entity.Category, error) {
	return r.findCategories(ctx, categorySelect().Where(goqu.I("c.is_active").IsTrue()))
}

func (r *categoryRepository) findCategories(ctx context.Context, ds *goqu.SelectDataset) ([]entity.Category, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build categories query: %w", err)
	}

	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toEntity())
	}
	return categories, nil
}
