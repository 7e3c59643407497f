package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

const (
	// DefaultPageSize applies when a filter does not specify one.
	DefaultPageSize = 12

	featuredStockThreshold = 10
	featuredLimit          = 6
)

// ProductFilter narrows and pages a catalog listing. Nil/zero fields mean
// "no filter"; PageNumber and PageSize default to 1 and DefaultPageSize.
type ProductFilter struct {
	CategoryID *int64
	SearchTerm string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	PageNumber int
	PageSize   int
}

// CatalogService answers catalog queries. It composes filters over the
// active product set in memory; inactive products are never returned by
// any operation.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts applies category, text and price filters, then pages the
// result. The total count is computed before pagination, and ordering is
// name ascending with id as tiebreak so repeated calls against unchanged
// data return identical pages.
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	if filter.PageNumber == 0 {
		filter.PageNumber = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageNumber < 1 || filter.PageSize < 1 {
		return nil, ErrInvalidPage
	}

	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	filtered := applyProductFilter(products, filter)
	sortByName(filtered)

	totalCount := len(filtered)
	totalPages := (totalCount + filter.PageSize - 1) / filter.PageSize

	start := (filter.PageNumber - 1) * filter.PageSize
	if start > totalCount {
		start = totalCount
	}
	end := start + filter.PageSize
	if end > totalCount {
		end = totalCount
	}

	return &ProductPage{
		Items:       toProducts(filtered[start:end]),
		TotalCount:  totalCount,
		PageNumber:  filter.PageNumber,
		PageSize:    filter.PageSize,
		TotalPages:  totalPages,
		HasPrevious: filter.PageNumber > 1,
		HasNext:     filter.PageNumber < totalPages,
	}, nil
}

// GetProductByID returns full product detail, images and specifications in
// display order, or ErrProductNotFound.
func (s *CatalogService) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	view := toProduct(product)
	return &view, nil
}

// GetAllProducts returns every active product, name-ordered.
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]Product, error) {
	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	sortByName(products)
	return toProducts(products), nil
}

// GetProductsByCategory returns active products in exactly the given
// category. Subcategory products are not included.
func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	filtered := applyProductFilter(products, ProductFilter{CategoryID: &categoryID})
	sortByName(filtered)
	return toProducts(filtered), nil
}

// SearchProducts returns active products whose name, description or SKU
// contains the term, case-insensitively. A blank term matches everything.
func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	filtered := applyProductFilter(products, ProductFilter{SearchTerm: term})
	sortByName(filtered)
	return toProducts(filtered), nil
}

// GetFeaturedProducts returns up to six active products with stock above
// ten, highest stock first. The threshold and limit are the storefront's
// business rule for "featured".
func (s *CatalogService) GetFeaturedProducts(ctx context.Context) ([]Product, error) {
	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	featured := products[:0:0]
	for _, p := range products {
		if p.StockQuantity > featuredStockThreshold {
			featured = append(featured, p)
		}
	}
	sort.Slice(featured, func(i, j int) bool {
		if featured[i].StockQuantity != featured[j].StockQuantity {
			return featured[i].StockQuantity > featured[j].StockQuantity
		}
		return featured[i].ID < featured[j].ID
	})
	if len(featured) > featuredLimit {
		featured = featured[:featuredLimit]
	}
	return toProducts(featured), nil
}

func applyProductFilter(products []entity.Product, filter ProductFilter) []entity.Product {
	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	filtered := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if term != "" && !matchesTerm(&p, term) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesTerm(p *entity.Product, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Description), lowerTerm) ||
		strings.Contains(strings.ToLower(p.SKU), lowerTerm)
}

func sortByName(products []entity.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})
}
