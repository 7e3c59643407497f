package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are created by catalog
// administration and are read-only from this service's perspective.
type Product struct {
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

	CategoryName   string
	Images         []ProductImage
	Specifications []ProductSpecification
}

// PrimaryImageURL returns the URL of the image flagged primary, falling
// back to the first image, then to an empty string.
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return ""
}

// ProductImage is a display image attached to a product, ordered by
// DisplayOrder. At most one image per product carries the primary flag.
type ProductImage struct {
	ID           int64  `db:"id"`
	ProductID    int64  `db:"product_id"`
	ImageURL     string `db:"image_url"`
	AltText      string `db:"alt_text"`
	IsPrimary    bool   `db:"is_primary"`
	DisplayOrder int    `db:"display_order"`
}

// ProductSpecification is a name/value attribute pair on a product,
// ordered by DisplayOrder.
type ProductSpecification struct {
	ID           int64  `db:"id"`
	ProductID    int64  `db:"product_id"`
	Name         string `db:"name"`
	Value        string `db:"value"`
	DisplayOrder int    `db:"display_order"`
}

// Category groups products. The parent is held as an optional key
// reference, never as a materialized pointer, so cycles cannot form by
// construction on the read path.
type Category struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	Description      string     `db:"description"`
	IsActive         bool       `db:"is_active"`
	ParentCategoryID *int64     `db:"parent_category_id"`
	CreatedAt        time.Time  `db:"created_at"`
	ModifiedAt       *time.Time `db:"modified_at"`

	// ProductCount is derived at query time, never stored.
	ProductCount int
}
