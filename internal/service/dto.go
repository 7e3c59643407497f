package service

import (
	"github.com/shopspring/decimal"

	"github.com/furnistore/backend/internal/entity"
)

// Product is the catalog view of a product returned to callers.
type Product struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          decimal.Decimal        `json:"price"`
	SKU            string                 `json:"sku"`
	CategoryName   string                 `json:"categoryName"`
	StockQuantity  int                    `json:"stockQuantity"`
	Images         []ProductImage         `json:"images"`
	Specifications []ProductSpecification `json:"specifications"`
}

type ProductImage struct {
	ID           int64  `json:"id"`
	ImageURL     string `json:"imageUrl"`
	AltText      string `json:"altText"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
}

type ProductSpecification struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"displayOrder"`
}

// ProductPage is one page of filtered catalog results with derived paging
// metadata.
type ProductPage struct {
	Items       []Product `json:"items"`
	TotalCount  int       `json:"totalCount"`
	PageNumber  int       `json:"pageNumber"`
	PageSize    int       `json:"pageSize"`
	TotalPages  int       `json:"totalPages"`
	HasPrevious bool      `json:"hasPrevious"`
	HasNext     bool      `json:"hasNext"`
}

type Category struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	IsActive         bool   `json:"isActive"`
	ParentCategoryID *int64 `json:"parentCategoryId"`
	ProductCount     int    `json:"productCount"`
}

// Cart is the session cart view. TotalAmount and TotalItems are always
// recomputed from the item list, never read from storage.
type Cart struct {
	ID          int64           `json:"id"`
	SessionID   string          `json:"sessionId"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
}

// CartItem is a cart line enriched with product display fields.
type CartItem struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductSKU      string          `json:"productSKU"`
	ProductImageURL string          `json:"productImageUrl"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

func toProduct(p *entity.Product) Product {
	images := make([]ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImage{
			ID:           img.ID,
			ImageURL:     img.ImageURL,
			AltText:      img.AltText,
			IsPrimary:    img.IsPrimary,
			DisplayOrder: img.DisplayOrder,
		})
	}
	specs := make([]ProductSpecification, 0, len(p.Specifications))
	for _, spec := range p.Specifications {
		specs = append(specs, ProductSpecification{
			ID:           spec.ID,
			Name:         spec.Name,
			Value:        spec.Value,
			DisplayOrder: spec.DisplayOrder,
		})
	}
	return Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		SKU:            p.SKU,
		CategoryName:   p.CategoryName,
		StockQuantity:  p.StockQuantity,
		Images:         images,
		Specifications: specs,
	}
}

func toProducts(products []entity.Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		out = append(out, toProduct(&products[i]))
	}
	return out
}

func toCategory(c *entity.Category) Category {
	return Category{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		IsActive:         c.IsActive,
		ParentCategoryID: c.ParentCategoryID,
		ProductCount:     c.ProductCount,
	}
}

func toCartItem(ci *entity.CartItem) CartItem {
	item := CartItem{
		ID:         ci.ID,
		ProductID:  ci.ProductID,
		Quantity:   ci.Quantity,
		UnitPrice:  ci.UnitPrice,
		TotalPrice: ci.TotalPrice(),
	}
	if ci.Product != nil {
		item.ProductName = ci.Product.Name
		item.ProductSKU = ci.Product.SKU
		item.ProductImageURL = ci.Product.PrimaryImageURL()
	}
	return item
}

func toCart(c *entity.Cart) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for i := range c.Items {
		items = append(items, toCartItem(&c.Items[i]))
	}
	return Cart{
		ID:          c.ID,
		SessionID:   c.SessionID,
		Items:       items,
		TotalAmount: c.TotalAmount(),
		TotalItems:  c.TotalItems(),
	}
}
