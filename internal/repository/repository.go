package repository

import (
	"context"
	"errors"

	"github.com/furnistore/backend/internal/entity"
)

// ErrNotFound is returned by lookups when no row matches. Callers decide
// whether that is a failure or a normal outcome.
var ErrNotFound = errors.New("not found")

// ProductRepository handles read access to Products.
type ProductRepository interface {
	// FindByID loads a product with its category name, images and
	// specifications, both ordered by display order.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	// FindAllActive loads all active products with category names and
	// images, ordered by name then id.
	FindAllActive(ctx context.Context) ([]entity.Product, error)
}

// CategoryRepository handles read access to Categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	// FindAll loads every category ordered by name.
	FindAll(ctx context.Context) ([]entity.Category, error)
	// FindActive loads active categories with derived product counts,
	// ordered by name.
	FindActive(ctx context.Context) ([]entity.Category, error)
}

// CartRepository handles persistence for Carts.
type CartRepository interface {
	// FindBySessionID loads the bare cart row for a session.
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Cart, error)
	// FindWithItems loads the cart with its items, each item carrying its
	// product and product images for display.
	FindWithItems(ctx context.Context, sessionID string) (*entity.Cart, error)
	// Create persists a new cart and fills in its generated ID.
	Create(ctx context.Context, cart *entity.Cart) error
}

// CartItemRepository handles persistence for CartItems.
type CartItemRepository interface {
	// FindByID loads a cart item with its product and images.
	FindByID(ctx context.Context, id int64) (*entity.CartItem, error)
	// FindByCartAndProduct loads the single item for a (cart, product)
	// pair, with its product and images.
	FindByCartAndProduct(ctx context.Context, cartID, productID int64) (*entity.CartItem, error)
	// Create persists a new item and fills in its generated ID.
	Create(ctx context.Context, item *entity.CartItem) error
	// Update persists quantity and modification timestamp changes.
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id int64) error
	// DeleteByCartID removes all items of a cart in one statement.
	DeleteByCartID(ctx context.Context, cartID int64) error
}
