package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

// CartService orchestrates shopping cart logic. All state lives in the
// repositories; totals are derived from the item list on every read.
//
// The merge in AddToCart is a read-modify-write without row locking, so
// two concurrent adds for the same (session, product) can lose an update.
type CartService struct {
	carts    repository.CartRepository
	items    repository.CartItemRepository
	products repository.ProductRepository
}

func NewCartService(
	carts repository.CartRepository,
	items repository.CartItemRepository,
	products repository.ProductRepository,
) *CartService {
	return &CartService{
		carts:    carts,
		items:    items,
		products: products,
	}
}

// GetCart resolves the cart for a session, creating an empty one on first
// access. The second return value reports whether the cart was created by
// this call.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*Cart, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, false, ErrEmptySession
	}

	cart, err := s.carts.FindWithItems(ctx, sessionID)
	created := false
	if errors.Is(err, repository.ErrNotFound) {
		cart = &entity.Cart{
			SessionID: sessionID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, false, fmt.Errorf("failed to create cart: %w", err)
		}
		created = true
		slog.Info("Service: Created cart", "session_id", sessionID, "cart_id", cart.ID)
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to load cart: %w", err)
	}

	view := toCart(cart)
	return &view, created, nil
}

// AddToCart merges the requested quantity into the existing line for the
// (cart, product) pair, or creates a new line capturing the product's
// current price. An existing line keeps its original unit price: the
// price-lock semantic, so a later catalog price change never alters lines
// already in a cart.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, productID int64, quantity int) (*CartItem, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrEmptySession
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	slog.Info("Service: Adding item to cart", "session_id", sessionID, "product_id", productID, "quantity", quantity)

	cart, err := s.carts.FindBySessionID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		cart = &entity.Cart{
			SessionID: sessionID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	now := time.Now().UTC()
	existing, err := s.items.FindByCartAndProduct(ctx, cart.ID, productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		existing.ModifiedAt = &now
		if err := s.items.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		item := &entity.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			CreatedAt: now,
		}
		if err := s.items.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to insert cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}

	merged, err := s.items.FindByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}

	view := toCartItem(merged)
	return &view, nil
}

// UpdateCartItem sets the quantity of an existing line. A non-positive
// quantity removes the line. A missing line is a no-op, signalled by a nil
// result with a nil error.
func (s *CartService) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*CartItem, error) {
	item, err := s.items.FindByID(ctx, cartItemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}

	if quantity <= 0 {
		if err := s.items.Delete(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("failed to delete cart item: %w", err)
		}
		slog.Info("Service: Removed cart item via zero quantity", "cart_item_id", cartItemID)
		return nil, nil
	}

	now := time.Now().UTC()
	item.Quantity = quantity
	item.ModifiedAt = &now
	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	view := toCartItem(item)
	return &view, nil
}

// RemoveFromCart deletes a line by id. Returns false without error when
// the line does not exist.
func (s *CartService) RemoveFromCart(ctx context.Context, cartItemID int64) (bool, error) {
	_, err := s.items.FindByID(ctx, cartItemID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to load cart item: %w", err)
	}

	if err := s.items.Delete(ctx, cartItemID); err != nil {
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return true, nil
}

// ClearCart removes all lines of a session's cart in one batch. An absent
// or already-empty cart triggers no write at all.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrEmptySession
	}

	cart, err := s.carts.FindWithItems(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	if len(cart.Items) == 0 {
		return nil
	}

	if err := s.items.DeleteByCartID(ctx, cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	slog.Info("Service: Cleared cart", "session_id", sessionID, "items", len(cart.Items))
	return nil
}
