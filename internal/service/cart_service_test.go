package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnistore/backend/internal/entity"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newCartFixture(products ...entity.Product) (*CartService, *fakeCartRepo, *fakeCartItemRepo, *fakeProductRepo) {
	productRepo := newFakeProductRepo(products...)
	itemRepo := newFakeCartItemRepo(productRepo)
	cartRepo := newFakeCartRepo(itemRepo)
	svc := NewCartService(cartRepo, itemRepo, productRepo)
	return svc, cartRepo, itemRepo, productRepo
}

func testProduct(id int64, name, sku, priceStr string) entity.Product {
	return entity.Product{
		ID:            id,
		Name:          name,
		SKU:           sku,
		Price:         price(priceStr),
		CategoryID:    1,
		StockQuantity: 20,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		Images: []entity.ProductImage{
			{ID: id, ProductID: id, ImageURL: "/images/" + sku + ".jpg", IsPrimary: true},
		},
	}
}

func TestGetCartCreatesCartOnFirstAccess(t *testing.T) {
	svc, cartRepo, _, _ := newCartFixture()
	ctx := context.Background()

	cart, created, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "session-1", cart.SessionID)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())
	assert.Equal(t, 0, cart.TotalItems)

	again, created, err := svc.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cart.ID, again.ID)
	assert.Equal(t, 1, cartRepo.createCalls)
}

func TestGetCartRejectsEmptySession(t *testing.T) {
	svc, _, _, _ := newCartFixture()

	for _, sessionID := range []string{"", "   ", "\t"} {
		_, _, err := svc.GetCart(context.Background(), sessionID)
		assert.ErrorIs(t, err, ErrEmptySession)
	}
}

func TestAddToCartCapturesPriceAndDisplayFields(t *testing.T) {
	svc, _, _, _ := newCartFixture(testProduct(1, "Oslo Sofa", "LR-SOFA-001", "899.00"))

	item, err := svc.AddToCart(context.Background(), "s", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(price("899.00")))
	assert.True(t, item.TotalPrice.Equal(price("1798.00")))
	assert.Equal(t, "Oslo Sofa", item.ProductName)
	assert.Equal(t, "LR-SOFA-001", item.ProductSKU)
	assert.Equal(t, "/images/LR-SOFA-001.jpg", item.ProductImageURL)
}

func TestAddToCartMergesQuantities(t *testing.T) {
	svc, _, itemRepo, _ := newCartFixture(testProduct(1, "Oslo Sofa", "LR-SOFA-001", "899.00"))
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s", 1, 2)
	require.NoError(t, err)
	item, err := svc.AddToCart(ctx, "s", 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	assert.Len(t, itemRepo.items, 1, "merge must keep a single line per (cart, product)")
}

func TestAddToCartPriceLock(t *testing.T) {
	product := testProduct(1, "Chair", "CHR-1", "100.00")
	svc, _, _, productRepo := newCartFixture(product)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s", 1, 2)
	require.NoError(t, err)

	// Out-of-band catalog price change must not leak into the cart.
	productRepo.products[1].Price = price("150.00")

	cart, _, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].UnitPrice.Equal(price("100.00")))
	assert.True(t, cart.TotalAmount.Equal(price("200.00")))
	assert.Equal(t, 2, cart.TotalItems)

	// A later merge keeps the locked price too.
	item, err := svc.AddToCart(ctx, "s", 1, 1)
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(price("100.00")))
	assert.True(t, item.TotalPrice.Equal(price("300.00")))
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	svc, cartRepo, itemRepo, _ := newCartFixture(testProduct(1, "Chair", "CHR-1", "100.00"))

	for _, quantity := range []int{0, -1} {
		_, err := svc.AddToCart(context.Background(), "s", 1, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 0, cartRepo.createCalls)
	assert.Equal(t, 0, itemRepo.createCalls)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _, itemRepo, _ := newCartFixture()

	_, err := svc.AddToCart(context.Background(), "s", 42, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 0, itemRepo.createCalls, "no phantom line item for a missing product")
}

func TestUpdateCartItemSetsQuantity(t *testing.T) {
	svc, _, _, _ := newCartFixture(testProduct(1, "Chair", "CHR-1", "100.00"))
	ctx := context.Background()

	added, err := svc.AddToCart(ctx, "s", 1, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateCartItem(ctx, added.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 7, updated.Quantity)
	assert.True(t, updated.TotalPrice.Equal(price("700.00")))
}

func TestUpdateCartItemZeroQuantityRemoves(t *testing.T) {
	svc, _, _, _ := newCartFixture(testProduct(1, "Chair", "CHR-1", "100.00"))
	ctx := context.Background()

	added, err := svc.AddToCart(ctx, "s", 1, 2)
	require.NoError(t, err)

	for _, quantity := range []int{0, -3} {
		removed, err := svc.UpdateCartItem(ctx, added.ID, quantity)
		require.NoError(t, err)
		assert.Nil(t, removed)
	}

	cart, _, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateCartItemMissingIsNoOp(t *testing.T) {
	svc, _, itemRepo, _ := newCartFixture()

	item, err := svc.UpdateCartItem(context.Background(), 999, 5)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.Equal(t, 0, itemRepo.updateCalls)
	assert.Equal(t, 0, itemRepo.deleteCalls)
}

func TestRemoveFromCart(t *testing.T) {
	svc, _, _, _ := newCartFixture(testProduct(1, "Chair", "CHR-1", "100.00"))
	ctx := context.Background()

	added, err := svc.AddToCart(ctx, "s", 1, 1)
	require.NoError(t, err)

	removed, err := svc.RemoveFromCart(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveFromCart(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestClearCartEmptyTriggersNoWrite(t *testing.T) {
	svc, _, itemRepo, _ := newCartFixture()
	ctx := context.Background()

	// Absent cart.
	require.NoError(t, svc.ClearCart(ctx, "nobody"))

	// Existing but empty cart.
	_, _, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, "s"))

	assert.Equal(t, 0, itemRepo.deleteByCartCalls)
}

func TestClearCartRemovesAllItems(t *testing.T) {
	svc, _, itemRepo, _ := newCartFixture(
		testProduct(1, "Chair", "CHR-1", "100.00"),
		testProduct(2, "Table", "TBL-1", "250.00"),
	)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s", 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s", 2, 1)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "s"))
	assert.Equal(t, 1, itemRepo.deleteByCartCalls)

	cart, _, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())
}

func TestCartTotalsAreDerived(t *testing.T) {
	svc, _, _, _ := newCartFixture(
		testProduct(1, "Chair", "CHR-1", "100.00"),
		testProduct(2, "Table", "TBL-1", "250.50"),
	)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s", 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s", 2, 3)
	require.NoError(t, err)

	cart, _, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, cart.TotalAmount.Equal(price("951.50")))
	assert.Equal(t, 5, cart.TotalItems)
}
