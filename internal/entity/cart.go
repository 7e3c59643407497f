package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is a session-keyed shopping cart. The session identifier is an
// opaque caller-supplied correlation key, not an authentication
// credential. Carts are created lazily on first access and never pruned.
type Cart struct {
	ID        int64     `db:"id"`
	SessionID string    `db:"session_id"`
	CreatedAt time.Time `db:"created_at"`

	Items []CartItem
}

// TotalAmount recomputes the cart total from the current item list.
// Totals are never stored, so they cannot go stale.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

// TotalItems is the sum of quantities over all items.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// CartItem is a single product line in a cart. UnitPrice is captured when
// the item is first added and never refreshed from the catalog (the
// price-lock semantic), so later catalog price changes do not alter
// existing lines. At most one item exists per (cart, product) pair.
type CartItem struct {
	ID         int64           `db:"id"`
	CartID     int64           `db:"cart_id"`
	ProductID  int64           `db:"product_id"`
	Quantity   int             `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	CreatedAt  time.Time       `db:"created_at"`
	ModifiedAt *time.Time      `db:"modified_at"`

	Product *Product
}

// TotalPrice is quantity times the locked unit price.
func (ci *CartItem) TotalPrice() decimal.Decimal {
	return ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
