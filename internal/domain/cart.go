package domain

import "github.com/shopspring/decimal"

// CartLine aggregates every unit of one product added to a cart. Product points at
// the catalog entry, the cart never owns product identity.
type CartLine struct {
	Product  *Product
	Quantity int
}

// Subtotal is unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshotLine is the persisted form of a cart line. Price is a snapshot taken
// when the cart was saved; restoring always re-resolves the product by id.
type CartSnapshotLine struct {
	ProductID int
	Name      string
	Quantity  int
	Price     decimal.Decimal
}
