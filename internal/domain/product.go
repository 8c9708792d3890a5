package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDescription is stored for products that come without a description.
const DefaultDescription = "No description"

// Product is one catalog entry. Stock only ever goes down through purchases.
type Product struct {
	ID          int             `validate:"gt=0"`
	Name        string          `validate:"required,excludesall=0x2C"`
	Price       decimal.Decimal `validate:"gte=0"`
	Stock       int             `validate:"gte=0"`
	Description string          `validate:"excludesall=0x2C"`
}

func (p Product) String() string {
	return fmt.Sprintf("%d\t%s\t%s\tstock: %d\t%s", p.ID, p.Name, p.Price.StringFixed(2), p.Stock, p.Description)
}
