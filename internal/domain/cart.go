package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product in a user's cart. A (user, product) pair holds at
// most one line; adding the same product again bumps the quantity instead.
// ProductName and UnitPrice are read from the catalog at snapshot time, not
// stored with the line.
type CartLine struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	UserID uuid.UUID  `json:"user_id"`
	Lines  []CartLine `json:"lines"`
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}
