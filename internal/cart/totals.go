package cart

import "github.com/shopspring/decimal"

// Totals are derived from a cart on demand and never persisted.
type Totals struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func Summarize(items []Item) Totals {
	t := Totals{Subtotal: decimal.Zero}
	for _, it := range items {
		t.Count += it.Quantity
		line := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		t.Subtotal = t.Subtotal.Add(line)
	}
	return t
}
