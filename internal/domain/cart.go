package domain

import "github.com/shopspring/decimal"

func init() {
	// amounts go out as plain JSON numbers, the storefront scripts do arithmetic on them
	decimal.MarshalJSONWithoutQuotes = true
}

// CartLineItem one entry of a session cart. Price is captured when the item is added.
type CartLineItem struct {
	ProductID int64           `json:"id" mapstructure:"id"`
	Name      string          `json:"name" mapstructure:"name"`
	Price     decimal.Decimal `json:"price" mapstructure:"price"`
	Quantity  int             `json:"quantity" mapstructure:"quantity"`
}

// LineTotal price x quantity
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CloneItems returns an independent copy of items
func CloneItems(items []CartLineItem) []CartLineItem {
	if items == nil {
		return []CartLineItem{}
	}
	out := make([]CartLineItem, len(items))
	copy(out, items)
	return out
}
