package models

import "github.com/shopspring/decimal"

// PortionDescriptor marks a line derived from a liquor bottle.
type PortionDescriptor struct {
	Label           string          `json:"label"`
	VolumeMl        int             `json:"volume_ml"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

// BillLineItem carries a price snapshot taken when the item was added.
// Catalog price changes never touch existing lines.
type BillLineItem struct {
	ID          string             `json:"id"`
	OriginalID  string             `json:"original_id,omitempty"`
	SourceID    string             `json:"source_id,omitempty"`
	Name        string             `json:"name"`
	Category    Category           `json:"category"`
	Price       decimal.Decimal    `json:"price"`
	Quantity    int                `json:"quantity"`
	Portion     *PortionDescriptor `json:"portion,omitempty"`
	Ingredients []Ingredient       `json:"ingredients,omitempty"`
}

func (l BillLineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewLineItem snapshots a catalog item into a bill line.
func NewLineItem(item MenuItem, quantity int) BillLineItem {
	return BillLineItem{
		ID:          item.ID,
		SourceID:    item.SourceID,
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.UnitPrice,
		Quantity:    quantity,
		Ingredients: item.Ingredients,
	}
}
