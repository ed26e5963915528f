package models

import "github.com/shopspring/decimal"

// Portion is a pour size published by the backend for a liquor bottle.
type Portion struct {
	SourceID string          `json:"source_id,omitempty"`
	Name     string          `json:"name"`
	VolumeMl int             `json:"volume_ml"`
	Price    decimal.Decimal `json:"price"`
}

// Ingredient is consumed from stock when a food item is sold.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// MenuItem is one normalized entry of the merged catalog.
// Items are immutable once fetched; the catalog is replaced wholesale on refresh.
type MenuItem struct {
	ID           string          `json:"id"`
	SourceID     string          `json:"source_id,omitempty"`
	Source       string          `json:"source"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	Type         string          `json:"type,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	BottleVolume int             `json:"bottle_volume,omitempty"`
	Portions     []Portion       `json:"portions,omitempty"`
	StockHint    float64         `json:"stock_hint"`
	Ingredients  []Ingredient    `json:"ingredients,omitempty"`
}

// PortionPrice is an edited portion price sent back to the backend.
type PortionPrice struct {
	ID    string          `json:"_id"`
	Price decimal.Decimal `json:"price"`
}
