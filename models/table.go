package models

import "github.com/shopspring/decimal"

const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
)

// TableSummary is one cell of the tables grid.
type TableSummary struct {
	TableID      string          `json:"table_id"`
	Status       string          `json:"status"`
	BillID       string          `json:"bill_id,omitempty"`
	ItemCount    int             `json:"item_count"`
	DisplayTotal decimal.Decimal `json:"display_total"`
	CheckingOut  bool            `json:"checking_out"`
}
