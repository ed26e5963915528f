package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BillStatusActive = "active"
	BillStatusClosed = "closed"
)

// ServiceChargeRate is added on top of the subtotal when enabled.
var ServiceChargeRate = decimal.RequireFromString("0.10")

func init() {
	// the backend expects plain JSON numbers for money
	decimal.MarshalJSONWithoutQuotes = true
}

type Bill struct {
	ID                   string          `json:"id"`
	TableID              string          `json:"table_id"`
	Items                []BillLineItem  `json:"items"`
	ServiceChargeEnabled bool            `json:"service_charge_enabled"`
	Status               string          `json:"status"`
	Total                decimal.Decimal `json:"total"`
	OrderID              string          `json:"order_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	ClosedAt             *time.Time      `json:"closed_at"`
}

// RecomputeTotal resets Total to the sum of price times quantity.
func (b *Bill) RecomputeTotal() {
	total := decimal.Zero
	for _, line := range b.Items {
		total = total.Add(line.LineTotal())
	}
	b.Total = total
}

// ServiceChargeAmount is derived at read time, never stored.
func (b Bill) ServiceChargeAmount() decimal.Decimal {
	if !b.ServiceChargeEnabled {
		return decimal.Zero
	}
	return b.Total.Mul(ServiceChargeRate).Round(2)
}

func (b Bill) DisplayTotal() decimal.Decimal {
	return b.Total.Add(b.ServiceChargeAmount())
}

func (b Bill) IsEmpty() bool {
	return len(b.Items) == 0
}

func (b Bill) IsActive() bool {
	return b.Status == BillStatusActive
}

// FindLine returns the index of the line with id, or -1.
func (b Bill) FindLine(id string) int {
	for i, line := range b.Items {
		if line.ID == id {
			return i
		}
	}
	return -1
}

// Clone copies the bill deep enough that edits to the copy never leak back.
func (b Bill) Clone() Bill {
	out := b
	out.Items = make([]BillLineItem, len(b.Items))
	copy(out.Items, b.Items)
	if b.ClosedAt != nil {
		closed := *b.ClosedAt
		out.ClosedAt = &closed
	}
	return out
}

// BillView is what the presentation layer renders.
type BillView struct {
	Bill
	ServiceCharge decimal.Decimal `json:"service_charge"`
	DisplayTotal  decimal.Decimal `json:"display_total"`
}

func (b Bill) View() BillView {
	return BillView{
		Bill:          b,
		ServiceCharge: b.ServiceChargeAmount(),
		DisplayTotal:  b.DisplayTotal(),
	}
}
