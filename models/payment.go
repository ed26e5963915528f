package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const DefaultPaymentMethod = "cash"

// PaymentItem is one bill line as submitted to POST /orders/process-payment.
type PaymentItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    Category        `json:"category,omitempty"`
	Ingredients []Ingredient    `json:"ingredients,omitempty"`
	OriginalID  string          `json:"originalId,omitempty"`
	LiquorID    string          `json:"liquorId,omitempty"`
	VolumeMl    int             `json:"volumeMl,omitempty"`
}

type PaymentRequest struct {
	TableID       string          `json:"tableId"`
	Items         []PaymentItem   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	ServiceCharge bool            `json:"serviceCharge"`
	PaymentMethod string          `json:"paymentMethod"`
	CustomerID    *string         `json:"customerId"`
}

type MissedIngredient struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ConsumptionCount accepts either a count or the list of touched records.
// Field ini cuma informasi, bentuk lain dihitung 0 supaya order yang sudah
// tercatat di backend tidak dianggap gagal.
type ConsumptionCount int

func (c *ConsumptionCount) UnmarshalJSON(data []byte) error {
	*c = 0
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = ConsumptionCount(int(n))
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		*c = ConsumptionCount(len(list))
		return nil
	}
	if utils.ErrorLogger != nil {
		utils.ErrorLogger.Printf("Unexpected consumption count %s, counting 0", truncate(string(data), 64))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

type PaymentResult struct {
	OrderID            string             `json:"orderId"`
	StockConsumptions  ConsumptionCount   `json:"stockConsumptions"`
	LiquorConsumptions ConsumptionCount   `json:"liquorConsumptions"`
	MissedIngredients  []MissedIngredient `json:"missedIngredients"`
	ProcessingNotes    json.RawMessage    `json:"processingNotes,omitempty"`
}
