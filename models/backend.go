package models

import "github.com/shopspring/decimal"

// BackendResponse is the envelope every backend endpoint answers with.
type BackendResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type RemotePortion struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Volume int             `json:"volume"`
	Price  decimal.Decimal `json:"price"`
}

// RemoteLiquor mirrors an entry of GET /liquor.
type RemoteLiquor struct {
	ID                string          `json:"_id"`
	Name              string          `json:"name"`
	Brand             string          `json:"brand"`
	Type              string          `json:"type"`
	PricePerBottle    decimal.Decimal `json:"pricePerBottle"`
	BottlesInStock    float64         `json:"bottlesInStock"`
	BottleVolume      int             `json:"bottleVolume"`
	AlcoholPercentage float64         `json:"alcoholPercentage"`
	Portions          []RemotePortion `json:"portions"`
}

// RemoteFoodItem mirrors an entry of GET /food-items.
type RemoteFoodItem struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	Ingredients  []Ingredient    `json:"ingredients"`
	IsAvailable  *bool           `json:"isAvailable,omitempty"`
}

type PortionUpdateRequest struct {
	Portions []PortionPrice `json:"portions"`
}
