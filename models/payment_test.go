package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumptionCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ConsumptionCount
	}{
		{"count", `3`, 3},
		{"float count", `2.0`, 2},
		{"list", `[{"id":1},{"id":2}]`, 2},
		{"null", `null`, 0},
		{"object", `{"count":3}`, 0},
		{"string", `"three"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result PaymentResult
			err := json.Unmarshal([]byte(`{"orderId":"ORD-1","stockConsumptions":`+tt.raw+`}`), &result)
			require.NoError(t, err)
			assert.Equal(t, "ORD-1", result.OrderID)
			assert.Equal(t, tt.want, result.StockConsumptions)
		})
	}
}
