package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
)

func TestBackendClient_FetchLiquor(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   string
		mockStatusCode int
		wantCount      int
		wantErr        bool
	}{
		{
			name:           "success",
			mockResponse:   `{"success":true,"data":[{"_id":"a1","name":"Arrack","type":"hard_liquor","pricePerBottle":1000,"bottleVolume":750,"portions":[{"_id":"p1","name":"Shot","volume":25,"price":50}]}]}`,
			mockStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:           "success false",
			mockResponse:   `{"success":false,"message":"inventory locked"}`,
			mockStatusCode: http.StatusOK,
			wantErr:        true,
		},
		{
			name:           "server error",
			mockResponse:   `{"success":false,"error":"boom"}`,
			mockStatusCode: http.StatusInternalServerError,
			wantErr:        true,
		},
		{
			name:           "not json",
			mockResponse:   `<html>bad gateway</html>`,
			mockStatusCode: http.StatusOK,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/liquor", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				w.WriteHeader(tt.mockStatusCode)
				w.Write([]byte(tt.mockResponse))
			}))
			defer server.Close()

			client := NewBackendClient(server.URL, "secret", time.Second)
			got, err := client.FetchLiquor(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)
			assert.True(t, got[0].PricePerBottle.Equal(dec("1000")))
			assert.Equal(t, 25, got[0].Portions[0].Volume)
		})
	}
}

func TestBackendClient_BackendErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"message":"Insufficient stock for Arrack"}`))
	}))
	defer server.Close()

	client := NewBackendClient(server.URL, "", time.Second)
	_, err := client.FetchFoodItems(context.Background())

	var berr *BackendError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, http.StatusUnprocessableEntity, berr.StatusCode)
	assert.Equal(t, "Insufficient stock for Arrack", berr.Message)
}

func TestBackendClient_ProcessPayment(t *testing.T) {
	var received models.PaymentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/process-payment", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Write([]byte(`{"success":true,"data":{"orderId":"ORD-42","stockConsumptions":[{"id":1},{"id":2}],"liquorConsumptions":1,"missedIngredients":[{"name":"Lime","reason":"out of stock"}]}}`))
	}))
	defer server.Close()

	client := NewBackendClient(server.URL, "", time.Second)
	result, err := client.ProcessPayment(context.Background(), models.PaymentRequest{
		TableID:       "T1",
		Items:         []models.PaymentItem{{ID: "f1", Name: "Fried Rice", Price: dec("500"), Quantity: 2}},
		Total:         dec("1000"),
		PaymentMethod: models.DefaultPaymentMethod,
	})
	require.NoError(t, err)

	assert.Equal(t, "T1", received.TableID)
	assert.True(t, received.Total.Equal(dec("1000")))
	assert.Equal(t, "cash", received.PaymentMethod)

	assert.Equal(t, "ORD-42", result.OrderID)
	assert.Equal(t, models.ConsumptionCount(2), result.StockConsumptions)
	assert.Equal(t, models.ConsumptionCount(1), result.LiquorConsumptions)
	require.Len(t, result.MissedIngredients, 1)
	assert.Equal(t, "Lime", result.MissedIngredients[0].Name)
}

func TestBackendClient_ProcessPayment_EmptyBillBody(t *testing.T) {
	var body map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"success":true,"data":{"orderId":"ORD-0"}}`))
	}))
	defer server.Close()

	bill := activeBill()
	bill.Items = nil

	client := NewBackendClient(server.URL, "", time.Second)
	_, err := client.ProcessPayment(context.Background(), BuildPaymentRequest(bill))
	require.NoError(t, err)

	assert.Equal(t, "[]", string(body["items"]))
	assert.Equal(t, "null", string(body["customerId"]))
	assert.Equal(t, "0", string(body["total"]))
	assert.Equal(t, `"T1"`, string(body["tableId"]))
}

func TestBackendClient_ProcessPayment_OddConsumptionShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"orderId":"ORD-9","stockConsumptions":{"count":3},"liquorConsumptions":2.0}}`))
	}))
	defer server.Close()

	client := NewBackendClient(server.URL, "", time.Second)
	result, err := client.ProcessPayment(context.Background(), BuildPaymentRequest(activeBill()))
	require.NoError(t, err)

	assert.Equal(t, "ORD-9", result.OrderID)
	assert.Equal(t, models.ConsumptionCount(0), result.StockConsumptions)
	assert.Equal(t, models.ConsumptionCount(2), result.LiquorConsumptions)
}

func TestBackendClient_UpdateLiquorPortions(t *testing.T) {
	var body models.PortionUpdateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/liquor/a1/portions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer server.Close()

	client := NewBackendClient(server.URL+"/", "", time.Second)
	err := client.UpdateLiquorPortions(context.Background(), "a1", []models.PortionPrice{{ID: "p1", Price: dec("75")}})
	require.NoError(t, err)
	require.Len(t, body.Portions, 1)
	assert.Equal(t, "p1", body.Portions[0].ID)
}

func TestBackendClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	client := NewBackendClient(server.URL, "", time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchLiquor(ctx)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}
