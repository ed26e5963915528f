package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllTables(t *testing.T) {
	r, _ := setupAPI(t)
	doRequest(t, r, "POST", "/tables/T2/bill", nil)
	doRequest(t, r, "POST", "/tables/T2/bill/items", map[string]interface{}{"item_id": "f1", "quantity": 2})

	w, resp := doRequest(t, r, "GET", "/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "List of tables", resp.Message)

	var tables []struct {
		TableID      string  `json:"table_id"`
		Status       string  `json:"status"`
		ItemCount    int     `json:"item_count"`
		DisplayTotal float64 `json:"display_total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tables))
	require.Len(t, tables, 2)
	assert.Equal(t, "available", tables[0].Status)
	assert.Equal(t, "occupied", tables[1].Status)
	assert.Equal(t, 2, tables[1].ItemCount)
	assert.Equal(t, 1000.0, tables[1].DisplayTotal)
}

func TestHistoryAndReceipt(t *testing.T) {
	r, _ := setupAPI(t)
	doRequest(t, r, "POST", "/tables/T1/bill", nil)
	doRequest(t, r, "POST", "/tables/T1/bill/items", map[string]interface{}{"item_id": "f1"})
	w, _ := doRequest(t, r, "POST", "/tables/T1/bill/close", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doRequest(t, r, "GET", "/bills/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []billData
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "closed", history[0].Status)
	billID := history[0].ID

	w, resp = doRequest(t, r, "GET", "/bills/history?table_id=T2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	assert.Empty(t, history)

	w, _ = doRequest(t, r, "GET", "/bills/history/unknown/receipt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, r, "GET", "/bills/history/"+billID+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "%PDF-")
}

func TestCheckoutMetrics(t *testing.T) {
	r, _ := setupAPI(t)
	doRequest(t, r, "POST", "/tables/T1/bill", nil)
	doRequest(t, r, "POST", "/tables/T1/bill/close", nil)

	w, resp := doRequest(t, r, "GET", "/checkout/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var metrics map[string]int64
	require.NoError(t, json.Unmarshal(resp.Data, &metrics))
	assert.Equal(t, int64(1), metrics["attempts"])
	assert.Equal(t, int64(1), metrics["empty_bills"])
}
