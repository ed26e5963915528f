package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogData struct {
	Items []struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Price    float64 `json:"unit_price"`
	} `json:"items"`
	Warnings []string `json:"warnings"`
}

func TestGetCatalog(t *testing.T) {
	r, _ := setupAPI(t)

	w, resp := doRequest(t, r, "GET", "/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog catalogData
	require.NoError(t, json.Unmarshal(resp.Data, &catalog))
	assert.Empty(t, catalog.Warnings)
	// 6 item statis + 1 food + 2 liquor
	assert.Len(t, catalog.Items, 9)

	w, resp = doRequest(t, r, "GET", "/catalog?category=Liquor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &catalog))
	assert.Len(t, catalog.Items, 2)
}

func TestGetPortions(t *testing.T) {
	r, _ := setupAPI(t)

	w, resp := doRequest(t, r, "GET", "/catalog/liquor_a1/portions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Portions []struct {
			Label    string  `json:"label"`
			VolumeMl int     `json:"volume_ml"`
			Price    float64 `json:"price"`
		} `json:"portions"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Portions, 7)
	assert.Equal(t, "Half", data.Portions[1].Label)
	assert.Equal(t, 375, data.Portions[1].VolumeMl)
	assert.Equal(t, 500.0, data.Portions[1].Price)

	w, _ = doRequest(t, r, "GET", "/catalog/liquor_b1/portions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, "GET", "/catalog/f1/portions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, "GET", "/catalog/missing/portions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStaticItems(t *testing.T) {
	r, _ := setupAPI(t)

	w, _ := doRequest(t, r, "PUT", "/catalog/static", []map[string]interface{}{
		{"name": "Lime Juice", "category": "Others", "unit_price": 300},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doRequest(t, r, "GET", "/catalog/static", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "static_lime_juice", items[0]["id"])

	w, resp = doRequest(t, r, "GET", "/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog catalogData
	require.NoError(t, json.Unmarshal(resp.Data, &catalog))
	assert.Len(t, catalog.Items, 4)

	w, _ = doRequest(t, r, "PUT", "/catalog/static", []map[string]interface{}{{"unit_price": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePortionPrices(t *testing.T) {
	r, _ := setupAPI(t)

	w, _ := doRequest(t, r, "PUT", "/catalog/liquor/liquor_a1/portions", map[string]interface{}{
		"portions": []map[string]interface{}{{"_id": "p1", "price": 70}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, "PUT", "/catalog/liquor/a1/portions", map[string]interface{}{
		"portions": []map[string]interface{}{{"price": 70}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// backend tidak mengenal liquor ini
	w, _ = doRequest(t, r, "PUT", "/catalog/liquor/zz/portions", map[string]interface{}{
		"portions": []map[string]interface{}{{"_id": "p1", "price": 70}},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRefreshCatalog(t *testing.T) {
	r, _ := setupAPI(t)

	w, resp := doRequest(t, r, "POST", "/catalog/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Catalog refreshed", resp.Message)
}
