package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
)

func bottle() models.MenuItem {
	return models.MenuItem{
		ID:           "liquor_a1",
		SourceID:     "a1",
		Source:       models.SourceLiquor,
		Name:         "Old Arrack",
		Category:     models.CategoryLiquor,
		Type:         models.LiquorTypeHardLiquor,
		UnitPrice:    dec("1000"),
		BottleVolume: 750,
	}
}

func TestResolvePortion(t *testing.T) {
	tests := []struct {
		label     string
		wantID    string
		wantPrice string
		wantVol   int
	}{
		{label: "Bottle", wantID: "liquor_a1_750ml", wantPrice: "1000", wantVol: 750},
		{label: "Half", wantID: "liquor_a1_375ml", wantPrice: "500", wantVol: 375},
		{label: "Quarter", wantID: "liquor_a1_188ml", wantPrice: "250", wantVol: 188},
		{label: "100ml Shot", wantID: "liquor_a1_100ml", wantPrice: "150", wantVol: 100},
		{label: "75ml Shot", wantID: "liquor_a1_75ml", wantPrice: "120", wantVol: 75},
		{label: "50ml Shot", wantID: "liquor_a1_50ml", wantPrice: "80", wantVol: 50},
		{label: "25ml Shot", wantID: "liquor_a1_25ml", wantPrice: "50", wantVol: 25},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ResolvePortion(bottle(), tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, "liquor_a1", got.OriginalID)
			assert.Equal(t, "a1", got.SourceID)
			assert.Equal(t, "Old Arrack ("+tt.label+")", got.Name)
			assert.True(t, got.Price.Equal(dec(tt.wantPrice)), "price %s", got.Price)
			require.NotNil(t, got.Portion)
			assert.Equal(t, tt.wantVol, got.Portion.VolumeMl)
		})
	}
}

func TestResolvePortion_DefaultBottleVolume(t *testing.T) {
	item := bottle()
	item.BottleVolume = 0

	got, err := ResolvePortion(item, "half")
	require.NoError(t, err)
	assert.Equal(t, 375, got.Portion.VolumeMl)
}

func TestResolvePortion_UpstreamPriceWins(t *testing.T) {
	item := bottle()
	item.Portions = []models.Portion{{SourceID: "p1", Name: "Shot", VolumeMl: 25, Price: dec("60")}}

	got, err := ResolvePortion(item, "25ml Shot")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(dec("60")))

	half, err := ResolvePortion(item, "Half")
	require.NoError(t, err)
	assert.True(t, half.Price.Equal(dec("500")))
}

func TestResolvePortion_Errors(t *testing.T) {
	_, err := ResolvePortion(bottle(), "Double")
	assert.True(t, errors.Is(err, ErrPortionNotFound))

	beer := bottle()
	beer.Type = models.LiquorTypeBeer
	_, err = ResolvePortion(beer, "Half")
	assert.True(t, errors.Is(err, ErrPortionNotAllowed))

	food := models.MenuItem{ID: "f1", Category: models.CategoryFoods, UnitPrice: dec("500")}
	_, err = ResolvePortion(food, "Half")
	assert.True(t, errors.Is(err, ErrPortionNotAllowed))
}

func TestPortionsFor(t *testing.T) {
	portions := PortionsFor(bottle())
	require.Len(t, portions, len(PortionOptions))
	assert.Equal(t, "Bottle", portions[0].Label)
	assert.Equal(t, "25ml Shot", portions[len(portions)-1].Label)

	assert.Nil(t, PortionsFor(models.MenuItem{Category: models.CategoryCigarettes}))
}

func TestPortionLinesMergeOnRepeat(t *testing.T) {
	first, _ := ResolvePortion(bottle(), "25ml Shot")
	second, _ := ResolvePortion(bottle(), "25ml Shot")

	bill, err := ReduceBill(activeBill(), AddCommand(first, 1))
	require.NoError(t, err)
	bill, err = ReduceBill(bill, AddCommand(second, 1))
	require.NoError(t, err)

	require.Len(t, bill.Items, 1)
	assert.Equal(t, 2, bill.Items[0].Quantity)
	assert.True(t, bill.Total.Equal(dec("100")))
}
