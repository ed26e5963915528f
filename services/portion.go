package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
)

const DefaultBottleVolumeMl = 750

// PortionOption is a pour size priced as a share of the bottle price.
// Options with a zero VolumeMl take their volume from the bottle.
type PortionOption struct {
	Label      string
	Multiplier decimal.Decimal
	VolumeMl   int
}

// PortionOptions is the fixed, ordered list offered for liquor bottles.
var PortionOptions = []PortionOption{
	{Label: "Bottle", Multiplier: decimal.RequireFromString("1.00")},
	{Label: "Half", Multiplier: decimal.RequireFromString("0.50")},
	{Label: "Quarter", Multiplier: decimal.RequireFromString("0.25")},
	{Label: "100ml Shot", Multiplier: decimal.RequireFromString("0.15"), VolumeMl: 100},
	{Label: "75ml Shot", Multiplier: decimal.RequireFromString("0.12"), VolumeMl: 75},
	{Label: "50ml Shot", Multiplier: decimal.RequireFromString("0.08"), VolumeMl: 50},
	{Label: "25ml Shot", Multiplier: decimal.RequireFromString("0.05"), VolumeMl: 25},
}

// ResolvedPortion is a portion option priced for a specific item.
type ResolvedPortion struct {
	Label      string          `json:"label"`
	VolumeMl   int             `json:"volume_ml"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Price      decimal.Decimal `json:"price"`
	LineID     string          `json:"line_id"`
}

// NeedsPortion reports whether the item must be sold by pour size.
// Beer and cigarettes always go on the bill as whole units.
func NeedsPortion(item models.MenuItem) bool {
	if item.Category != models.CategoryLiquor {
		return false
	}
	return !strings.EqualFold(item.Type, models.LiquorTypeBeer)
}

// PortionsFor prices every portion option for item.
func PortionsFor(item models.MenuItem) []ResolvedPortion {
	if !NeedsPortion(item) {
		return nil
	}
	out := make([]ResolvedPortion, 0, len(PortionOptions))
	for _, opt := range PortionOptions {
		volume := portionVolume(item, opt)
		out = append(out, ResolvedPortion{
			Label:      opt.Label,
			VolumeMl:   volume,
			Multiplier: opt.Multiplier,
			Price:      portionPrice(item, opt, volume),
			LineID:     PortionLineID(item.ID, volume),
		})
	}
	return out
}

// ResolvePortion derives the bill line for the portion labelled label.
func ResolvePortion(item models.MenuItem, label string) (models.BillLineItem, error) {
	if !NeedsPortion(item) {
		return models.BillLineItem{}, fmt.Errorf("%s: %w", item.Name, ErrPortionNotAllowed)
	}
	opt, ok := findPortionOption(label)
	if !ok {
		return models.BillLineItem{}, fmt.Errorf("%q: %w", label, ErrPortionNotFound)
	}

	volume := portionVolume(item, opt)
	return models.BillLineItem{
		ID:         PortionLineID(item.ID, volume),
		OriginalID: item.ID,
		SourceID:   item.SourceID,
		Name:       fmt.Sprintf("%s (%s)", item.Name, opt.Label),
		Category:   item.Category,
		Price:      portionPrice(item, opt, volume),
		Quantity:   1,
		Portion: &models.PortionDescriptor{
			Label:           opt.Label,
			VolumeMl:        volume,
			PriceMultiplier: opt.Multiplier,
		},
	}, nil
}

func PortionLineID(baseItemID string, volumeMl int) string {
	return fmt.Sprintf("%s_%dml", baseItemID, volumeMl)
}

func findPortionOption(label string) (PortionOption, bool) {
	label = strings.TrimSpace(label)
	for _, opt := range PortionOptions {
		if strings.EqualFold(opt.Label, label) {
			return opt, true
		}
	}
	return PortionOption{}, false
}

func portionVolume(item models.MenuItem, opt PortionOption) int {
	if opt.VolumeMl > 0 {
		return opt.VolumeMl
	}
	bottle := item.BottleVolume
	if bottle <= 0 {
		bottle = DefaultBottleVolumeMl
	}
	return int(decimal.NewFromInt(int64(bottle)).Mul(opt.Multiplier).Round(0).IntPart())
}

// portionPrice rounds to whole currency units. A price edited upstream for the
// same volume overrides the computed one.
func portionPrice(item models.MenuItem, opt PortionOption, volume int) decimal.Decimal {
	for _, p := range item.Portions {
		if p.VolumeMl == volume && p.Price.IsPositive() {
			return p.Price
		}
	}
	return item.UnitPrice.Mul(opt.Multiplier).Round(0)
}
