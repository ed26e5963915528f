package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/sync/errgroup"
)

const liquorIDPrefix = "liquor_"
const staticIDPrefix = "static_"

// CatalogSource fetches the remote halves of the catalog.
type CatalogSource interface {
	FetchFoodItems(ctx context.Context) ([]models.RemoteFoodItem, error)
	FetchLiquor(ctx context.Context) ([]models.RemoteLiquor, error)
	UpdateLiquorPortions(ctx context.Context, liquorID string, portions []models.PortionPrice) error
}

// Catalog is the merged, de-duplicated list of sellable items.
type Catalog struct {
	Items       []models.MenuItem `json:"items"`
	Warnings    []string          `json:"warnings"`
	RefreshedAt time.Time         `json:"refreshed_at"`
}

type CatalogService struct {
	source  CatalogSource
	persist Persistence

	mu      sync.RWMutex
	current Catalog
	index   map[string]models.MenuItem
}

func NewCatalogService(source CatalogSource, persist Persistence) *CatalogService {
	return &CatalogService{
		source:  source,
		persist: persist,
		current: Catalog{Items: []models.MenuItem{}, Warnings: []string{}},
		index:   make(map[string]models.MenuItem),
	}
}

// CategoryForLiquorType maps the backend liquor type onto a category.
// Unknown types fall back to Liquor.
func CategoryForLiquorType(liquorType string) models.Category {
	switch strings.ToLower(strings.TrimSpace(liquorType)) {
	case models.LiquorTypeCigarettes:
		return models.CategoryCigarettes
	case models.LiquorTypeIceCubes:
		return models.CategoryIceCubes
	case models.LiquorTypeSandyBottles:
		return models.CategorySandyBottles
	case models.LiquorTypeBeer, models.LiquorTypeHardLiquor, models.LiquorTypeWine:
		return models.CategoryLiquor
	case models.LiquorTypeOther:
		return models.CategoryOthers
	default:
		return models.CategoryLiquor
	}
}

// CategoryForFood maps the free-form food category onto a category.
func CategoryForFood(category string) models.Category {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "bites", "bite", "snacks":
		return models.CategoryBites
	case "others", "other":
		return models.CategoryOthers
	default:
		return models.CategoryFoods
	}
}

// Refresh rebuilds the catalog from all three sources. A failing source
// contributes nothing and adds a warning; Refresh itself never fails.
func (cs *CatalogService) Refresh(ctx context.Context) Catalog {
	var (
		food      []models.RemoteFoodItem
		liquor    []models.RemoteLiquor
		foodErr   error
		liquorErr error
	)

	// Ambil food dan liquor secara paralel; error per sumber tidak membatalkan yang lain
	var g errgroup.Group
	g.Go(func() error {
		food, foodErr = cs.source.FetchFoodItems(ctx)
		return nil
	})
	g.Go(func() error {
		liquor, liquorErr = cs.source.FetchLiquor(ctx)
		return nil
	})
	_ = g.Wait()

	warnings := []string{}
	static, err := cs.StaticItems()
	if err != nil {
		utils.ErrorLogger.Printf("Error reading static menu override: %v", err)
		warnings = append(warnings, "Local menu could not be read, using the default list")
	}
	if foodErr != nil {
		utils.ErrorLogger.Printf("Error fetching food items: %v", foodErr)
		warnings = append(warnings, fmt.Sprintf("Food items unavailable: %v", foodErr))
		food = nil
	}
	if liquorErr != nil {
		utils.ErrorLogger.Printf("Error fetching liquor items: %v", liquorErr)
		warnings = append(warnings, fmt.Sprintf("Liquor items unavailable: %v", liquorErr))
		liquor = nil
	}

	merged := MergeCatalog(static, FoodMenuItems(food), LiquorMenuItems(liquor))

	catalog := Catalog{
		Items:       merged,
		Warnings:    warnings,
		RefreshedAt: time.Now(),
	}

	index := make(map[string]models.MenuItem, len(merged))
	for _, item := range merged {
		index[item.ID] = item
	}

	cs.mu.Lock()
	cs.current = catalog
	cs.index = index
	cs.mu.Unlock()

	utils.InfoLogger.Printf("Catalog refreshed: %d items, %d warnings", len(merged), len(warnings))
	return cs.Snapshot()
}

// Snapshot returns a copy of the last refreshed catalog.
func (cs *CatalogService) Snapshot() Catalog {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := Catalog{
		Items:       make([]models.MenuItem, len(cs.current.Items)),
		Warnings:    make([]string, len(cs.current.Warnings)),
		RefreshedAt: cs.current.RefreshedAt,
	}
	copy(out.Items, cs.current.Items)
	copy(out.Warnings, cs.current.Warnings)
	return out
}

func (cs *CatalogService) Lookup(id string) (models.MenuItem, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	item, ok := cs.index[id]
	return item, ok
}

// StaticItems returns the persisted static override, or the built-in list
// when none is stored. The default list is also returned alongside an error.
func (cs *CatalogService) StaticItems() ([]models.MenuItem, error) {
	raw, ok, err := cs.persist.Get(StaticMenuKey)
	if err != nil {
		return DefaultStaticItems(), err
	}
	if !ok || len(raw) == 0 {
		return DefaultStaticItems(), nil
	}
	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return DefaultStaticItems(), fmt.Errorf("decode %s: %w", StaticMenuKey, err)
	}
	return normalizeStatic(items), nil
}

// SetStaticItems stores a new static override list.
func (cs *CatalogService) SetStaticItems(items []models.MenuItem) error {
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("static item %q: name is required", item.ID)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("static item %q: price must not be negative", item.Name)
		}
	}
	data, err := json.Marshal(normalizeStatic(items))
	if err != nil {
		return fmt.Errorf("encode static items: %w", err)
	}
	return cs.persist.Set(StaticMenuKey, data)
}

// UpdatePortionPrices persists edited portion prices upstream and refreshes
// the catalog so new lines pick them up.
func (cs *CatalogService) UpdatePortionPrices(ctx context.Context, liquorID string, portions []models.PortionPrice) (Catalog, error) {
	liquorID = strings.TrimPrefix(liquorID, liquorIDPrefix)
	for _, p := range portions {
		if p.ID == "" {
			return Catalog{}, fmt.Errorf("portion id is required")
		}
		if p.Price.IsNegative() {
			return Catalog{}, fmt.Errorf("portion %s: price must not be negative", p.ID)
		}
	}
	if err := cs.source.UpdateLiquorPortions(ctx, liquorID, portions); err != nil {
		return Catalog{}, err
	}
	utils.InfoLogger.Printf("Updated %d portion prices for liquor %s", len(portions), liquorID)
	return cs.Refresh(ctx), nil
}

// MergeCatalog concatenates sources in order and drops repeated ids; the
// first occurrence wins.
func MergeCatalog(sources ...[]models.MenuItem) []models.MenuItem {
	seen := make(map[string]bool)
	out := []models.MenuItem{}
	for _, items := range sources {
		for _, item := range items {
			if item.ID == "" || seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			out = append(out, item)
		}
	}
	return out
}

func FoodMenuItems(food []models.RemoteFoodItem) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(food))
	for _, f := range food {
		if f.IsAvailable != nil && !*f.IsAvailable {
			continue
		}
		price := f.SellingPrice
		if !price.IsPositive() {
			price = f.BasePrice
		}
		out = append(out, models.MenuItem{
			ID:          f.ID,
			SourceID:    f.ID,
			Source:      models.SourceFood,
			Name:        f.Name,
			Category:    CategoryForFood(f.Category),
			UnitPrice:   nonNegative(price),
			Ingredients: f.Ingredients,
		})
	}
	return out
}

// LiquorMenuItems namespaces liquor ids so they never collide with food ids.
func LiquorMenuItems(liquor []models.RemoteLiquor) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(liquor))
	for _, l := range liquor {
		name := l.Name
		if l.Brand != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(l.Brand)) {
			name = l.Brand + " " + l.Name
		}
		portions := make([]models.Portion, 0, len(l.Portions))
		for _, p := range l.Portions {
			portions = append(portions, models.Portion{
				SourceID: p.ID,
				Name:     p.Name,
				VolumeMl: p.Volume,
				Price:    p.Price,
			})
		}
		out = append(out, models.MenuItem{
			ID:           liquorIDPrefix + l.ID,
			SourceID:     l.ID,
			Source:       models.SourceLiquor,
			Name:         name,
			Category:     CategoryForLiquorType(l.Type),
			Type:         strings.ToLower(strings.TrimSpace(l.Type)),
			UnitPrice:    nonNegative(l.PricePerBottle),
			BottleVolume: l.BottleVolume,
			Portions:     portions,
			StockHint:    l.BottlesInStock,
		})
	}
	return out
}

// DefaultStaticItems is the built-in local menu.
func DefaultStaticItems() []models.MenuItem {
	return []models.MenuItem{
		staticItem("ice_bowl", "Ice Cube Bowl", models.CategoryIceCubes, 200),
		staticItem("sandy_bottle", "Sandy Bottle", models.CategorySandyBottles, 150),
		staticItem("soda_400", "Soda 400ml", models.CategoryOthers, 250),
		staticItem("water_1l", "Mineral Water 1L", models.CategoryOthers, 200),
		staticItem("french_fries", "French Fries", models.CategoryBites, 900),
		staticItem("devilled_chicken", "Devilled Chicken", models.CategoryBites, 1800),
	}
}

func staticItem(id, name string, category models.Category, price int64) models.MenuItem {
	return models.MenuItem{
		ID:        staticIDPrefix + id,
		Source:    models.SourceStatic,
		Name:      name,
		Category:  category,
		UnitPrice: decimal.NewFromInt(price),
	}
}

func normalizeStatic(items []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(item.Name), " ", "_"))
		}
		if !strings.HasPrefix(item.ID, staticIDPrefix) {
			item.ID = staticIDPrefix + item.ID
		}
		if !item.Category.Valid() {
			item.Category = models.CategoryOthers
		}
		item.Source = models.SourceStatic
		out = append(out, item)
	}
	return out
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
