package models

// Category is the normalized sales category of a catalog item.
type Category string

const (
	CategoryFoods        Category = "Foods"
	CategoryLiquor       Category = "Liquor"
	CategoryCigarettes   Category = "Cigarettes"
	CategoryIceCubes     Category = "IceCubes"
	CategorySandyBottles Category = "SandyBottles"
	CategoryBites        Category = "Bites"
	CategoryOthers       Category = "Others"
)

// Upstream liquor types as sent by the backend.
const (
	LiquorTypeBeer         = "beer"
	LiquorTypeHardLiquor   = "hard_liquor"
	LiquorTypeWine         = "wine"
	LiquorTypeCigarettes   = "cigarettes"
	LiquorTypeIceCubes     = "ice_cubes"
	LiquorTypeSandyBottles = "sandy_bottles"
	LiquorTypeOther        = "other"
)

// Catalog sources, in merge order.
const (
	SourceStatic = "static"
	SourceFood   = "food"
	SourceLiquor = "liquor"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFoods, CategoryLiquor, CategoryCigarettes, CategoryIceCubes,
		CategorySandyBottles, CategoryBites, CategoryOthers:
		return true
	}
	return false
}
