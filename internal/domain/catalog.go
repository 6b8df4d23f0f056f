package domain

type Category string

const (
	CategoryBreakfast Category = "Breakfast & Pastries"
	CategoryCoffee    Category = "Coffee"
	CategoryColdDrink Category = "Cold Drinks"
	CategoryTea       Category = "Tea"
	CategorySpecials  Category = "House Specials"
)

// CatalogItem is a purchasable product definition. Prices are whole ETB.
// Items are created at build time and never mutated.
type CatalogItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

// ConsolidatedLine groups cart entries for one item into a quantity line.
type ConsolidatedLine struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity"`
}

func (l ConsolidatedLine) Subtotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}
