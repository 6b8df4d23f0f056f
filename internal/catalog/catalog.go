// Package catalog holds the café menu: a static, read-only list of
// purchasable items supplied whole to the rest of the system.
package catalog

import "github.com/cherishcafe/orderflow/internal/domain"

type Catalog struct {
	items []domain.CatalogItem
	byID  map[string]domain.CatalogItem
}

func New() *Catalog {
	c := &Catalog{byID: make(map[string]domain.CatalogItem, len(menu))}
	for _, item := range menu {
		c.items = append(c.items, item)
		c.byID[item.ID] = item
	}
	return c
}

// Items returns the menu in display order.
func (c *Catalog) Items() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) ByID(id string) (domain.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

var menu = []domain.CatalogItem{
	{ID: "cheese-croissants", Name: "Cheese Croissants", Price: 250, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Buttery, flaky croissants filled with melted cheese. Perfect with your morning coffee."},
	{ID: "waffles-half", Name: "Waffles Basic (Half)", Price: 120, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Light and crispy Belgian-style waffle. Just right for a light bite."},
	{ID: "waffles-full", Name: "Waffles Basic (Full)", Price: 250, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Full portion of our signature crispy waffles, golden and delicious."},
	{ID: "wraps", Name: "Wraps (Cheese/Beef/Chicken)", Price: 250, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Warm tortilla wraps with your choice of melted cheese, seasoned beef, or grilled chicken."},
	{ID: "oatmeal", Name: "Oatmeal Fruit & Honey", Price: 250, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Creamy oatmeal topped with fresh seasonal fruits and a drizzle of Ethiopian honey."},
	{ID: "grilled-cheese", Name: "Grilled Cheese", Price: 180, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Classic comfort food with golden toasted bread and melted cheese inside."},
	{ID: "avocado-toast", Name: "Avocado Toast", Price: 180, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Fresh smashed avocado on artisan brown bread, seasoned to perfection."},
	{ID: "avocado-toast-omelet", Name: "Avocado Toast with Omelet", Price: 320, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Our avocado toast elevated with a fluffy, golden omelet."},
	{ID: "cheese-omelet", Name: "Cheese Omelet with Veggies", Price: 300, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Fluffy eggs folded with melted cheese and fresh garden vegetables."},
	{ID: "omelet-veggies", Name: "Omelet with Veggies", Price: 250, Category: domain.CategoryBreakfast, Image: "oatmeal.jpg", Description: "Light and healthy omelet loaded with colorful vegetables."},
	{ID: "french-toast-fruits", Name: "French Toast with Fruits", Price: 250, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Golden French toast topped with fresh fruits, a sweet start to your day."},
	{ID: "french-toast-cheese", Name: "French Toast with Cheese", Price: 280, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Savory twist on a classic: French toast with melted cheese."},
	{ID: "plain-croissants", Name: "Plain Croissants", Price: 150, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Classic butter croissant, perfectly flaky and fresh from the oven."},
	{ID: "pastries", Name: "Seasonal Pastries", Price: 150, Category: domain.CategoryBreakfast, Image: "waffles.jpg", Description: "Our daily selection of fresh-baked pastries. Ask what's special today."},

	{ID: "espresso", Name: "Espresso", Price: 45, Category: domain.CategoryCoffee, Image: "espresso.jpg", Description: "Bold, rich single shot of our house-roasted Ethiopian beans."},
	{ID: "macchiato", Name: "Macchiato", Price: 55, Category: domain.CategoryCoffee, Image: "espresso.jpg", Description: "Espresso \"marked\" with a touch of foamed milk."},
	{ID: "americano", Name: "Americano", Price: 60, Category: domain.CategoryCoffee, Image: "espresso.jpg", Description: "Smooth espresso diluted with hot water for a longer, gentler coffee."},
	{ID: "cappuccino", Name: "Cappuccino", Price: 75, Category: domain.CategoryCoffee, Image: "coffee-cup.jpg", Description: "Classic Italian-style with equal parts espresso, steamed milk, and foam."},
	{ID: "latte", Name: "Caffè Latte", Price: 80, Category: domain.CategoryCoffee, Image: "coffee-cup.jpg", Description: "Silky smooth espresso with steamed milk and light foam."},
	{ID: "mocha", Name: "Mocha", Price: 90, Category: domain.CategoryCoffee, Image: "coffee-cup.jpg", Description: "Rich espresso meets chocolate, topped with steamed milk."},

	{ID: "iced-latte", Name: "Iced Latte", Price: 90, Category: domain.CategoryColdDrink, Image: "iced-latte.jpg", Description: "Chilled espresso with cold milk over ice, refreshing and smooth."},
	{ID: "iced-americano", Name: "Iced Americano", Price: 70, Category: domain.CategoryColdDrink, Image: "iced-latte.jpg", Description: "Bold espresso over ice with cold water. Crisp and invigorating."},
	{ID: "cold-brew", Name: "Cold Brew", Price: 85, Category: domain.CategoryColdDrink, Image: "iced-latte.jpg", Description: "12-hour steeped coffee, naturally sweet with low acidity."},
	{ID: "fresh-juice", Name: "Fresh Juice", Price: 80, Category: domain.CategoryColdDrink, Image: "iced-latte.jpg", Description: "Daily selection of freshly squeezed fruit juices."},

	{ID: "black-tea", Name: "Black Tea", Price: 40, Category: domain.CategoryTea, Image: "coffee-cup.jpg", Description: "Traditional Ethiopian black tea, bold and warming."},
	{ID: "green-tea", Name: "Green Tea", Price: 45, Category: domain.CategoryTea, Image: "coffee-cup.jpg", Description: "Light and refreshing green tea with natural antioxidants."},
	{ID: "chai-latte", Name: "Chai Latte", Price: 75, Category: domain.CategoryTea, Image: "coffee-cup.jpg", Description: "Spiced tea blended with steamed milk, aromatic and comforting."},

	{ID: "jebena-coffee", Name: "Jebena Coffee", Price: 100, Category: domain.CategorySpecials, Image: "coffee-cup.jpg", Description: "Traditional Ethiopian coffee ceremony style: roasted, ground, and brewed in a clay pot."},
	{ID: "honey-latte", Name: "Honey Latte", Price: 95, Category: domain.CategorySpecials, Image: "coffee-cup.jpg", Description: "Our signature latte sweetened with local Ethiopian honey."},
	{ID: "spiced-mocha", Name: "Spiced Mocha", Price: 100, Category: domain.CategorySpecials, Image: "coffee-cup.jpg", Description: "Ethiopian spices meet rich chocolate and espresso."},
}
