// In file: internal/tools/products.go
package tools

import (
	"sort"
	"strings"
)

// Product is one catalog entry. The catalog's insertion order doubles as
// its popularity order.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// defaultCatalog is the fixed in-memory dataset; there is no outbound call
// for product search.
var defaultCatalog = []Product{
	{ID: 1, Name: "Smartphone X", Price: 799.99, Category: "Electronics", Rating: 4.5},
	{ID: 2, Name: "Laptop Pro", Price: 1299.99, Category: "Electronics", Rating: 4.8},
	{ID: 3, Name: "Wireless Headphones", Price: 149.99, Category: "Electronics", Rating: 4.3},
	{ID: 4, Name: "Running Shoes", Price: 89.99, Category: "Sports", Rating: 4.2},
	{ID: 5, Name: "Coffee Maker", Price: 59.99, Category: "Kitchen", Rating: 4.0},
	{ID: 6, Name: "Fitness Tracker", Price: 79.99, Category: "Electronics", Rating: 4.1},
	{ID: 7, Name: "Backpack", Price: 49.99, Category: "Fashion", Rating: 4.4},
	{ID: 8, Name: "Smart Watch", Price: 199.99, Category: "Electronics", Rating: 4.6},
}

// ProductCatalog filters and sorts the static catalog.
type ProductCatalog struct {
	products []Product
}

func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{products: defaultCatalog}
}

// Search filters by case-insensitive substring on the product name, then
// optional category equality and max-price ceiling (0 means no ceiling),
// then sorts. "popularity" keeps catalog order.
func (c *ProductCatalog) Search(query, category string, maxPrice float64, sortBy string) Result {
	queryLower := strings.ToLower(query)

	var results []Product
	for _, p := range c.products {
		if !strings.Contains(strings.ToLower(p.Name), queryLower) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if maxPrice > 0 && p.Price > maxPrice {
			continue
		}
		results = append(results, p)
	}

	switch sortBy {
	case "price_asc":
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price < results[j].Price })
	case "price_desc":
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price > results[j].Price })
	case "rating":
		sort.SliceStable(results, func(i, j int) bool { return results[i].Rating > results[j].Rating })
	}

	if results == nil {
		results = []Product{}
	}

	res := Result{
		"query":   query,
		"sort_by": sortBy,
		"count":   len(results),
		"results": results,
	}
	if category != "" {
		res["category"] = category
	}
	if maxPrice > 0 {
		res["max_price"] = maxPrice
	}
	return res
}
