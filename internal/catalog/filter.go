package catalog

import (
	"strings"

	"github.com/Goga-Rid/pitza/internal/backend"
)

// CategoryAll bypasses the category filter.
const CategoryAll = "Все"

// Categories is the fixed menu category set, in display order.
var Categories = []string{CategoryAll, "pizza", "combo", "dessert", "drink", "snack"}

// CategoryNames maps category keys to display names.
var CategoryNames = map[string]string{
	CategoryAll: "Все",
	"pizza":     "Пиццы",
	"combo":     "Комбо",
	"dessert":   "Десерты",
	"drink":     "Напитки",
	"snack":     "Закуски",
}

// Filter applies the category and search filters as a logical AND: category
// is exact-string equality (CategoryAll matches everything), search is a
// case-insensitive substring match over name or description.
func Filter(products []backend.Product, category, search string) []backend.Product {
	needle := strings.ToLower(strings.TrimSpace(search))

	var out []backend.Product
	for _, p := range products {
		if category != CategoryAll && category != "" && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}
