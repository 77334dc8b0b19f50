package service

import (
	"cmp"
	"slices"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// catalogSnapshot is the raw data a listing is computed from. Which parts
// are populated depends on the filter and order; see ProductService.snapshot.
type catalogSnapshot struct {
	all           []domain.Product
	uncategorized []domain.Product
	links         []domain.ProductCategory
}

// listByProduct returns every qualifying product once, with its full
// category list, ordered by product name.
//
//	absent filter    → all products
//	empty filter     → products without categories
//	non-empty filter → products owning at least one listed category
func listByProduct(filter domain.CategoryFilter, snap catalogSnapshot) []domain.ProductWithCategories {
	owned := categoriesByProduct(snap.links)

	var products []domain.Product
	switch {
	case !filter.Present():
		products = snap.all
	case filter.Uncategorized():
		products = snap.uncategorized
	default:
		wanted := idSet(filter.IDs())
		seen := make(map[int64]struct{})
		for _, link := range snap.links {
			if _, ok := wanted[link.Category.ID]; !ok {
				continue
			}
			if _, dup := seen[link.Product.ID]; dup {
				continue
			}
			seen[link.Product.ID] = struct{}{}
			products = append(products, link.Product)
		}
	}

	rows := make([]domain.ProductWithCategories, 0, len(products))
	for _, p := range products {
		ids := owned[p.ID]
		if ids == nil {
			ids = []int64{}
		}
		rows = append(rows, domain.ProductWithCategories{Product: p, CategoryIDs: ids})
	}

	slices.SortStableFunc(rows, func(a, b domain.ProductWithCategories) int {
		return compareProducts(a.Product, b.Product)
	})
	return rows
}

// listByCategory returns one row per matching product/category pair, each
// carrying only that category, ordered by category name and then product
// name. Uncategorized products (absent or empty filter only) come first,
// ordered by name, with no category.
func listByCategory(filter domain.CategoryFilter, snap catalogSnapshot) []domain.ProductInCategory {
	var rows []domain.ProductInCategory

	if !filter.Present() || filter.Uncategorized() {
		bare := slices.Clone(snap.uncategorized)
		slices.SortStableFunc(bare, compareProducts)
		for _, p := range bare {
			rows = append(rows, domain.ProductInCategory{Product: p})
		}
		if filter.Uncategorized() {
			return rows
		}
	}

	var wanted map[int64]struct{}
	if filter.Present() {
		wanted = idSet(filter.IDs())
	}

	var grouped []domain.ProductInCategory
	for _, link := range snap.links {
		if wanted != nil {
			if _, ok := wanted[link.Category.ID]; !ok {
				continue
			}
		}
		category := link.Category
		grouped = append(grouped, domain.ProductInCategory{Product: link.Product, Category: &category})
	}

	slices.SortStableFunc(grouped, func(a, b domain.ProductInCategory) int {
		return cmp.Or(
			cmp.Compare(a.Category.Name, b.Category.Name),
			cmp.Compare(a.Category.ID, b.Category.ID),
			compareProducts(a.Product, b.Product),
		)
	})

	if rows == nil {
		rows = make([]domain.ProductInCategory, 0, len(grouped))
	}
	return append(rows, grouped...)
}

// categoriesByProduct collects the category ids of every product, ascending.
func categoriesByProduct(links []domain.ProductCategory) map[int64][]int64 {
	out := make(map[int64][]int64)
	for _, link := range links {
		out[link.Product.ID] = append(out[link.Product.ID], link.Category.ID)
	}
	for id := range out {
		slices.Sort(out[id])
		out[id] = slices.Compact(out[id])
	}
	return out
}

func compareProducts(a, b domain.Product) int {
	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
