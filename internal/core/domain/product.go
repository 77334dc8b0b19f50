package domain

// Product is a catalog item. Count is the stock on hand.
type Product struct {
	ID    int64
	Name  string
	Price int
	Count int
}

// ProductCategory is one row of the product/category join relation with the
// category resolved.
type ProductCategory struct {
	Product  Product
	Category Category
}

// ProductWithCategories is a by-product listing row: the product and every
// category it belongs to.
type ProductWithCategories struct {
	Product     Product
	CategoryIDs []int64
}

// ProductInCategory is a by-category listing row. Category is nil for a
// product that belongs to no category.
type ProductInCategory struct {
	Product  Product
	Category *Category
}

// SortOrder selects the shape of a catalog listing.
type SortOrder string

const (
	SortByProduct  SortOrder = "product"
	SortByCategory SortOrder = "category"
)

// ParseSortOrder maps an external value to a SortOrder; unknown or empty
// values fall back to SortByProduct.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortByCategory {
		return SortByCategory
	}
	return SortByProduct
}

// CategoryFilter restricts a catalog listing. The zero value matches every
// product. A present filter with no ids matches only uncategorized products.
type CategoryFilter struct {
	present bool
	ids     []int64
}

// AnyCategory matches every product.
func AnyCategory() CategoryFilter { return CategoryFilter{} }

// InCategories matches products owning at least one of ids, or, when ids is
// empty, products owning no category at all.
func InCategories(ids []int64) CategoryFilter {
	return CategoryFilter{present: true, ids: ids}
}

func (f CategoryFilter) Present() bool { return f.present }

// Uncategorized reports whether only products without categories match.
func (f CategoryFilter) Uncategorized() bool { return f.present && len(f.ids) == 0 }

// IDs returns the distinct category ids in first-seen order.
func (f CategoryFilter) IDs() []int64 {
	return UniqueIDs(f.ids)
}

// UniqueIDs drops repeated ids keeping the first occurrence.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
