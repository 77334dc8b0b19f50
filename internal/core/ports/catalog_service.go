package ports

import (
	"context"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// AddCategoryInput creates a root category, or a subcategory when ParentID is set.
type AddCategoryInput struct {
	Name     string
	ParentID *int64
}

// EditCategoryInput changes the fields that are non-nil.
type EditCategoryInput struct {
	Name     *string
	ParentID *int64
}

// CategoryView is the outward projection of a category.
type CategoryView struct {
	ID         int64
	Name       string
	ParentID   *int64
	ParentName string
}

// CategoryService defines the category tree use cases.
type CategoryService interface {
	Add(ctx context.Context, token string, in AddCategoryInput) (*CategoryView, error)
	Get(ctx context.Context, token string, id int64) (*CategoryView, error)
	Edit(ctx context.Context, token string, id int64, in EditCategoryInput) (*CategoryView, error)
	Delete(ctx context.Context, token string, id int64) error
	List(ctx context.Context, token string) ([]CategoryView, error)
}

// AddProductInput creates a product. A nil Count means an empty stock.
type AddProductInput struct {
	Name       string
	Price      int
	Count      *int
	Categories []int64
}

// EditProductInput changes the fields that are non-nil. A nil Categories
// keeps the associations; an empty non-nil slice removes all of them.
type EditProductInput struct {
	Name       *string
	Price      *int
	Count      *int
	Categories []int64
}

// ListProductsInput selects and shapes a catalog listing.
type ListProductsInput struct {
	Filter domain.CategoryFilter
	Order  domain.SortOrder
}

// ProductView is the outward projection of a product. Categories is nil for
// by-category rows of uncategorized products.
type ProductView struct {
	ID         int64
	Name       string
	Price      int
	Count      int
	Categories []int64
}

// ProductService defines the catalog use cases.
type ProductService interface {
	Add(ctx context.Context, token string, in AddProductInput) (*ProductView, error)
	Edit(ctx context.Context, token string, id int64, in EditProductInput) (*ProductView, error)
	Delete(ctx context.Context, token string, id int64) error
	Get(ctx context.Context, token string, id int64) (*ProductView, error)
	List(ctx context.Context, token string, in ListProductsInput) ([]ProductView, error)
}
