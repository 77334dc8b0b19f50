package ports

import (
	"context"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Insert(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	// Get loads the category with its parent resolved, or returns
	// domain.ErrCategoryNotFound.
	Get(ctx context.Context, id int64) (*domain.Category, error)
	// FindByName returns domain.ErrCategoryNotFound for unknown names.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Exists(ctx context.Context, name string) (bool, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
}

// ProductRepository defines persistence operations for products and their
// category associations.
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	// Delete removes the product together with its category associations.
	Delete(ctx context.Context, id int64) error
	// Get returns domain.ErrProductNotFound for unknown ids.
	Get(ctx context.Context, id int64) (*domain.Product, error)
	// GetCategories returns the ids of the product's categories, ascending.
	GetCategories(ctx context.Context, productID int64) ([]int64, error)
	// SetCategories replaces the whole association set of the product.
	SetCategories(ctx context.Context, productID int64, categoryIDs []int64) error

	GetAll(ctx context.Context) ([]domain.Product, error)
	GetAllWithoutCategory(ctx context.Context) ([]domain.Product, error)
	// GetAllWithCategory returns one row per product/category association.
	GetAllWithCategory(ctx context.Context) ([]domain.ProductCategory, error)
}
