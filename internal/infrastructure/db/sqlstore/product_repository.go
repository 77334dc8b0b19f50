package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = m.ID
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).
		Updates(map[string]any{"name": p.Name, "price": p.Price, "stock": p.Count})
	if res.Error != nil {
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes the product, its category links and any basket lines
// holding it.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&productCategoryModel{}).Error; err != nil {
			return fmt.Errorf("delete product links: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&basketItemModel{}).Error; err != nil {
			return fmt.Errorf("delete basket lines: %w", err)
		}
		if err := tx.Delete(&productModel{}, id).Error; err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p := m.toDomain()
	return &p, nil
}

func (r *ProductRepository) GetCategories(ctx context.Context, productID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&productCategoryModel{}).
		Where("product_id = ?", productID).
		Order("category_id").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("product categories: %w", err)
	}
	return ids, nil
}

// SetCategories replaces the product's links in one transaction.
func (r *ProductRepository) SetCategories(ctx context.Context, productID int64, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&productCategoryModel{}).Error; err != nil {
			return fmt.Errorf("clear product links: %w", err)
		}
		if len(categoryIDs) == 0 {
			return nil
		}

		links := make([]productCategoryModel, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			links = append(links, productCategoryModel{ProductID: productID, CategoryID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("insert product links: %w", err)
		}
		return nil
	})
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return toProducts(models), nil
}

func (r *ProductRepository) GetAllWithoutCategory(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id)").
		Order("name, id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list uncategorized products: %w", err)
	}
	return toProducts(models), nil
}

func (r *ProductRepository) GetAllWithCategory(ctx context.Context) ([]domain.ProductCategory, error) {
	var rows []productCategoryRow
	err := r.db.WithContext(ctx).
		Table("product_categories AS pc").
		Select("p.id AS product_id, p.name AS product_name, p.price, p.stock, " +
			"c.id AS category_id, c.name AS category_name, c.parent_id AS category_parent").
		Joins("JOIN products p ON p.id = pc.product_id").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Order("c.name, p.name, p.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categorized products: %w", err)
	}

	out := make([]domain.ProductCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ProductCategory{
			Product:  domain.Product{ID: row.ProductID, Name: row.ProductName, Price: row.Price, Count: row.Stock},
			Category: domain.Category{ID: row.CategoryID, Name: row.CategoryName, ParentID: row.CategoryParent},
		})
	}
	return out, nil
}

func toProducts(models []productModel) []domain.Product {
	out := make([]domain.Product, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out
}
