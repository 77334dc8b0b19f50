package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// CategoryRepository implements ports.CategoryRepository. Subcategories and
// product links go away with their category through ON DELETE CASCADE.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Insert(ctx context.Context, c *domain.Category) error {
	m := categoryModel{Name: c.Name, ParentID: c.ParentID}
	if err := r.db.WithContext(ctx).Omit("Parent").Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrSameCategoryName.WithField("name")
		}
		return fmt.Errorf("insert category: %w", err)
	}
	c.ID = m.ID
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	res := r.db.WithContext(ctx).Model(&categoryModel{}).Where("id = ?", c.ID).
		Updates(map[string]any{"name": c.Name, "parent_id": c.ParentID})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return domain.ErrSameCategoryName.WithField("name")
		}
		return fmt.Errorf("update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&categoryModel{}, id).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryModel
	if err := r.db.WithContext(ctx).Preload("Parent").First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var m categoryModel
	if err := r.db.WithContext(ctx).Preload("Parent").Where("name = ?", name).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CategoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&categoryModel{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&categoryModel{}).Where("parent_id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count subcategories: %w", err)
	}
	return n > 0, nil
}

// GetAll returns every category ordered by name.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	var models []categoryModel
	if err := r.db.WithContext(ctx).Preload("Parent").Order("name, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]*domain.Category, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}
