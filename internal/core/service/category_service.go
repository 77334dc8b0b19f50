package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// CategoryService manages the two-level category tree. Every operation is
// administrator-only.
type CategoryService struct {
	guard      *Guard
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewCategoryService(guard *Guard, categories ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{guard: guard, categories: categories, log: log}
}

func (s *CategoryService) Add(ctx context.Context, token string, in ports.AddCategoryInput) (*ports.CategoryView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	exists, err := s.categories.Exists(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}
	if exists {
		return nil, domain.ErrSameCategoryName.WithField("name")
	}

	category := &domain.Category{Name: in.Name}
	if in.ParentID != nil {
		parent, err := s.loadParent(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		category.ParentID = &parent.ID
		category.Parent = parent
	}

	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}

	s.log.Info().Int64("category_id", category.ID).Str("name", category.Name).Msg("category added")
	return categoryView(category), nil
}

func (s *CategoryService) Get(ctx context.Context, token string, id int64) (*ports.CategoryView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return categoryView(category), nil
}

// Edit renames and/or re-parents a category. At least one of the two must
// be requested.
func (s *CategoryService) Edit(ctx context.Context, token string, id int64, in ports.EditCategoryInput) (*ports.CategoryView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name == nil && in.ParentID == nil {
		return nil, domain.ErrEditCategoryEmpty
	}

	if in.Name != nil && *in.Name != category.Name {
		exists, err := s.categories.Exists(ctx, *in.Name)
		if err != nil {
			return nil, fmt.Errorf("edit category: %w", err)
		}
		if exists {
			return nil, domain.ErrSameCategoryName.WithField("name")
		}
	}

	var parent *domain.Category
	if in.ParentID != nil {
		parent, err = s.categories.Get(ctx, *in.ParentID)
		if err != nil {
			return nil, notFoundAs(err, domain.ErrCategoryNotFound.WithField("parentId"))
		}

		hasChildren, err := s.categories.HasChildren(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("edit category: %w", err)
		}
		if hasChildren || parent.ID == category.ID {
			return nil, domain.ErrCategoryToSubcategory.WithField("parentId")
		}
		if parent.IsSubcategory() {
			return nil, domain.ErrSecondLevelSubcategory.WithField("parentId")
		}
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if parent != nil {
		category.ParentID = &parent.ID
		category.Parent = parent
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("edit category: %w", err)
	}
	return categoryView(category), nil
}

// Delete removes the category. Subcategories and product associations are
// removed by the storage layer.
func (s *CategoryService) Delete(ctx context.Context, token string, id int64) error {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.log.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) List(ctx context.Context, token string) ([]ports.CategoryView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]ports.CategoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, *categoryView(c))
	}
	return out, nil
}

func (s *CategoryService) load(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrCategoryNotFound.WithField("id"))
	}
	return category, nil
}

// loadParent resolves a would-be parent and enforces the depth cap.
func (s *CategoryService) loadParent(ctx context.Context, id int64) (*domain.Category, error) {
	parent, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrCategoryNotFound.WithField("parentId"))
	}
	if parent.IsSubcategory() {
		return nil, domain.ErrSecondLevelSubcategory.WithField("parentId")
	}
	return parent, nil
}

// notFoundAs replaces a not-found error of the same kind as target with
// target (carrying its field) and wraps anything else.
func notFoundAs(err error, target *domain.Error) error {
	if errors.Is(err, target) {
		return target
	}
	return fmt.Errorf("lookup: %w", err)
}

func categoryView(c *domain.Category) *ports.CategoryView {
	v := &ports.CategoryView{ID: c.ID, Name: c.Name, ParentID: c.ParentID}
	if c.Parent != nil {
		v.ParentName = c.Parent.Name
	}
	return v
}
