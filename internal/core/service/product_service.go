package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
	"github.com/thumbtack/onlineshop/internal/pkg/metrics"
)

// ProductService implements the catalog: administrators manage products,
// any logged-in account reads them.
type ProductService struct {
	guard      *Guard
	products   ports.ProductRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewProductService(guard *Guard, products ports.ProductRepository, categories ports.CategoryRepository, log zerolog.Logger) *ProductService {
	return &ProductService{guard: guard, products: products, categories: categories, log: log}
}

func (s *ProductService) Add(ctx context.Context, token string, in ports.AddProductInput) (*ports.ProductView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	categoryIDs, err := s.validateCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{Name: in.Name, Price: in.Price}
	if in.Count != nil {
		product.Count = *in.Count
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	if len(categoryIDs) > 0 {
		if err := s.products.SetCategories(ctx, product.ID, categoryIDs); err != nil {
			return nil, fmt.Errorf("add product categories: %w", err)
		}
	}

	s.log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product added")
	return s.view(ctx, product)
}

// Edit updates the requested fields. When categories are supplied, every id
// is checked before the old associations are touched, so a failed edit
// leaves them intact.
func (s *ProductService) Edit(ctx context.Context, token string, id int64, in ports.EditProductInput) (*ports.ProductView, error) {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return nil, err
	}

	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	var categoryIDs []int64
	if in.Categories != nil {
		if categoryIDs, err = s.validateCategories(ctx, in.Categories); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Count != nil {
		product.Count = *in.Count
	}

	if in.Categories != nil {
		if err := s.products.SetCategories(ctx, product.ID, categoryIDs); err != nil {
			return nil, fmt.Errorf("edit product categories: %w", err)
		}
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("edit product: %w", err)
	}

	return s.view(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, token string, id int64) error {
	if _, err := s.guard.RequireAdmin(ctx, token); err != nil {
		return err
	}

	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) Get(ctx context.Context, token string, id int64) (*ports.ProductView, error) {
	if _, err := s.guard.Resolve(ctx, token); err != nil {
		return nil, err
	}

	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, product)
}

// List returns the catalog filtered by category and shaped by sort order.
func (s *ProductService) List(ctx context.Context, token string, in ports.ListProductsInput) ([]ports.ProductView, error) {
	if _, err := s.guard.Resolve(ctx, token); err != nil {
		return nil, err
	}

	order := in.Order
	if order != domain.SortByCategory {
		order = domain.SortByProduct
	}

	start := time.Now()
	defer func() {
		metrics.CatalogListDuration.WithLabelValues(string(order)).Observe(time.Since(start).Seconds())
	}()

	snap, err := s.snapshot(ctx, in.Filter, order)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if order == domain.SortByCategory {
		rows := listByCategory(in.Filter, snap)
		out := make([]ports.ProductView, 0, len(rows))
		for _, r := range rows {
			v := productView(r.Product, nil)
			if r.Category != nil {
				v.Categories = []int64{r.Category.ID}
			}
			out = append(out, v)
		}
		return out, nil
	}

	rows := listByProduct(in.Filter, snap)
	out := make([]ports.ProductView, 0, len(rows))
	for _, r := range rows {
		out = append(out, productView(r.Product, r.CategoryIDs))
	}
	return out, nil
}

// snapshot loads only the data the requested listing needs.
func (s *ProductService) snapshot(ctx context.Context, filter domain.CategoryFilter, order domain.SortOrder) (catalogSnapshot, error) {
	var (
		snap catalogSnapshot
		err  error
	)

	needAll := !filter.Present() && order == domain.SortByProduct
	needUncategorized := filter.Uncategorized() || (!filter.Present() && order == domain.SortByCategory)
	needLinks := !filter.Uncategorized()

	if needAll {
		if snap.all, err = s.products.GetAll(ctx); err != nil {
			return snap, err
		}
	}
	if needUncategorized {
		if snap.uncategorized, err = s.products.GetAllWithoutCategory(ctx); err != nil {
			return snap, err
		}
	}
	if needLinks {
		if snap.links, err = s.products.GetAllWithCategory(ctx); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

func (s *ProductService) load(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProductNotFound.WithField("id"))
	}
	return product, nil
}

// validateCategories de-duplicates ids and checks every one exists.
func (s *ProductService) validateCategories(ctx context.Context, ids []int64) ([]int64, error) {
	unique := domain.UniqueIDs(ids)
	for _, id := range unique {
		if _, err := s.categories.Get(ctx, id); err != nil {
			return nil, notFoundAs(err, domain.ErrCategoryNotFound.WithField("categories"))
		}
	}
	return unique, nil
}

func (s *ProductService) view(ctx context.Context, p *domain.Product) (*ports.ProductView, error) {
	ids, err := s.products.GetCategories(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("product categories: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	v := productView(*p, ids)
	return &v, nil
}

func productView(p domain.Product, categories []int64) ports.ProductView {
	return ports.ProductView{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Count:      p.Count,
		Categories: categories,
	}
}
