package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// BasketRepository implements ports.BasketRepository.
type BasketRepository struct {
	db *gorm.DB
}

func NewBasketRepository(db *gorm.DB) *BasketRepository {
	return &BasketRepository{db: db}
}

func (r *BasketRepository) lines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("basket_items AS b").
		Select("b.account_id, b.product_id, p.name, p.price, p.stock, b.quantity").
		Joins("JOIN products p ON p.id = b.product_id")
}

func (r *BasketRepository) Get(ctx context.Context, accountID int64) ([]domain.BasketItem, error) {
	var rows []basketRow
	if err := r.lines(ctx).Where("b.account_id = ?", accountID).Order("p.name, p.id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get basket: %w", err)
	}

	out := make([]domain.BasketItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *BasketRepository) Find(ctx context.Context, accountID, productID int64) (*domain.BasketItem, error) {
	var rows []basketRow
	err := r.lines(ctx).
		Where("b.account_id = ? AND b.product_id = ?", accountID, productID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find basket line: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrProductNotFound
	}
	item := rows[0].toDomain()
	return &item, nil
}

func (r *BasketRepository) Put(ctx context.Context, accountID, productID int64, count int) error {
	line := basketItemModel{AccountID: accountID, ProductID: productID, Quantity: count}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&line).Error
	if err != nil {
		return fmt.Errorf("put basket line: %w", err)
	}
	return nil
}

func (r *BasketRepository) Delete(ctx context.Context, accountID, productID int64) error {
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&basketItemModel{}).Error
	if err != nil {
		return fmt.Errorf("delete basket line: %w", err)
	}
	return nil
}
