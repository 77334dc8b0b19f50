package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// PurchaseRepository implements ports.PurchaseRepository with conditional
// updates, so two concurrent orders can never oversell stock or overdraw a
// deposit.
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Commit(ctx context.Context, order domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range order.Lines {
			res := tx.Model(&productModel{}).
				Where("id = ? AND stock >= ?", l.ProductID, l.Count).
				Update("stock", gorm.Expr("stock - ?", l.Count))
			if res.Error != nil {
				return fmt.Errorf("take stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrNotEnoughProduct
			}
		}

		total := order.Total()
		res := tx.Model(&accountModel{}).
			Where("id = ? AND deposit >= ?", order.AccountID, total).
			Update("deposit", gorm.Expr("deposit - ?", total))
		if res.Error != nil {
			return fmt.Errorf("charge deposit: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotEnoughMoney
		}

		if order.Source != domain.SourceBasket {
			return nil
		}
		for _, l := range order.Lines {
			err := tx.Model(&basketItemModel{}).
				Where("account_id = ? AND product_id = ?", order.AccountID, l.ProductID).
				Update("quantity", gorm.Expr("quantity - ?", l.Count)).Error
			if err != nil {
				return fmt.Errorf("reduce basket line: %w", err)
			}
		}
		err := tx.Where("account_id = ? AND quantity <= 0", order.AccountID).Delete(&basketItemModel{}).Error
		if err != nil {
			return fmt.Errorf("drop empty basket lines: %w", err)
		}
		return nil
	})
}

func (r *PurchaseRepository) AddDeposit(ctx context.Context, accountID int64, amount int) error {
	res := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("id = ? AND role = ?", accountID, string(domain.RoleClient)).
		Update("deposit", gorm.Expr("deposit + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("add deposit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
