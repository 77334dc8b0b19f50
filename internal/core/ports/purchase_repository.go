package ports

import (
	"context"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

// BasketRepository stores the per-client basket lines.
type BasketRepository interface {
	// Get returns the client's basket with current product data.
	Get(ctx context.Context, accountID int64) ([]domain.BasketItem, error)
	// Find returns domain.ErrProductNotFound when the product is not in the basket.
	Find(ctx context.Context, accountID, productID int64) (*domain.BasketItem, error)
	// Put inserts the line or overwrites its count.
	Put(ctx context.Context, accountID, productID int64, count int) error
	// Delete is a no-op when the line is absent.
	Delete(ctx context.Context, accountID, productID int64) error
}

// PurchaseRepository applies an order atomically: stock decreases, the
// deposit decreases and, for basket orders, the bought counts are taken off
// the basket lines (a line reaching zero is removed).
// It returns domain.ErrNotEnoughProduct or domain.ErrNotEnoughMoney when a
// concurrent change invalidated the order, leaving storage untouched.
type PurchaseRepository interface {
	Commit(ctx context.Context, order domain.Order) error
	AddDeposit(ctx context.Context, accountID int64, amount int) error
}

// PurchaseJournal records committed purchases. Implementations may be
// asynchronous; failures never affect the purchase itself.
type PurchaseJournal interface {
	Record(purchase domain.Purchase)
}

// PurchaseArchive durably stores journal records. PurchaseJournal
// implementations deliver to it.
type PurchaseArchive interface {
	Append(ctx context.Context, purchase domain.Purchase) error
}

// PurchaseHistory reads back journal records of one account, newest first.
type PurchaseHistory interface {
	History(ctx context.Context, accountID int64, limit int64) ([]domain.Purchase, error)
}

// Maintenance wipes a backing store. Used by the debug clear endpoint.
type Maintenance interface {
	Clear(ctx context.Context) error
}
