package ports

import (
	"context"
	"time"
)

// PurchaseInput identifies a product the way the client saw it. The name and
// price must still match the catalog. A nil Count means "default".
type PurchaseInput struct {
	ProductID int64
	Name      string
	Price     int
	Count     *int
}

// OrderLineView is a product line with a quantity: a bought line or a basket line.
type OrderLineView struct {
	ID    int64
	Name  string
	Price int
	Count int
}

// BasketPurchaseResult lists what was bought and what is left in the basket.
type BasketPurchaseResult struct {
	Bought    []OrderLineView
	Remaining []OrderLineView
}

// PurchaseView is one past purchase of the client.
type PurchaseView struct {
	Source      string
	Lines       []OrderLineView
	Total       int
	PurchasedAt time.Time
}

// ClientService defines the deposit, purchase and basket use cases.
type ClientService interface {
	PutDeposit(ctx context.Context, token string, amount int) (*AccountView, error)
	GetDeposit(ctx context.Context, token string) (*AccountView, error)
	BuyProduct(ctx context.Context, token string, in PurchaseInput) (*OrderLineView, error)
	AddToBasket(ctx context.Context, token string, in PurchaseInput) ([]OrderLineView, error)
	DeleteFromBasket(ctx context.Context, token string, productID int64) error
	EditBasketCount(ctx context.Context, token string, in PurchaseInput) ([]OrderLineView, error)
	GetBasket(ctx context.Context, token string) ([]OrderLineView, error)
	BuyBasket(ctx context.Context, token string, in []PurchaseInput) (*BasketPurchaseResult, error)
	History(ctx context.Context, token string, limit int) ([]PurchaseView, error)
}

// Settings exposes the limits the validation layer works with.
type Settings struct {
	MaxNameLength     int
	MinPasswordLength int
}

// ServerService defines server-level operations.
type ServerService interface {
	Settings() Settings
	Clear(ctx context.Context) error
}
