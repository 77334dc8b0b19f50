package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
	"github.com/thumbtack/onlineshop/internal/pkg/metrics"
)

// ClientService implements the client-only flows: deposit, direct purchase
// and the basket.
type ClientService struct {
	guard     *Guard
	accounts  ports.AccountRepository
	products  ports.ProductRepository
	baskets   ports.BasketRepository
	purchases ports.PurchaseRepository
	journal   ports.PurchaseJournal
	history   ports.PurchaseHistory
	log       zerolog.Logger
}

// defaultHistoryLimit caps History when the caller asks for no limit.
const defaultHistoryLimit = 50

func NewClientService(
	guard *Guard,
	accounts ports.AccountRepository,
	products ports.ProductRepository,
	baskets ports.BasketRepository,
	purchases ports.PurchaseRepository,
	journal ports.PurchaseJournal,
	history ports.PurchaseHistory,
	log zerolog.Logger,
) *ClientService {
	return &ClientService{
		guard:     guard,
		accounts:  accounts,
		products:  products,
		baskets:   baskets,
		purchases: purchases,
		journal:   journal,
		history:   history,
		log:       log,
	}
}

func (s *ClientService) PutDeposit(ctx context.Context, token string, amount int) (*ports.AccountView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.purchases.AddDeposit(ctx, p.Account.ID, amount); err != nil {
		return nil, fmt.Errorf("put deposit: %w", err)
	}

	account, err := s.accounts.Get(ctx, p.Account.ID)
	if err != nil {
		return nil, fmt.Errorf("put deposit: %w", err)
	}
	return accountView(account), nil
}

func (s *ClientService) GetDeposit(ctx context.Context, token string) (*ports.AccountView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}
	return accountView(p.Account), nil
}

// BuyProduct buys Count (default 1) pieces of a product straight from the catalog.
func (s *ClientService) BuyProduct(ctx context.Context, token string, in ports.PurchaseInput) (*ports.OrderLineView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Get(ctx, in.ProductID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProductNotFound.WithField("id"))
	}
	if !sameProduct(*product, in) {
		return nil, s.reject(domain.ErrWrongProductInfo)
	}

	count := countOrDefault(in.Count, 1)
	if product.Count < count {
		return nil, s.reject(domain.ErrNotEnoughProduct.WithField("count"))
	}

	line := domain.OrderLine{ProductID: product.ID, Name: product.Name, Price: product.Price, Count: count}
	order := domain.Order{AccountID: p.Account.ID, Source: domain.SourceProduct, Lines: []domain.OrderLine{line}}
	if p.Account.Client.Deposit < order.Total() {
		return nil, s.reject(domain.ErrNotEnoughMoney)
	}

	if err := s.commit(ctx, order); err != nil {
		return nil, err
	}

	return &ports.OrderLineView{ID: line.ProductID, Name: line.Name, Price: line.Price, Count: line.Count}, nil
}

// AddToBasket puts Count (default 1) pieces of a product into the basket,
// replacing any previous count for that product.
func (s *ClientService) AddToBasket(ctx context.Context, token string, in ports.PurchaseInput) ([]ports.OrderLineView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Get(ctx, in.ProductID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProductNotFound.WithField("id"))
	}
	if !sameProduct(*product, in) {
		return nil, domain.ErrWrongProductInfo
	}

	if err := s.baskets.Put(ctx, p.Account.ID, product.ID, countOrDefault(in.Count, 1)); err != nil {
		return nil, fmt.Errorf("add to basket: %w", err)
	}
	return s.basket(ctx, p.Account.ID)
}

func (s *ClientService) DeleteFromBasket(ctx context.Context, token string, productID int64) error {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return err
	}
	if err := s.baskets.Delete(ctx, p.Account.ID, productID); err != nil {
		return fmt.Errorf("delete from basket: %w", err)
	}
	return nil
}

func (s *ClientService) EditBasketCount(ctx context.Context, token string, in ports.PurchaseInput) ([]ports.OrderLineView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}

	item, err := s.baskets.Find(ctx, p.Account.ID, in.ProductID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProductNotFound.WithField("id"))
	}
	if !sameProduct(item.Product, in) {
		return nil, domain.ErrWrongProductInfo
	}

	if err := s.baskets.Put(ctx, p.Account.ID, in.ProductID, countOrDefault(in.Count, item.Count)); err != nil {
		return nil, fmt.Errorf("edit basket: %w", err)
	}
	return s.basket(ctx, p.Account.ID)
}

func (s *ClientService) GetBasket(ctx context.Context, token string) ([]ports.OrderLineView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.basket(ctx, p.Account.ID)
}

// BuyBasket buys the requested basket lines. Lines that are not in the
// basket, whose name or price no longer match, or whose count exceeds the
// stock are skipped and stay in the basket. The count of a line defaults to
// and is capped at its basket count. If the remaining lines cost more than
// the deposit nothing is bought.
func (s *ClientService) BuyBasket(ctx context.Context, token string, in []ports.PurchaseInput) (*ports.BasketPurchaseResult, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}

	items, err := s.baskets.Get(ctx, p.Account.ID)
	if err != nil {
		return nil, fmt.Errorf("buy basket: %w", err)
	}
	byProduct := make(map[int64]domain.BasketItem, len(items))
	for _, item := range items {
		byProduct[item.Product.ID] = item
	}

	order := domain.Order{AccountID: p.Account.ID, Source: domain.SourceBasket}
	taken := make(map[int64]struct{})
	for _, req := range in {
		item, ok := byProduct[req.ProductID]
		if !ok || !sameProduct(item.Product, req) {
			continue
		}
		if _, dup := taken[req.ProductID]; dup {
			continue
		}

		count := min(countOrDefault(req.Count, item.Count), item.Count)
		if count <= 0 || count > item.Product.Count {
			continue
		}

		taken[req.ProductID] = struct{}{}
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Count:     count,
		})
	}

	if p.Account.Client.Deposit < order.Total() {
		return nil, s.reject(domain.ErrNotEnoughMoney)
	}

	if len(order.Lines) > 0 {
		if err := s.commit(ctx, order); err != nil {
			return nil, err
		}
	}

	remaining, err := s.basket(ctx, p.Account.ID)
	if err != nil {
		return nil, err
	}

	bought := make([]ports.OrderLineView, 0, len(order.Lines))
	for _, l := range order.Lines {
		bought = append(bought, ports.OrderLineView{ID: l.ProductID, Name: l.Name, Price: l.Price, Count: l.Count})
	}
	return &ports.BasketPurchaseResult{Bought: bought, Remaining: remaining}, nil
}

// History lists the client's recent purchases from the journal, newest
// first. Purchases still queued for the journal are not visible yet.
func (s *ClientService) History(ctx context.Context, token string, limit int) ([]ports.PurchaseView, error) {
	p, err := s.guard.RequireClient(ctx, token)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	purchases, err := s.history.History(ctx, p.Account.ID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}

	out := make([]ports.PurchaseView, 0, len(purchases))
	for _, pu := range purchases {
		lines := make([]ports.OrderLineView, 0, len(pu.Lines))
		for _, l := range pu.Lines {
			lines = append(lines, ports.OrderLineView{ID: l.ProductID, Name: l.Name, Price: l.Price, Count: l.Count})
		}
		out = append(out, ports.PurchaseView{
			Source:      string(pu.Source),
			Lines:       lines,
			Total:       pu.Total,
			PurchasedAt: pu.PurchasedAt,
		})
	}
	return out, nil
}

func (s *ClientService) commit(ctx context.Context, order domain.Order) error {
	if err := s.purchases.Commit(ctx, order); err != nil {
		if kind, ok := domain.KindOf(err); ok {
			metrics.PurchasesRejectedTotal.WithLabelValues(string(kind)).Inc()
			return err
		}
		return fmt.Errorf("commit purchase: %w", err)
	}

	total := order.Total()
	metrics.PurchasesTotal.WithLabelValues(string(order.Source)).Inc()
	metrics.PurchaseAmountTotal.Add(float64(total))

	s.journal.Record(domain.Purchase{
		AccountID:   order.AccountID,
		Source:      order.Source,
		Lines:       order.Lines,
		Total:       total,
		PurchasedAt: time.Now().UTC(),
	})

	s.log.Info().
		Int64("account_id", order.AccountID).
		Str("source", string(order.Source)).
		Int("lines", len(order.Lines)).
		Int("total", total).
		Msg("purchase committed")
	return nil
}

func (s *ClientService) reject(err *domain.Error) error {
	metrics.PurchasesRejectedTotal.WithLabelValues(string(err.Kind)).Inc()
	return err
}

func (s *ClientService) basket(ctx context.Context, accountID int64) ([]ports.OrderLineView, error) {
	items, err := s.baskets.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get basket: %w", err)
	}

	slices.SortStableFunc(items, func(a, b domain.BasketItem) int {
		return compareProducts(a.Product, b.Product)
	})

	out := make([]ports.OrderLineView, 0, len(items))
	for _, item := range items {
		out = append(out, ports.OrderLineView{
			ID:    item.Product.ID,
			Name:  item.Product.Name,
			Price: item.Product.Price,
			Count: item.Count,
		})
	}
	return out, nil
}

// sameProduct reports whether the client's view of a product still matches
// the catalog.
func sameProduct(p domain.Product, in ports.PurchaseInput) bool {
	return p.Name == in.Name && p.Price == in.Price
}

func countOrDefault(count *int, def int) int {
	if count == nil {
		return def
	}
	return *count
}
