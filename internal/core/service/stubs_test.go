package service

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

func init() {
	passwordCost = bcrypt.MinCost
}

// ── accounts ─────────────────────────────────────────────────────────────────

type stubAccountRepo struct {
	accounts map[int64]*domain.Account
	nextID   int64
	updates  int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[int64]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	if a.Client != nil {
		c := *a.Client
		clone.Client = &c
	}
	if a.Admin != nil {
		ad := *a.Admin
		clone.Admin = &ad
	}
	return &clone
}

func (r *stubAccountRepo) Insert(_ context.Context, a *domain.Account) error {
	r.nextID++
	a.ID = r.nextID
	r.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) Update(_ context.Context, a *domain.Account) error {
	if _, ok := r.accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	r.updates++
	r.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) Get(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByLogin(_ context.Context, login string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Login == login {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Exists(ctx context.Context, login string) (bool, error) {
	_, err := r.FindByLogin(ctx, login)
	return err == nil, nil
}

func (r *stubAccountRepo) GetClients(_ context.Context) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range r.accounts {
		if a.IsClient() {
			out = append(out, cloneAccount(a))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Account) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *stubAccountRepo) deposit(id int64) int {
	return r.accounts[id].Client.Deposit
}

// ── sessions ─────────────────────────────────────────────────────────────────

type stubSessionStore struct {
	sessions map[string]int64
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]int64)}
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	id, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &domain.Session{Token: token, AccountID: id}, nil
}

func (s *stubSessionStore) Insert(_ context.Context, session domain.Session) error {
	s.sessions[session.Token] = session.AccountID
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubSessionStore) Clear(_ context.Context) error {
	clear(s.sessions)
	return nil
}

// ── categories ───────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[int64]domain.Category
	nextID     int64
	products   *stubProductRepo
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[int64]domain.Category)}
}

func (r *stubCategoryRepo) Insert(_ context.Context, c *domain.Category) error {
	r.nextID++
	c.ID = r.nextID
	stored := *c
	stored.Parent = nil
	r.categories[c.ID] = stored
	return nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	stored := *c
	stored.Parent = nil
	r.categories[c.ID] = stored
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id int64) error {
	for childID, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			r.drop(childID)
		}
	}
	r.drop(id)
	return nil
}

func (r *stubCategoryRepo) drop(id int64) {
	delete(r.categories, id)
	if r.products == nil {
		return
	}
	for pid, ids := range r.products.links {
		r.products.links[pid] = slices.DeleteFunc(ids, func(c int64) bool { return c == id })
	}
}

func (r *stubCategoryRepo) Get(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if c.ParentID != nil {
		parent := r.categories[*c.ParentID]
		c.Parent = &parent
	}
	return &c, nil
}

func (r *stubCategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	for id, c := range r.categories {
		if c.Name == name {
			return r.Get(ctx, id)
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.FindByName(ctx, name)
	return err == nil, nil
}

func (r *stubCategoryRepo) HasChildren(_ context.Context, id int64) (bool, error) {
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCategoryRepo) GetAll(ctx context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for id := range r.categories {
		c, _ := r.Get(ctx, id)
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *domain.Category) int { return compareNames(a.Name, b.Name) })
	return out, nil
}

func compareNames(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ── products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products   map[int64]domain.Product
	links      map[int64][]int64
	nextID     int64
	categories *stubCategoryRepo
}

func newStubProductRepo(categories *stubCategoryRepo) *stubProductRepo {
	r := &stubProductRepo{
		products:   make(map[int64]domain.Product),
		links:      make(map[int64][]int64),
		categories: categories,
	}
	categories.products = r
	return r
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.products, id)
	delete(r.links, id)
	return nil
}

func (r *stubProductRepo) Get(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) GetCategories(_ context.Context, productID int64) ([]int64, error) {
	ids := slices.Clone(r.links[productID])
	slices.Sort(ids)
	return ids, nil
}

func (r *stubProductRepo) SetCategories(_ context.Context, productID int64, categoryIDs []int64) error {
	r.links[productID] = slices.Clone(categoryIDs)
	return nil
}

func (r *stubProductRepo) GetAll(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) GetAllWithoutCategory(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for id, p := range r.products {
		if len(r.links[id]) == 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) GetAllWithCategory(_ context.Context) ([]domain.ProductCategory, error) {
	var out []domain.ProductCategory
	for pid, ids := range r.links {
		for _, cid := range ids {
			out = append(out, domain.ProductCategory{Product: r.products[pid], Category: r.categories.categories[cid]})
		}
	}
	return out, nil
}

// ── baskets and purchases ────────────────────────────────────────────────────

type stubBasketRepo struct {
	lines    map[int64]map[int64]int
	products *stubProductRepo
}

func newStubBasketRepo(products *stubProductRepo) *stubBasketRepo {
	return &stubBasketRepo{lines: make(map[int64]map[int64]int), products: products}
}

func (r *stubBasketRepo) Get(_ context.Context, accountID int64) ([]domain.BasketItem, error) {
	var out []domain.BasketItem
	for pid, count := range r.lines[accountID] {
		out = append(out, domain.BasketItem{AccountID: accountID, Product: r.products.products[pid], Count: count})
	}
	return out, nil
}

func (r *stubBasketRepo) Find(_ context.Context, accountID, productID int64) (*domain.BasketItem, error) {
	count, ok := r.lines[accountID][productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &domain.BasketItem{AccountID: accountID, Product: r.products.products[productID], Count: count}, nil
}

func (r *stubBasketRepo) Put(_ context.Context, accountID, productID int64, count int) error {
	if r.lines[accountID] == nil {
		r.lines[accountID] = make(map[int64]int)
	}
	r.lines[accountID][productID] = count
	return nil
}

func (r *stubBasketRepo) Delete(_ context.Context, accountID, productID int64) error {
	delete(r.lines[accountID], productID)
	return nil
}

type stubPurchaseRepo struct {
	accounts *stubAccountRepo
	products *stubProductRepo
	baskets  *stubBasketRepo
	commits  int
}

func (r *stubPurchaseRepo) Commit(_ context.Context, order domain.Order) error {
	account := r.accounts.accounts[order.AccountID]
	for _, l := range order.Lines {
		if r.products.products[l.ProductID].Count < l.Count {
			return domain.ErrNotEnoughProduct
		}
	}
	if account.Client.Deposit < order.Total() {
		return domain.ErrNotEnoughMoney
	}

	for _, l := range order.Lines {
		p := r.products.products[l.ProductID]
		p.Count -= l.Count
		r.products.products[l.ProductID] = p

		if order.Source == domain.SourceBasket {
			left := r.baskets.lines[order.AccountID][l.ProductID] - l.Count
			if left <= 0 {
				delete(r.baskets.lines[order.AccountID], l.ProductID)
			} else {
				r.baskets.lines[order.AccountID][l.ProductID] = left
			}
		}
	}
	account.Client.Deposit -= order.Total()
	r.commits++
	return nil
}

func (r *stubPurchaseRepo) AddDeposit(_ context.Context, accountID int64, amount int) error {
	r.accounts.accounts[accountID].Client.Deposit += amount
	return nil
}

type stubJournal struct {
	records []domain.Purchase
}

func (j *stubJournal) Record(p domain.Purchase) {
	j.records = append(j.records, p)
}

// History serves the records straight back, newest first.
func (j *stubJournal) History(_ context.Context, accountID int64, limit int64) ([]domain.Purchase, error) {
	var out []domain.Purchase
	for i := len(j.records) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if j.records[i].AccountID == accountID {
			out = append(out, j.records[i])
		}
	}
	return out, nil
}

// ── fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	accounts   *stubAccountRepo
	sessions   *stubSessionStore
	categories *stubCategoryRepo
	products   *stubProductRepo
	baskets    *stubBasketRepo
	purchases  *stubPurchaseRepo
	journal    *stubJournal

	guard       *Guard
	accountSvc  *AccountService
	categorySvc *CategoryService
	productSvc  *ProductService
	clientSvc   *ClientService
}

func newFixture() *fixture {
	f := &fixture{
		accounts:   newStubAccountRepo(),
		sessions:   newStubSessionStore(),
		categories: newStubCategoryRepo(),
		journal:    &stubJournal{},
	}
	f.products = newStubProductRepo(f.categories)
	f.baskets = newStubBasketRepo(f.products)
	f.purchases = &stubPurchaseRepo{accounts: f.accounts, products: f.products, baskets: f.baskets}

	log := zerolog.Nop()
	f.guard = NewGuard(f.sessions, f.accounts)
	f.accountSvc = NewAccountService(f.guard, f.accounts, f.sessions, log)
	f.categorySvc = NewCategoryService(f.guard, f.categories, log)
	f.productSvc = NewProductService(f.guard, f.products, f.categories, log)
	f.clientSvc = NewClientService(f.guard, f.accounts, f.products, f.baskets, f.purchases, f.journal, f.journal, log)
	return f
}

func (f *fixture) adminToken(login string) string {
	_, token, err := f.accountSvc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		FirstName: "Иван",
		LastName:  "Петров",
		Position:  "manager",
		Login:     login,
		Password:  "password1",
	})
	if err != nil {
		panic(err)
	}
	return token
}

func (f *fixture) clientToken(login string) string {
	_, token, err := f.accountSvc.RegisterClient(context.Background(), ports.RegisterClientInput{
		FirstName: "Анна",
		LastName:  "Смирнова",
		Email:     login + "@example.com",
		Address:   "Омск",
		Phone:     "+7-913-000-00-00",
		Login:     login,
		Password:  "password1",
	})
	if err != nil {
		panic(err)
	}
	return token
}

func (f *fixture) accountID(token string) int64 {
	return f.sessions.sessions[token]
}

func (f *fixture) addProduct(name string, price, count int, categories ...int64) int64 {
	p := &domain.Product{Name: name, Price: price, Count: count}
	_ = f.products.Insert(context.Background(), p)
	if len(categories) > 0 {
		_ = f.products.SetCategories(context.Background(), p.ID, categories)
	}
	return p.ID
}

func (f *fixture) addCategory(name string, parentID *int64) int64 {
	c := &domain.Category{Name: name, ParentID: parentID}
	_ = f.categories.Insert(context.Background(), c)
	return c.ID
}

func ptr[T any](v T) *T { return &v }
