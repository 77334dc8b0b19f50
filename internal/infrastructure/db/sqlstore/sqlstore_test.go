package sqlstore

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/infrastructure/db/sqlstore/migrations"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Connect(ctx, Config{URL: "sqlite://:memory:", Log: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)
	return db
}

func TestConnect_UnsupportedURL(t *testing.T) {
	_, err := Connect(context.Background(), Config{URL: "mysql://localhost/shop"})
	assert.ErrorContains(t, err, "unsupported database URL")
}

func newClient(login string) *domain.Account {
	return domain.NewClient(login, "hash", domain.Person{FirstName: "Анна", LastName: "Смирнова"}, "a@b.c", "Омск", "89131234567")
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	client := newClient("anna")
	require.NoError(t, repo.Insert(ctx, client))
	require.NotZero(t, client.ID)

	admin := domain.NewAdmin("boss", "hash", domain.Person{FirstName: "Иван", LastName: "Петров"}, "director")
	require.NoError(t, repo.Insert(ctx, admin))

	err := repo.Insert(ctx, newClient("anna"))
	assert.ErrorIs(t, err, domain.ErrLoginAlreadyInUse)

	got, err := repo.FindByLogin(ctx, "boss")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
	assert.Equal(t, "director", got.Admin.Position)
	assert.Nil(t, got.Client)

	exists, err := repo.Exists(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, exists)

	client.FirstName = "Мария"
	client.Client.Deposit = 999
	require.NoError(t, repo.Update(ctx, client))

	got, err = repo.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Мария", got.FirstName)
	assert.Equal(t, 0, got.Client.Deposit, "update must not touch the deposit")

	clients, err := repo.GetClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, client.ID, clients[0].ID)

	_, err = repo.Get(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = repo.FindByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)

	books := &domain.Category{Name: "books"}
	require.NoError(t, categories.Insert(ctx, books))
	fantasy := &domain.Category{Name: "fantasy", ParentID: &books.ID}
	require.NoError(t, categories.Insert(ctx, fantasy))

	err := categories.Insert(ctx, &domain.Category{Name: "books"})
	assert.ErrorIs(t, err, domain.ErrSameCategoryName)

	got, err := categories.Get(ctx, fantasy.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Parent)
	assert.Equal(t, "books", got.Parent.Name)
	assert.True(t, got.IsSubcategory())

	has, err := categories.HasChildren(ctx, books.ID)
	require.NoError(t, err)
	assert.True(t, has)

	all, err := categories.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "books", all[0].Name)

	fantasy.Name = "sci-fi"
	fantasy.ParentID = nil
	require.NoError(t, categories.Update(ctx, fantasy))
	got, err = categories.FindByName(ctx, "sci-fi")
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	fantasy.ParentID = &books.ID
	require.NoError(t, categories.Update(ctx, fantasy))

	hobbit := &domain.Product{Name: "hobbit", Price: 100, Count: 1}
	require.NoError(t, products.Insert(ctx, hobbit))
	require.NoError(t, products.SetCategories(ctx, hobbit.ID, []int64{books.ID, fantasy.ID}))

	require.NoError(t, categories.Delete(ctx, books.ID))

	_, err = categories.Get(ctx, fantasy.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound, "subcategory must cascade")
	ids, err := products.GetCategories(ctx, hobbit.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProductRepository_Listings(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)

	at := &domain.Category{Name: "at"}
	wat := &domain.Category{Name: "wat"}
	require.NoError(t, categories.Insert(ctx, wat))
	require.NoError(t, categories.Insert(ctx, at))

	insert := func(name string, cats ...int64) int64 {
		p := &domain.Product{Name: name, Price: 10, Count: 5}
		require.NoError(t, products.Insert(ctx, p))
		if len(cats) > 0 {
			require.NoError(t, products.SetCategories(ctx, p.ID, cats))
		}
		return p.ID
	}
	berretta := insert("berretta", wat.ID, at.ID)
	insert("apple", wat.ID)
	insert("pen")

	ids, err := products.GetCategories(ctx, berretta)
	require.NoError(t, err)
	assert.Equal(t, []int64{wat.ID, at.ID}, ids)

	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "apple", all[0].Name)

	bare, err := products.GetAllWithoutCategory(ctx)
	require.NoError(t, err)
	require.Len(t, bare, 1)
	assert.Equal(t, "pen", bare[0].Name)

	links, err := products.GetAllWithCategory(ctx)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "at", links[0].Category.Name)
	assert.Equal(t, "berretta", links[0].Product.Name)
	assert.Equal(t, "apple", links[1].Product.Name)
	assert.Equal(t, 5, links[1].Product.Count)
}

func TestProductRepository_DeleteRemovesAssociations(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)
	accounts := NewAccountRepository(db)
	baskets := NewBasketRepository(db)

	c := &domain.Category{Name: "c"}
	require.NoError(t, categories.Insert(ctx, c))
	p := &domain.Product{Name: "p", Price: 1, Count: 1}
	require.NoError(t, products.Insert(ctx, p))
	require.NoError(t, products.SetCategories(ctx, p.ID, []int64{c.ID}))
	client := newClient("anna")
	require.NoError(t, accounts.Insert(ctx, client))
	require.NoError(t, baskets.Put(ctx, client.ID, p.ID, 1))

	require.NoError(t, products.Delete(ctx, p.ID))

	_, err := products.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	var links int64
	require.NoError(t, db.Model(&productCategoryModel{}).Count(&links).Error)
	assert.Zero(t, links)

	items, err := baskets.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBasketRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	products := NewProductRepository(db)
	accounts := NewAccountRepository(db)
	baskets := NewBasketRepository(db)

	client := newClient("anna")
	require.NoError(t, accounts.Insert(ctx, client))
	pen := &domain.Product{Name: "pen", Price: 10, Count: 3}
	book := &domain.Product{Name: "book", Price: 50, Count: 1}
	require.NoError(t, products.Insert(ctx, pen))
	require.NoError(t, products.Insert(ctx, book))

	require.NoError(t, baskets.Put(ctx, client.ID, pen.ID, 2))
	require.NoError(t, baskets.Put(ctx, client.ID, book.ID, 1))
	require.NoError(t, baskets.Put(ctx, client.ID, pen.ID, 4))

	items, err := baskets.Get(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "book", items[0].Product.Name)
	assert.Equal(t, 4, items[1].Count)
	assert.Equal(t, 3, items[1].Product.Count)

	item, err := baskets.Find(ctx, client.ID, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Count)

	require.NoError(t, baskets.Delete(ctx, client.ID, pen.ID))
	require.NoError(t, baskets.Delete(ctx, client.ID, pen.ID))
	_, err = baskets.Find(ctx, client.ID, pen.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPurchaseRepository_Commit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	products := NewProductRepository(db)
	accounts := NewAccountRepository(db)
	baskets := NewBasketRepository(db)
	purchases := NewPurchaseRepository(db)

	client := newClient("anna")
	require.NoError(t, accounts.Insert(ctx, client))
	require.NoError(t, purchases.AddDeposit(ctx, client.ID, 500))

	pen := &domain.Product{Name: "pen", Price: 100, Count: 5}
	require.NoError(t, products.Insert(ctx, pen))
	require.NoError(t, baskets.Put(ctx, client.ID, pen.ID, 3))

	line := func(count int) []domain.OrderLine {
		return []domain.OrderLine{{ProductID: pen.ID, Name: "pen", Price: 100, Count: count}}
	}

	err := purchases.Commit(ctx, domain.Order{AccountID: client.ID, Source: domain.SourceProduct, Lines: line(6)})
	assert.ErrorIs(t, err, domain.ErrNotEnoughProduct)

	err = purchases.Commit(ctx, domain.Order{AccountID: client.ID, Source: domain.SourceProduct, Lines: line(5)})
	require.NoError(t, err)

	got, err := accounts.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Client.Deposit)

	require.NoError(t, products.Update(ctx, &domain.Product{ID: pen.ID, Name: "pen", Price: 100, Count: 5}))
	err = purchases.Commit(ctx, domain.Order{AccountID: client.ID, Source: domain.SourceBasket, Lines: line(1)})
	assert.ErrorIs(t, err, domain.ErrNotEnoughMoney)

	p, err := products.Get(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Count, "failed commit must roll back stock")

	require.NoError(t, purchases.AddDeposit(ctx, client.ID, 1000))
	require.NoError(t, purchases.Commit(ctx, domain.Order{AccountID: client.ID, Source: domain.SourceBasket, Lines: line(2)}))
	item, err := baskets.Find(ctx, client.ID, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Count)

	require.NoError(t, purchases.Commit(ctx, domain.Order{AccountID: client.ID, Source: domain.SourceBasket, Lines: line(1)}))
	_, err = baskets.Find(ctx, client.ID, pen.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPurchaseRepository_AddDepositRejectsAdmins(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	purchases := NewPurchaseRepository(db)

	admin := domain.NewAdmin("boss", "hash", domain.Person{FirstName: "Иван", LastName: "Петров"}, "director")
	require.NoError(t, accounts.Insert(ctx, admin))

	assert.ErrorIs(t, purchases.AddDeposit(ctx, admin.ID, 10), domain.ErrAccountNotFound)
}

func TestCleaner(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	products := NewProductRepository(db)
	baskets := NewBasketRepository(db)

	client := newClient("anna")
	require.NoError(t, accounts.Insert(ctx, client))
	p := &domain.Product{Name: "p", Price: 1, Count: 1}
	require.NoError(t, products.Insert(ctx, p))
	require.NoError(t, baskets.Put(ctx, client.ID, p.ID, 1))

	require.NoError(t, NewCleaner(db).Clear(ctx))

	exists, err := accounts.Exists(ctx, "anna")
	require.NoError(t, err)
	assert.False(t, exists)
	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, Ping(ctx, db))
}
