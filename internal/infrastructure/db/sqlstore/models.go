package sqlstore

import "github.com/thumbtack/onlineshop/internal/core/domain"

type accountModel struct {
	ID           int64 `gorm:"primaryKey"`
	Login        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	Patronymic   string
	Email        string
	Address      string
	Phone        string
	Deposit      int
	Position     string
}

func (accountModel) TableName() string { return "accounts" }

func toAccountModel(a *domain.Account) accountModel {
	m := accountModel{
		ID:           a.ID,
		Login:        a.Login,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Patronymic:   a.Patronymic,
	}
	if a.Client != nil {
		m.Email = a.Client.Email
		m.Address = a.Client.Address
		m.Phone = a.Client.Phone
		m.Deposit = a.Client.Deposit
	}
	if a.Admin != nil {
		m.Position = a.Admin.Position
	}
	return m
}

func (m accountModel) toDomain() *domain.Account {
	a := &domain.Account{
		ID:           m.ID,
		Login:        m.Login,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Person: domain.Person{
			FirstName:  m.FirstName,
			LastName:   m.LastName,
			Patronymic: m.Patronymic,
		},
	}
	switch a.Role {
	case domain.RoleClient:
		a.Client = &domain.ClientDetails{Email: m.Email, Address: m.Address, Phone: m.Phone, Deposit: m.Deposit}
	case domain.RoleAdmin:
		a.Admin = &domain.AdminDetails{Position: m.Position}
	}
	return a
}

type categoryModel struct {
	ID       int64 `gorm:"primaryKey"`
	Name     string
	ParentID *int64
	Parent   *categoryModel
}

func (categoryModel) TableName() string { return "categories" }

func (m categoryModel) toDomain() *domain.Category {
	c := &domain.Category{ID: m.ID, Name: m.Name, ParentID: m.ParentID}
	if m.Parent != nil {
		c.Parent = &domain.Category{ID: m.Parent.ID, Name: m.Parent.Name, ParentID: m.Parent.ParentID}
	}
	return c
}

type productModel struct {
	ID    int64 `gorm:"primaryKey"`
	Name  string
	Price int
	Stock int
}

func (productModel) TableName() string { return "products" }

func toProductModel(p *domain.Product) productModel {
	return productModel{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Count}
}

func (m productModel) toDomain() domain.Product {
	return domain.Product{ID: m.ID, Name: m.Name, Price: m.Price, Count: m.Stock}
}

type productCategoryModel struct {
	ProductID  int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (productCategoryModel) TableName() string { return "product_categories" }

type basketItemModel struct {
	AccountID int64 `gorm:"primaryKey;autoIncrement:false"`
	ProductID int64 `gorm:"primaryKey;autoIncrement:false"`
	Quantity  int
}

func (basketItemModel) TableName() string { return "basket_items" }

// productCategoryRow is the flat result of the product/category join.
type productCategoryRow struct {
	ProductID      int64
	ProductName    string
	Price          int
	Stock          int
	CategoryID     int64
	CategoryName   string
	CategoryParent *int64
}

// basketRow is the flat result of the basket/product join.
type basketRow struct {
	AccountID int64
	ProductID int64
	Name      string
	Price     int
	Stock     int
	Quantity  int
}

func (r basketRow) toDomain() domain.BasketItem {
	return domain.BasketItem{
		AccountID: r.AccountID,
		Product:   domain.Product{ID: r.ProductID, Name: r.Name, Price: r.Price, Count: r.Stock},
		Count:     r.Quantity,
	}
}
