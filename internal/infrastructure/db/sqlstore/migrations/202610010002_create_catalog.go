package migrations

import (
	"github.com/pankajredekar/goosegorm"
	"gorm.io/gorm"
)

type categoryV1 struct {
	ID       int64       `gorm:"primaryKey;autoIncrement"`
	Name     string      `gorm:"size:50;uniqueIndex;not null"`
	ParentID *int64      `gorm:"index"`
	Parent   *categoryV1 `gorm:"constraint:OnDelete:CASCADE"`
}

func (categoryV1) TableName() string { return "categories" }

type productV1 struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:50;not null;index"`
	Price int    `gorm:"not null"`
	Stock int    `gorm:"not null;default:0"`
}

func (productV1) TableName() string { return "products" }

type productCategoryV1 struct {
	ProductID  int64      `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64      `gorm:"primaryKey;autoIncrement:false;index"`
	Product    productV1  `gorm:"constraint:OnDelete:CASCADE"`
	Category   categoryV1 `gorm:"constraint:OnDelete:CASCADE"`
}

func (productCategoryV1) TableName() string { return "product_categories" }

type CreateCatalog struct{}

func (m CreateCatalog) Version() string { return "202610010002" }

func (m CreateCatalog) Name() string { return "create_catalog" }

func (m CreateCatalog) Up(db *gorm.DB) error {
	if sim, ok := any(db).(*goosegorm.SchemaBuilder); ok {
		sim.CreateTable("categories").
			AddColumnWithOptions("id", "bigint", false, true, false).
			AddColumnWithOptions("name", "string", false, false, true).
			AddColumnWithOptions("parent_id", "bigint", true, false, false).
			AddConstraint("FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE CASCADE")
		sim.CreateTable("products").
			AddColumnWithOptions("id", "bigint", false, true, false).
			AddColumnWithOptions("name", "string", false, false, false).
			AddColumnWithOptions("price", "bigint", false, false, false).
			AddColumnWithOptions("stock", "bigint", false, false, false).
			AddIndex("idx_products_name")
		sim.CreateTable("product_categories").
			AddColumnWithOptions("product_id", "bigint", false, true, false).
			AddColumnWithOptions("category_id", "bigint", false, true, false).
			AddConstraint("FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE").
			AddConstraint("FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE")
		return nil
	}

	return db.AutoMigrate(&categoryV1{}, &productV1{}, &productCategoryV1{})
}

func (m CreateCatalog) Down(db *gorm.DB) error {
	if sim, ok := any(db).(*goosegorm.SchemaBuilder); ok {
		sim.DropTable("product_categories")
		sim.DropTable("products")
		sim.DropTable("categories")
		return nil
	}
	return db.Migrator().DropTable("product_categories", "products", "categories")
}

func init() {
	goosegorm.RegisterMigration(CreateCatalog{})
}
