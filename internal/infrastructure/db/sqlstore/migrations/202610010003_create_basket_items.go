package migrations

import (
	"github.com/pankajredekar/goosegorm"
	"gorm.io/gorm"
)

type basketItemV1 struct {
	AccountID int64     `gorm:"primaryKey;autoIncrement:false"`
	ProductID int64     `gorm:"primaryKey;autoIncrement:false;index"`
	Quantity  int       `gorm:"not null"`
	Account   accountV1 `gorm:"constraint:OnDelete:CASCADE"`
	Product   productV1 `gorm:"constraint:OnDelete:CASCADE"`
}

func (basketItemV1) TableName() string { return "basket_items" }

type CreateBasketItems struct{}

func (m CreateBasketItems) Version() string { return "202610010003" }

func (m CreateBasketItems) Name() string { return "create_basket_items" }

func (m CreateBasketItems) Up(db *gorm.DB) error {
	if sim, ok := any(db).(*goosegorm.SchemaBuilder); ok {
		sim.CreateTable("basket_items").
			AddColumnWithOptions("account_id", "bigint", false, true, false).
			AddColumnWithOptions("product_id", "bigint", false, true, false).
			AddColumnWithOptions("quantity", "bigint", false, false, false).
			AddConstraint("FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE").
			AddConstraint("FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE")
		return nil
	}

	return db.AutoMigrate(&basketItemV1{})
}

func (m CreateBasketItems) Down(db *gorm.DB) error {
	if sim, ok := any(db).(*goosegorm.SchemaBuilder); ok {
		sim.DropTable("basket_items")
		return nil
	}
	return db.Migrator().DropTable("basket_items")
}

func init() {
	goosegorm.RegisterMigration(CreateBasketItems{})
}
