package migrations

import (
	"github.com/pankajredekar/goosegorm"
	"gorm.io/gorm"
)

type accountV1 struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Login        string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"size:16;not null;index"`
	FirstName    string `gorm:"size:50;not null"`
	LastName     string `gorm:"size:50;not null"`
	Patronymic   string `gorm:"size:50"`
	Email        string
	Address      string
	Phone        string `gorm:"size:20"`
	Deposit      int    `gorm:"not null;default:0"`
	Position     string
}

func (accountV1) TableName() string { return "accounts" }

type CreateAccounts struct{}

func (m CreateAccounts) Version() string { return "202610010001" }

func (m CreateAccounts) Name() string { return "create_accounts" }

func (m CreateAccounts) Up(db *gorm.DB) error {
	if sim, ok := any(db).(*goosegorm.SchemaBuilder); ok {
		sim.CreateTable("accounts").
			AddColumnWithOptions("id", "bigint", false, true, false).
			AddColumnWithOptions("login", "string", false, false, true).
			AddColumnWithOptions("password_hash", "string", false, false, false).
			AddColumnWithOptions("role", "string", false, false, false).
			AddColumnWithOptions("first_name", "string", false, false, false).
			AddColumnWithOptions("last_name", "string", false, false, false).
			AddColumnWithOptions("patronymic", "string", true, false, false).
			AddColumnWithOptions("email", "string", true, false, false).
			AddColumnWithOptions("address", "string", true, false, false).
			AddColumnWithOptions("phone", "string", true, false, false).
			AddColumnWithOptions("deposit", "bigint", false, false, false).
			AddColumnWithOptions("position", "string", true, false, false)
		return nil
	}

	return db.AutoMigrate(&accountV1{})
}

func (m CreateAccounts) Down(db *gorm.DB) error {
	if sim, ok := any(db).(*goosegorm.SchemaBuilder); ok {
		sim.DropTable("accounts")
		return nil
	}
	return db.Migrator().DropTable("accounts")
}

func init() {
	goosegorm.RegisterMigration(CreateAccounts{})
}
