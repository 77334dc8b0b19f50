package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// clearOrder lists tables children first so foreign keys never block a delete.
var clearOrder = []string{"basket_items", "product_categories", "products", "categories", "accounts"}

// Cleaner wipes all relational data.
type Cleaner struct {
	db *gorm.DB
}

func NewCleaner(db *gorm.DB) *Cleaner {
	return &Cleaner{db: db}
}

func (c *Cleaner) Clear(ctx context.Context) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range clearOrder {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// Ping reports whether the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
