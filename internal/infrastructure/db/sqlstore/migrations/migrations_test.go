package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	return db
}

func TestUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	applied, err := Up(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"202610010001", "202610010002", "202610010003"}, applied)

	for _, table := range []string{"accounts", "categories", "products", "product_categories", "basket_items"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}

	applied, err = Up(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestDownAndList(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	_, err := Up(ctx, db)
	require.NoError(t, err)

	undone, err := Down(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"202610010003"}, undone)
	assert.False(t, db.Migrator().HasTable("basket_items"))

	statuses, err := List(ctx, db)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.NotNil(t, statuses[0].AppliedAt)
	assert.NotNil(t, statuses[1].AppliedAt)
	assert.Nil(t, statuses[2].AppliedAt)
}
