// Package migrations holds the relational schema history. Every migration
// registers itself with the goosegorm registry on import, so the goosegorm CLI
// and the onlineshop migrate command see the same set.
package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/pankajredekar/goosegorm"
	"gorm.io/gorm"
)

// VersionTable is shared with the goosegorm CLI.
const VersionTable = "_goosegorm_migrations"

type versionRecord struct {
	Version   string    `gorm:"primaryKey;size:255;column:version"`
	Name      string    `gorm:"size:255;column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

func (versionRecord) TableName() string { return VersionTable }

// Status describes one registered migration.
type Status struct {
	Version   string
	Name      string
	AppliedAt *time.Time
}

// Up applies every pending migration in version order, each in its own
// transaction, and returns the versions it applied.
func Up(ctx context.Context, db *gorm.DB) ([]string, error) {
	db = db.WithContext(ctx)

	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range goosegorm.GetGlobalRegistry().GetAllMigrations() {
		if _, ok := applied[m.Version()]; ok {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&versionRecord{Version: m.Version(), Name: m.Name(), AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return done, fmt.Errorf("apply migration %s_%s: %w", m.Version(), m.Name(), err)
		}
		done = append(done, m.Version())
	}
	return done, nil
}

// Down rolls back the n most recently applied migrations.
func Down(ctx context.Context, db *gorm.DB, n int) ([]string, error) {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&versionRecord{}); err != nil {
		return nil, fmt.Errorf("init version table: %w", err)
	}

	var records []versionRecord
	if err := db.Order("version DESC").Limit(n).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	registry := goosegorm.GetGlobalRegistry()
	var undone []string
	for _, r := range records {
		m, ok := registry.GetMigration(r.Version)
		if !ok {
			return undone, fmt.Errorf("migration %s is applied but not registered", r.Version)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&versionRecord{}, "version = ?", r.Version).Error
		})
		if err != nil {
			return undone, fmt.Errorf("roll back migration %s_%s: %w", m.Version(), m.Name(), err)
		}
		undone = append(undone, r.Version)
	}
	return undone, nil
}

// List reports every registered migration and when it was applied.
func List(ctx context.Context, db *gorm.DB) ([]Status, error) {
	db = db.WithContext(ctx)

	applied, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, m := range goosegorm.GetGlobalRegistry().GetAllMigrations() {
		s := Status{Version: m.Version(), Name: m.Name()}
		if r, ok := applied[m.Version()]; ok {
			at := r.AppliedAt
			s.AppliedAt = &at
		}
		out = append(out, s)
	}
	return out, nil
}

func appliedVersions(db *gorm.DB) (map[string]versionRecord, error) {
	if err := db.AutoMigrate(&versionRecord{}); err != nil {
		return nil, fmt.Errorf("init version table: %w", err)
	}

	var records []versionRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	out := make(map[string]versionRecord, len(records))
	for _, r := range records {
		out[r.Version] = r
	}
	return out, nil
}
