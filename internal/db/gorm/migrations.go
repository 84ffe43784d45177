// Package gorm provides GORM-based database operations for relic.
package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: assets table
		{
			ID: "001_assets",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&AssetRecord{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("assets")
			},
		},

		// Migration 002: review decisions table
		{
			ID: "002_review_decisions",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&ReviewDecision{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("review_decisions")
			},
		},
	})

	return m.Migrate()
}
