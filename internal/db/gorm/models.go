// Package gorm provides GORM-based database operations for relic.
package gorm

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/thebtf/relic/pkg/models"
)

// AssetRecord is the persisted form of a digitized asset.
type AssetRecord struct {
	ID         string `gorm:"primaryKey"`
	Collection string `gorm:"index"`
	Category   string `gorm:"index"`

	Title       sql.NullString     `gorm:"type:text"`
	Description sql.NullString     `gorm:"type:text"`
	Entities    models.StringArray `gorm:"type:text"` // JSON array
	Keywords    models.StringArray `gorm:"type:text"` // JSON array
	GISZone     sql.NullString
	Confidence  float64 `gorm:"type:real;default:0"`

	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64

	CreatedAt      string `gorm:"not null"`
	CreatedAtEpoch int64  `gorm:"index:idx_assets_created,sort:desc;not null"`
}

func (AssetRecord) TableName() string { return "assets" }

// BeforeCreate hook to ensure timestamps are set.
func (a *AssetRecord) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAtEpoch == 0 {
		a.CreatedAtEpoch = time.Now().UnixMilli()
	}
	if a.CreatedAt == "" {
		a.CreatedAt = time.Now().Format(time.RFC3339)
	}
	return nil
}

// ReviewDecision records a reviewer's verdict on one dedup suggestion.
type ReviewDecision struct {
	ID           int64              `gorm:"primaryKey;autoIncrement"`
	SuggestionID string             `gorm:"index;not null"`
	RunID        string             `gorm:"index"`
	Decision     string             `gorm:"type:text;check:decision IN ('accepted', 'rejected');not null"`
	AssetIDs     models.StringArray `gorm:"type:text"` // JSON array
	Notes        sql.NullString

	CreatedAt      string `gorm:"not null"`
	CreatedAtEpoch int64  `gorm:"index:idx_reviews_created,sort:desc;not null"`
}

func (ReviewDecision) TableName() string { return "review_decisions" }

// BeforeCreate hook to ensure timestamps are set.
func (r *ReviewDecision) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAtEpoch == 0 {
		r.CreatedAtEpoch = time.Now().UnixMilli()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().Format(time.RFC3339)
	}
	return nil
}

// toAsset converts a database record to the domain model.
func (a *AssetRecord) toAsset() models.Asset {
	asset := models.Asset{ID: a.ID}

	if a.Latitude.Valid && a.Longitude.Valid {
		asset.Position = &models.GeoPosition{
			Latitude:  a.Latitude.Float64,
			Longitude: a.Longitude.Float64,
		}
	}

	if a.Title.Valid || a.Description.Valid || len(a.Entities) > 0 || len(a.Keywords) > 0 ||
		a.Category != "" || a.Collection != "" || a.GISZone.Valid || a.Confidence != 0 {
		asset.Metadata = &models.AssetMetadata{
			Title:       a.Title.String,
			Description: a.Description.String,
			Entities:    a.Entities,
			Keywords:    a.Keywords,
			Category:    a.Category,
			Collection:  a.Collection,
			GISZone:     a.GISZone.String,
			Confidence:  a.Confidence,
		}
	}
	return asset
}

// fromAsset converts a domain asset to its persisted form.
func fromAsset(asset models.Asset) *AssetRecord {
	record := &AssetRecord{ID: asset.ID}

	if asset.Position != nil {
		record.Latitude = sql.NullFloat64{Float64: asset.Position.Latitude, Valid: true}
		record.Longitude = sql.NullFloat64{Float64: asset.Position.Longitude, Valid: true}
	}

	if m := asset.Metadata; m != nil {
		record.Title = nullString(m.Title)
		record.Description = nullString(m.Description)
		record.Entities = m.Entities
		record.Keywords = m.Keywords
		record.Category = m.Category
		record.Collection = m.Collection
		record.GISZone = nullString(m.GISZone)
		record.Confidence = m.Confidence
	}
	return record
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
