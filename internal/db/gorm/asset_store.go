// Package gorm provides GORM-based database operations for relic.
package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thebtf/relic/pkg/models"
)

// ErrNotFound is returned when a requested asset does not exist.
var ErrNotFound = errors.New("asset not found")

// AssetStore provides asset-related database operations using GORM.
type AssetStore struct {
	db *gorm.DB
}

// NewAssetStore creates a new asset store.
func NewAssetStore(store *Store) *AssetStore {
	return &AssetStore{db: store.DB}
}

// ListParams filters asset listings.
type ListParams struct {
	Collection string
	Category   string
	Limit      int
	Offset     int
}

// SaveBatch upserts a batch of assets. Assets arriving without an ID are
// assigned a fresh UUID. Returns the stored assets with IDs filled in.
func (s *AssetStore) SaveBatch(ctx context.Context, assets []models.Asset) ([]models.Asset, error) {
	if len(assets) == 0 {
		return []models.Asset{}, nil
	}

	stored := make([]models.Asset, 0, len(assets))
	records := make([]*AssetRecord, 0, len(assets))
	for _, asset := range assets {
		if asset.ID == "" {
			asset.ID = uuid.NewString()
		}
		stored = append(stored, asset)
		records = append(records, fromAsset(asset))
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&records).Error
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Get fetches one asset by ID.
func (s *AssetStore) Get(ctx context.Context, id string) (models.Asset, error) {
	var record AssetRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Asset{}, ErrNotFound
		}
		return models.Asset{}, err
	}
	return record.toAsset(), nil
}

// List returns assets in insertion order, optionally filtered by collection
// and category. Limit 0 means no limit.
func (s *AssetStore) List(ctx context.Context, params ListParams) ([]models.Asset, error) {
	query := s.db.WithContext(ctx).Model(&AssetRecord{}).Order("created_at_epoch ASC, id ASC")
	if params.Collection != "" {
		query = query.Where("collection = ?", params.Collection)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var records []AssetRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	assets := make([]models.Asset, 0, len(records))
	for i := range records {
		assets = append(assets, records[i].toAsset())
	}
	return assets, nil
}

// Delete removes one asset by ID.
func (s *AssetStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&AssetRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of stored assets.
func (s *AssetStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&AssetRecord{}).Count(&count).Error
	return count, err
}
