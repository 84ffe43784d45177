package gorm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/thebtf/relic/pkg/models"
)

// testStore creates a Store backed by a throwaway database file.
func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(Config{
		Path:     filepath.Join(t.TempDir(), "relic-test.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func bridgeAsset(id string, confidence float64) models.Asset {
	return models.Asset{
		ID:       id,
		Position: &models.GeoPosition{Latitude: 48.8584, Longitude: 2.2945},
		Metadata: &models.AssetMetadata{
			Title:       "Old Town Bridge",
			Description: "Stone arch bridge crossing the river",
			Entities:    models.StringArray{"Bridge", "1890"},
			Keywords:    models.StringArray{"bridge", "stone"},
			Category:    "architecture",
			Collection:  "city-archive",
			GISZone:     "NW-4",
			Confidence:  confidence,
		},
	}
}

func TestAssetStore_SaveAndGet(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)
	ctx := context.Background()

	original := bridgeAsset("bridge-1", 0.9)
	stored, err := assets.SaveBatch(ctx, []models.Asset{original})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	fetched, err := assets.Get(ctx, "bridge-1")
	require.NoError(t, err)
	assert.Equal(t, original, fetched)
}

func TestAssetStore_GeneratesIDs(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)

	stored, err := assets.SaveBatch(context.Background(), []models.Asset{
		{Metadata: &models.AssetMetadata{Title: "Untagged capture"}},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0].ID)
}

func TestAssetStore_UpsertOverwrites(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)
	ctx := context.Background()

	_, err := assets.SaveBatch(ctx, []models.Asset{bridgeAsset("bridge-1", 0.5)})
	require.NoError(t, err)
	_, err = assets.SaveBatch(ctx, []models.Asset{bridgeAsset("bridge-1", 0.9)})
	require.NoError(t, err)

	fetched, err := assets.Get(ctx, "bridge-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, fetched.Metadata.Confidence, 0.0001)

	count, err := assets.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAssetStore_GetNotFound(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)

	_, err := assets.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetStore_ListFilters(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)
	ctx := context.Background()

	batch := []models.Asset{
		{ID: "a", Metadata: &models.AssetMetadata{Collection: "city-archive", Category: "architecture"}},
		{ID: "b", Metadata: &models.AssetMetadata{Collection: "city-archive", Category: "sculpture"}},
		{ID: "c", Metadata: &models.AssetMetadata{Collection: "museum", Category: "architecture"}},
	}
	_, err := assets.SaveBatch(ctx, batch)
	require.NoError(t, err)

	listed, err := assets.List(ctx, ListParams{Collection: "city-archive"})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	listed, err = assets.List(ctx, ListParams{Collection: "city-archive", Category: "sculpture"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "b", listed[0].ID)

	listed, err = assets.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestAssetStore_Delete(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)
	ctx := context.Background()

	_, err := assets.SaveBatch(ctx, []models.Asset{bridgeAsset("bridge-1", 0.9)})
	require.NoError(t, err)

	require.NoError(t, assets.Delete(ctx, "bridge-1"))
	assert.ErrorIs(t, assets.Delete(ctx, "bridge-1"), ErrNotFound)
}

func TestAssetStore_RoundTripWithoutMetadata(t *testing.T) {
	store := testStore(t)
	assets := NewAssetStore(store)
	ctx := context.Background()

	_, err := assets.SaveBatch(ctx, []models.Asset{{ID: "bare"}})
	require.NoError(t, err)

	fetched, err := assets.Get(ctx, "bare")
	require.NoError(t, err)
	assert.Nil(t, fetched.Metadata)
	assert.Nil(t, fetched.Position)
}

func TestReviewStore_RecordAndList(t *testing.T) {
	store := testStore(t)
	reviews := NewReviewStore(store)
	ctx := context.Background()

	id, err := reviews.Record(ctx, "sug-0-123", "run-1", DecisionAccepted,
		[]string{"bridge-1", "bridge-2"}, "clear duplicate")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = reviews.Record(ctx, "sug-1-123", "run-1", DecisionRejected, []string{"a", "b"}, "")
	require.NoError(t, err)

	decisions, err := reviews.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, "sug-1-123", decisions[0].SuggestionID)
	assert.Equal(t, models.StringArray{"bridge-1", "bridge-2"}, decisions[1].AssetIDs)
}

func TestReviewStore_InvalidDecision(t *testing.T) {
	store := testStore(t)
	reviews := NewReviewStore(store)

	_, err := reviews.Record(context.Background(), "sug-0-123", "run-1", "maybe", nil, "")
	assert.Error(t, err)
}
