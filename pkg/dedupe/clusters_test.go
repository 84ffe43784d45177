package dedupe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebtf/relic/pkg/models"
)

func TestFindClusters_EmptyInput(t *testing.T) {
	engine := NewDefault()

	result := engine.FindClusters(nil)

	assert.Empty(t, result.Clusters)
	assert.Empty(t, result.UniqueAssets)
	assert.Zero(t, result.TotalDuplicates)
}

func TestFindClusters_EndToEnd(t *testing.T) {
	engine := NewDefault()

	assets := []models.Asset{
		asset("bridge-1", &models.AssetMetadata{
			Title:      "Old Town Bridge",
			Entities:   models.StringArray{"Bridge", "1890"},
			Confidence: 0.9,
		}),
		asset("bridge-2", &models.AssetMetadata{
			Title:      "Old Town Bridge",
			Entities:   models.StringArray{"Bridge", "1890"},
			Confidence: 0.7,
		}),
		asset("lighthouse", &models.AssetMetadata{
			Title:      "Harbor Lighthouse",
			Confidence: 0.8,
		}),
	}

	result := engine.FindClusters(assets)

	require.Len(t, result.Clusters, 1)
	cluster := result.Clusters[0]
	assert.Equal(t, "bridge-1", cluster.Primary.ID)
	require.Len(t, cluster.Duplicates, 1)
	assert.Equal(t, "bridge-2", cluster.Duplicates[0].ID)
	assert.InDelta(t, 1.0, cluster.Similarity, 0.0001)

	require.Len(t, result.UniqueAssets, 1)
	assert.Equal(t, "lighthouse", result.UniqueAssets[0].ID)
	assert.Equal(t, 1, result.TotalDuplicates)
}

func TestFindClusters_TransitiveMerge(t *testing.T) {
	engine := NewDefault()

	// Entity sets chosen so A~B and B~C clear the 0.6 threshold while A~C
	// alone does not. Transitive merging must still produce one cluster.
	entities := func(from, to int) models.StringArray {
		var out models.StringArray
		for i := from; i <= to; i++ {
			out = append(out, fmt.Sprintf("e%02d", i))
		}
		return out
	}

	a := asset("a", &models.AssetMetadata{Entities: entities(1, 10), Confidence: 0.9})
	b := asset("b", &models.AssetMetadata{Entities: entities(3, 12), Confidence: 0.8})
	c := asset("c", &models.AssetMetadata{Entities: entities(5, 14), Confidence: 0.7})

	ab := engine.ScoreSimilarity(a, b).Score
	bc := engine.ScoreSimilarity(b, c).Score
	ac := engine.ScoreSimilarity(a, c).Score
	require.GreaterOrEqual(t, ab, 0.6)
	require.GreaterOrEqual(t, bc, 0.6)
	require.Less(t, ac, 0.6)

	result := engine.FindClusters([]models.Asset{a, b, c})

	require.Len(t, result.Clusters, 1)
	assert.Equal(t, "a", result.Clusters[0].Primary.ID)
	assert.Len(t, result.Clusters[0].Duplicates, 2)
	assert.Empty(t, result.UniqueAssets)
	assert.Equal(t, 2, result.TotalDuplicates)
}

func TestFindClusters_Partition(t *testing.T) {
	engine := NewDefault()

	assets := []models.Asset{
		asset("a1", &models.AssetMetadata{Title: "Cathedral Door", Entities: models.StringArray{"door", "oak"}, Confidence: 0.6}),
		asset("a2", &models.AssetMetadata{Title: "Cathedral Door", Entities: models.StringArray{"door", "oak"}, Confidence: 0.9}),
		asset("b1", &models.AssetMetadata{Title: "Market Square Fountain", Confidence: 0.5}),
		asset("c1", &models.AssetMetadata{Title: "Iron Gate", Entities: models.StringArray{"gate"}, Confidence: 0.7}),
		{ID: "d1"}, // no metadata at all
	}

	result := engine.FindClusters(assets)

	// Every input ID appears exactly once across clusters and unique assets.
	seen := make(map[string]int)
	for _, cluster := range result.Clusters {
		seen[cluster.Primary.ID]++
		for _, dup := range cluster.Duplicates {
			seen[dup.ID]++
		}
	}
	for _, unique := range result.UniqueAssets {
		seen[unique.ID]++
	}

	require.Len(t, seen, len(assets))
	for _, a := range assets {
		assert.Equal(t, 1, seen[a.ID], "asset %s must appear exactly once", a.ID)
	}
}

func TestFindClusters_PrimaryTieBreak(t *testing.T) {
	engine := NewDefault()

	meta := func(conf float64) *models.AssetMetadata {
		return &models.AssetMetadata{
			Title:      "Stone Arch",
			Entities:   models.StringArray{"arch", "stone"},
			Confidence: conf,
		}
	}

	// Equal confidence: the first occurrence in input order wins.
	result := engine.FindClusters([]models.Asset{
		asset("second", meta(0.8)),
		asset("first", meta(0.8)),
	})
	require.Len(t, result.Clusters, 1)
	assert.Equal(t, "second", result.Clusters[0].Primary.ID)

	// Higher confidence wins regardless of position.
	result = engine.FindClusters([]models.Asset{
		asset("low", meta(0.5)),
		asset("high", meta(0.9)),
	})
	require.Len(t, result.Clusters, 1)
	assert.Equal(t, "high", result.Clusters[0].Primary.ID)
}

func TestFindClusters_ThresholdIsInclusive(t *testing.T) {
	engine := NewDefault()

	a := asset("a", &models.AssetMetadata{Title: "Granary"})
	b := asset("b", &models.AssetMetadata{Title: "granary"})

	// Identical titles score exactly 1.0; a threshold of 1.0 must still union.
	result := engine.FindClustersAt([]models.Asset{a, b}, 1.0)
	require.Len(t, result.Clusters, 1)
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind()

	uf.union("a", "b")
	uf.union("b", "c")
	uf.union("x", "y")

	assert.Equal(t, uf.find("a"), uf.find("c"))
	assert.Equal(t, uf.find("x"), uf.find("y"))
	assert.NotEqual(t, uf.find("a"), uf.find("x"))
	assert.Equal(t, "z", uf.find("z"))
}
