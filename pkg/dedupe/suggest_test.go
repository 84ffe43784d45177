package dedupe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebtf/relic/pkg/models"
)

func TestClassifyAction_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		expected   models.SuggestedAction
	}{
		{
			name:       "exactly 0.8 merges",
			similarity: 0.8,
			expected:   models.ActionMerge,
		},
		{
			name:       "above 0.8 merges",
			similarity: 0.95,
			expected:   models.ActionMerge,
		},
		{
			name:       "exactly 0.6 reviews",
			similarity: 0.6,
			expected:   models.ActionReview,
		},
		{
			name:       "just below 0.8 reviews",
			similarity: 0.79999,
			expected:   models.ActionReview,
		},
		{
			name:       "just below 0.6 keeps separate",
			similarity: 0.59999,
			expected:   models.ActionKeepSeparate,
		},
		{
			name:       "zero keeps separate",
			similarity: 0,
			expected:   models.ActionKeepSeparate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyAction(tt.similarity))
		})
	}
}

func TestGenerateSuggestions(t *testing.T) {
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

	suggestions := engine.GenerateSuggestions(assets)

	require.Len(t, suggestions, 1)
	sug := suggestions[0]
	assert.Equal(t, "Old Town Bridge (2 views)", sug.SuggestedTitle)
	assert.Len(t, sug.Assets, 2)
	assert.Equal(t, "bridge-1", sug.Assets[0].ID)
	assert.InDelta(t, 1.0, sug.Similarity, 0.0001)
	assert.Equal(t, models.ActionMerge, sug.Action)
	assert.Contains(t, sug.Reasons, "Very similar titles")
	assert.Contains(t, sug.Reasons, "Shared entities")
	assert.True(t, strings.HasPrefix(sug.ID, "sug-0-"), "id %q", sug.ID)
}

func TestGenerateSuggestions_UniqueIDsAndRanking(t *testing.T) {
	engine := NewDefault()

	pair := func(prefix, title string, entities models.StringArray) []models.Asset {
		return []models.Asset{
			asset(prefix+"-1", &models.AssetMetadata{Title: title, Entities: entities, Confidence: 0.9}),
			asset(prefix+"-2", &models.AssetMetadata{Title: title, Entities: entities, Confidence: 0.7}),
		}
	}

	// Two exact-duplicate pairs and one weaker pair that would not cluster
	// at the raw clustering threshold but surfaces for review.
	var assets []models.Asset
	assets = append(assets, pair("door", "Cathedral Door", models.StringArray{"door", "oak"})...)
	assets = append(assets, pair("gate", "Iron Gate", models.StringArray{"gate", "iron"})...)
	assets = append(assets,
		asset("well-1", &models.AssetMetadata{Title: "Village Well", Entities: models.StringArray{"well", "bucket", "stone"}, Confidence: 0.8}),
		asset("well-2", &models.AssetMetadata{Title: "Village Well", Entities: models.StringArray{"well", "rope", "moss"}, Confidence: 0.6}),
	)

	suggestions := engine.GenerateSuggestions(assets)
	require.Len(t, suggestions, 3)

	// Ranked by similarity descending.
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Similarity, suggestions[i].Similarity)
	}

	// IDs are unique within the run.
	ids := make(map[string]bool)
	for _, sug := range suggestions {
		assert.False(t, ids[sug.ID], "duplicate suggestion id %s", sug.ID)
		ids[sug.ID] = true
	}

	// The weaker pair is still surfaced at the suggestion threshold but not
	// recommended for automatic merge.
	last := suggestions[len(suggestions)-1]
	assert.Equal(t, "well-1", last.Assets[0].ID)
	assert.NotEqual(t, models.ActionMerge, last.Action)
}
