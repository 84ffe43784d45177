package dedupe

import (
	"fmt"
	"sort"
	"time"

	"github.com/thebtf/relic/pkg/models"
)

// GenerateSuggestions clusters assets at the engine's suggestion threshold
// and turns every multi-member cluster into an actionable recommendation,
// ranked by similarity descending. Suggestion IDs are unique within one run;
// global uniqueness across runs is not guaranteed.
func (e *Engine) GenerateSuggestions(assets []models.Asset) []models.DeduplicationSuggestion {
	result := e.FindClustersAt(assets, e.opts.SuggestionThreshold)

	suggestions := make([]models.DeduplicationSuggestion, 0, len(result.Clusters))
	for _, cluster := range result.Clusters {
		suggestions = append(suggestions, models.DeduplicationSuggestion{
			Assets:         append([]models.Asset{cluster.Primary}, cluster.Duplicates...),
			SuggestedTitle: cluster.Consolidated.Title,
			Reasons:        e.clusterReasons(cluster),
			Similarity:     cluster.Similarity,
			Action:         classifyAction(cluster.Similarity),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})

	now := time.Now().UnixMilli()
	for i := range suggestions {
		suggestions[i].ID = fmt.Sprintf("sug-%d-%d", i, now)
	}
	return suggestions
}

// classifyAction maps a cluster similarity to the recommended action.
// Boundaries are inclusive: exactly 0.8 merges, exactly 0.6 reviews.
func classifyAction(clusterSimilarity float64) models.SuggestedAction {
	switch {
	case clusterSimilarity >= 0.8:
		return models.ActionMerge
	case clusterSimilarity >= 0.6:
		return models.ActionReview
	default:
		return models.ActionKeepSeparate
	}
}

// clusterReasons aggregates the deduplicated match reasons across all
// primary-to-duplicate pairs, in first-seen order.
func (e *Engine) clusterReasons(cluster models.AssetCluster) []string {
	seen := make(map[string]bool)
	var reasons []string
	for _, dup := range cluster.Duplicates {
		match := e.ScoreSimilarity(cluster.Primary, dup)
		for _, reason := range match.Reasons {
			if !seen[reason] {
				seen[reason] = true
				reasons = append(reasons, reason)
			}
		}
	}
	return reasons
}
