package dedupe

import "github.com/thebtf/relic/pkg/models"

// pairKey identifies an unordered asset pair by input position.
type pairKey struct {
	lo, hi int
}

// FindClusters partitions assets into duplicate clusters at the engine's
// clustering threshold. See FindClustersAt.
func (e *Engine) FindClusters(assets []models.Asset) models.DeduplicationResult {
	return e.FindClustersAt(assets, e.opts.ClusterThreshold)
}

// FindClustersAt scores every unordered pair, unions pairs at or above the
// threshold, and groups assets by their union-find root. Merging is
// transitive: A~B and B~C places A, B, C in one cluster even when A and C
// alone fall under the threshold. Pair evaluation is O(n²), acceptable for
// corpora of hundreds to low thousands of assets; pre-filter or batch above
// that.
//
// Every input asset lands in exactly one cluster or in UniqueAssets; empty
// input yields empty outputs.
func (e *Engine) FindClustersAt(assets []models.Asset, threshold float64) models.DeduplicationResult {
	result := models.DeduplicationResult{
		Clusters:     []models.AssetCluster{},
		UniqueAssets: []models.Asset{},
	}
	if len(assets) == 0 {
		return result
	}

	uf := newUnionFind()
	for _, asset := range assets {
		uf.add(asset.ID)
	}

	// Score all pairs once; matches are kept so cluster similarity can be
	// derived from primary-to-duplicate scores without rescoring.
	matches := make(map[pairKey]models.SimilarityMatch)
	indexByID := make(map[string]int, len(assets))
	for i, asset := range assets {
		indexByID[asset.ID] = i
	}
	for i := 0; i < len(assets); i++ {
		for j := i + 1; j < len(assets); j++ {
			match := e.ScoreSimilarity(assets[i], assets[j])
			matches[pairKey{lo: i, hi: j}] = match
			if match.Score >= threshold {
				uf.union(assets[i].ID, assets[j].ID)
			}
		}
	}

	// Group members by root, preserving input order within and across groups.
	groups := make(map[string][]models.Asset)
	var rootOrder []string
	for _, asset := range assets {
		root := uf.find(asset.ID)
		if _, seen := groups[root]; !seen {
			rootOrder = append(rootOrder, root)
		}
		groups[root] = append(groups[root], asset)
	}

	for _, root := range rootOrder {
		members := groups[root]
		if len(members) == 1 {
			result.UniqueAssets = append(result.UniqueAssets, members[0])
			continue
		}

		primary, duplicates := splitPrimary(members)
		primaryIdx := indexByID[primary.ID]

		var scoreSum float64
		for _, dup := range duplicates {
			scoreSum += matches[orderedPair(primaryIdx, indexByID[dup.ID])].Score
		}

		result.Clusters = append(result.Clusters, models.AssetCluster{
			Primary:      primary,
			Duplicates:   duplicates,
			Similarity:   scoreSum / float64(len(duplicates)),
			Consolidated: e.consolidate(members),
		})
		result.TotalDuplicates += len(duplicates)
	}

	return result
}

// splitPrimary picks the member with the highest confidence as primary;
// ties keep the first occurrence in input order.
func splitPrimary(members []models.Asset) (models.Asset, []models.Asset) {
	best := 0
	for i := 1; i < len(members); i++ {
		if members[i].Confidence() > members[best].Confidence() {
			best = i
		}
	}

	duplicates := make([]models.Asset, 0, len(members)-1)
	for i, member := range members {
		if i != best {
			duplicates = append(duplicates, member)
		}
	}
	return members[best], duplicates
}

func orderedPair(a, b int) pairKey {
	if a < b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}
