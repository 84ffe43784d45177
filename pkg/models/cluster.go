// Package models contains domain models for relic.
package models

// SimilarityMatch is the pairwise comparison result for two assets.
// Produced fresh for every pair considered; never persisted.
type SimilarityMatch struct {
	AssetA  string   `json:"asset_a"`
	AssetB  string   `json:"asset_b"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// ConsolidatedMetadata is the merged canonical view of a cluster's metadata.
type ConsolidatedMetadata struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Entities    StringArray `json:"entities,omitempty"`
	Keywords    StringArray `json:"keywords,omitempty"`
	Category    string      `json:"category,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// AssetCluster groups one primary asset with the duplicates judged to show
// the same underlying subject. Similarity is the mean of the
// primary-to-duplicate pairwise scores.
type AssetCluster struct {
	Primary      Asset                `json:"primary"`
	Duplicates   []Asset              `json:"duplicates"`
	Similarity   float64              `json:"similarity"`
	Consolidated ConsolidatedMetadata `json:"consolidated"`
}

// DeduplicationResult is the full clustering outcome. Clusters and
// UniqueAssets together partition the input set: every input asset appears in
// exactly one of them.
type DeduplicationResult struct {
	Clusters        []AssetCluster `json:"clusters"`
	UniqueAssets    []Asset        `json:"unique_assets"`
	TotalDuplicates int            `json:"total_duplicates"`
}
