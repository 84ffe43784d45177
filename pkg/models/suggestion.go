// Package models contains domain models for relic.
package models

// SuggestedAction is the recommended handling for a duplicate cluster.
type SuggestedAction string

const (
	ActionMerge        SuggestedAction = "merge"
	ActionReview       SuggestedAction = "review"
	ActionKeepSeparate SuggestedAction = "keep_separate"
)

// DeduplicationSuggestion is a presentation-facing recommendation for one
// multi-member cluster, intended for a human reviewer to accept or reject.
type DeduplicationSuggestion struct {
	ID             string          `json:"id"`
	Assets         []Asset         `json:"assets"`
	SuggestedTitle string          `json:"suggested_title"`
	Reasons        []string        `json:"reasons,omitempty"`
	Similarity     float64         `json:"similarity"`
	Action         SuggestedAction `json:"action"`
}
