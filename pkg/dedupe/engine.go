// Package dedupe implements the deduplication and consolidation engine for
// digitized asset records: pairwise weighted scoring, union-find clustering,
// metadata consolidation, and reviewer-facing suggestions.
//
// The engine is stateless and performs no I/O; concurrent calls are safe as
// long as each call receives its own input slice.
package dedupe

// MissingFieldPolicy controls how a feature populated on exactly one side of
// a pair contributes to the composite score.
type MissingFieldPolicy string

const (
	// PolicyIgnore excludes the feature from the weighted mean entirely.
	// Missing data is treated as no evidence either way.
	PolicyIgnore MissingFieldPolicy = "ignore"
	// PolicyPenalize counts the feature at full weight with similarity 0.
	// Missing data on one side is treated as evidence of difference.
	PolicyPenalize MissingFieldPolicy = "penalize"
)

// Weights holds the per-feature weights of the composite score.
type Weights struct {
	Title       float64 `json:"title" yaml:"title"`
	Entities    float64 `json:"entities" yaml:"entities"`
	Collection  float64 `json:"collection" yaml:"collection"`
	Category    float64 `json:"category" yaml:"category"`
	Description float64 `json:"description" yaml:"description"`
	Keywords    float64 `json:"keywords" yaml:"keywords"`
	GISZone     float64 `json:"gis_zone" yaml:"gis_zone"`
	GPS         float64 `json:"gps" yaml:"gps"`
}

// DefaultWeights returns the fixed design-level feature weights.
func DefaultWeights() Weights {
	return Weights{
		Title:       3,
		Entities:    4,
		Collection:  2,
		Category:    2,
		Description: 3,
		Keywords:    2,
		GISZone:     1.5,
		GPS:         2,
	}
}

// Default thresholds. Suggestions deliberately cluster at a lower threshold
// than raw clustering so weaker candidates still surface for human review.
const (
	DefaultClusterThreshold    = 0.6
	DefaultSuggestionThreshold = 0.5
)

// Options configures an Engine. The zero value of any field falls back to
// the defaults in New.
type Options struct {
	ClusterThreshold    float64
	SuggestionThreshold float64
	Weights             Weights
	Policy              MissingFieldPolicy
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		ClusterThreshold:    DefaultClusterThreshold,
		SuggestionThreshold: DefaultSuggestionThreshold,
		Weights:             DefaultWeights(),
		Policy:              PolicyIgnore,
	}
}

// Engine is a stateless deduplication engine. Construct one per call site
// with New; methods never mutate their inputs.
type Engine struct {
	opts Options
}

// New creates an Engine, filling unset option fields with defaults.
func New(opts Options) *Engine {
	if opts.ClusterThreshold <= 0 {
		opts.ClusterThreshold = DefaultClusterThreshold
	}
	if opts.SuggestionThreshold <= 0 {
		opts.SuggestionThreshold = DefaultSuggestionThreshold
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if opts.Policy == "" {
		opts.Policy = PolicyIgnore
	}
	return &Engine{opts: opts}
}

// NewDefault creates an Engine with default options.
func NewDefault() *Engine {
	return New(DefaultOptions())
}

// Options returns a copy of the engine's effective options.
func (e *Engine) Options() Options {
	return e.opts
}
