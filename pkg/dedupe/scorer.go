package dedupe

import (
	"math"
	"strings"

	"github.com/thebtf/relic/pkg/models"
	"github.com/thebtf/relic/pkg/similarity"
)

// gpsProximityDegrees is the per-axis coordinate delta treated as "the same
// spot" (0.001 degrees is roughly 100 m at mid latitudes).
const gpsProximityDegrees = 0.001

// Disclosure thresholds: a feature contributes a reason string only above
// these values. Presentation-level, but fixed so snapshot tests reproduce.
const (
	reasonTitleThreshold       = 0.8
	reasonCollectionThreshold  = 0.7
	reasonCategoryThreshold    = 0.7
	reasonEntitiesThreshold    = 0.5
	reasonKeywordsThreshold    = 0.4
	reasonDescriptionThreshold = 0.4
)

// accumulator keeps the running weighted sum and weight total so the
// "only count what's present" rule stays auditable feature by feature.
type accumulator struct {
	weightedSum float64
	totalWeight float64
}

func (acc *accumulator) add(weight, sim float64) {
	acc.weightedSum += weight * sim
	acc.totalWeight += weight
}

// score returns the weight-normalized composite, or 0 when no feature was
// evaluated.
func (acc *accumulator) score() float64 {
	if acc.totalWeight == 0 {
		return 0
	}
	return acc.weightedSum / acc.totalWeight
}

// ScoreSimilarity computes the weighted composite similarity of two assets.
// Each feature enters the weighted mean only when both assets populate the
// relevant field; how one-sided fields are handled follows the engine's
// MissingFieldPolicy. The composite always lies in [0,1].
func (e *Engine) ScoreSimilarity(a, b models.Asset) models.SimilarityMatch {
	var acc accumulator
	var reasons []string
	w := e.opts.Weights

	// Title
	if sim, ok := e.textFeature(&acc, w.Title, a.Title(), b.Title(), similarity.StringSimilarity); ok && sim > reasonTitleThreshold {
		reasons = append(reasons, "Very similar titles")
	}

	// Entity overlap
	if sim, ok := e.setFeature(&acc, w.Entities, entitiesOf(a), entitiesOf(b)); ok && sim > reasonEntitiesThreshold {
		reasons = append(reasons, "Shared entities")
	}

	// Collection label
	if sim, ok := e.textFeature(&acc, w.Collection, collectionOf(a), collectionOf(b), similarity.StringSimilarity); ok && sim > reasonCollectionThreshold {
		reasons = append(reasons, "Same collection")
	}

	// Category label
	if sim, ok := e.textFeature(&acc, w.Category, categoryOf(a), categoryOf(b), similarity.StringSimilarity); ok && sim > reasonCategoryThreshold {
		reasons = append(reasons, "Same category")
	}

	// Description significant-word overlap
	if sim, ok := e.textFeature(&acc, w.Description, a.Description(), b.Description(), descriptionSimilarity); ok && sim > reasonDescriptionThreshold {
		reasons = append(reasons, "Similar descriptions")
	}

	// Keyword overlap
	if sim, ok := e.setFeature(&acc, w.Keywords, keywordsOf(a), keywordsOf(b)); ok && sim > reasonKeywordsThreshold {
		reasons = append(reasons, "Shared keywords")
	}

	// GIS zone: exact case-insensitive match or nothing.
	if sim, ok := e.textFeature(&acc, w.GISZone, gisZoneOf(a), gisZoneOf(b), zoneSimilarity); ok && sim == 1 {
		reasons = append(reasons, "Same GIS zone")
	}

	// GPS proximity
	if sim, ok := e.gpsFeature(&acc, w.GPS, a.Position, b.Position); ok && sim == 1 {
		reasons = append(reasons, "Captured at the same location")
	}

	return models.SimilarityMatch{
		AssetA:  a.ID,
		AssetB:  b.ID,
		Score:   acc.score(),
		Reasons: reasons,
	}
}

// textFeature evaluates one string-valued feature. Returns the similarity and
// whether the feature was evaluated with both sides present.
func (e *Engine) textFeature(acc *accumulator, weight float64, a, b string, fn func(a, b string) float64) (float64, bool) {
	hasA := strings.TrimSpace(a) != ""
	hasB := strings.TrimSpace(b) != ""
	switch {
	case hasA && hasB:
		sim := fn(a, b)
		acc.add(weight, sim)
		return sim, true
	case hasA || hasB:
		if e.opts.Policy == PolicyPenalize {
			acc.add(weight, 0)
		}
	}
	return 0, false
}

// setFeature evaluates one list-valued feature via Jaccard overlap.
func (e *Engine) setFeature(acc *accumulator, weight float64, a, b []string) (float64, bool) {
	switch {
	case len(a) > 0 && len(b) > 0:
		sim := similarity.SetSimilarity(a, b)
		acc.add(weight, sim)
		return sim, true
	case len(a) > 0 || len(b) > 0:
		if e.opts.Policy == PolicyPenalize {
			acc.add(weight, 0)
		}
	}
	return 0, false
}

// gpsFeature evaluates coordinate proximity: 1 when both axes differ by less
// than gpsProximityDegrees, else 0.
func (e *Engine) gpsFeature(acc *accumulator, weight float64, a, b *models.GeoPosition) (float64, bool) {
	switch {
	case a != nil && b != nil:
		sim := 0.0
		if math.Abs(a.Latitude-b.Latitude) < gpsProximityDegrees &&
			math.Abs(a.Longitude-b.Longitude) < gpsProximityDegrees {
			sim = 1.0
		}
		acc.add(weight, sim)
		return sim, true
	case a != nil || b != nil:
		if e.opts.Policy == PolicyPenalize {
			acc.add(weight, 0)
		}
	}
	return 0, false
}

func descriptionSimilarity(a, b string) float64 {
	return similarity.SetSimilarity(similarity.SignificantWords(a), similarity.SignificantWords(b))
}

func zoneSimilarity(a, b string) float64 {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return 1
	}
	return 0
}

func entitiesOf(a models.Asset) []string {
	if a.Metadata == nil {
		return nil
	}
	return a.Metadata.Entities
}

func keywordsOf(a models.Asset) []string {
	if a.Metadata == nil {
		return nil
	}
	return a.Metadata.Keywords
}

func collectionOf(a models.Asset) string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata.Collection
}

func categoryOf(a models.Asset) string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata.Category
}

func gisZoneOf(a models.Asset) string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata.GISZone
}
