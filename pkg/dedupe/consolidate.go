package dedupe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/thebtf/relic/pkg/models"
	"github.com/thebtf/relic/pkg/similarity"
)

// ErrEmptyInput is returned when consolidation is asked to merge zero
// records; consolidation has no defined result for an empty group.
var ErrEmptyInput = errors.New("dedupe: cannot consolidate empty asset group")

// titleSeparator truncates capture-pipeline title suffixes such as
// "Old Town Bridge - scan 03" down to the subject itself.
const titleSeparator = " - "

// How many novel significant words a secondary description must contribute
// before it is quoted in the consolidated description, and how many such
// excerpts are kept.
const (
	minNovelWords   = 3
	maxExcerpts     = 2
	excerptMaxWords = 12
)

// Consolidate merges a group of asset records into one canonical metadata
// view: primary-based title and description, case-insensitive unions of
// entities and keywords, majority-vote category, and mean confidence.
func (e *Engine) Consolidate(members []models.Asset) (models.ConsolidatedMetadata, error) {
	if len(members) == 0 {
		return models.ConsolidatedMetadata{}, ErrEmptyInput
	}
	return e.consolidate(members), nil
}

// consolidate assumes a non-empty member slice.
func (e *Engine) consolidate(members []models.Asset) models.ConsolidatedMetadata {
	// Stable sort by confidence descending; ties keep input order so the
	// outcome is deterministic for identical confidences.
	sorted := make([]models.Asset, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence() > sorted[j].Confidence()
	})
	primary := sorted[0]

	var confidenceSum float64
	for _, member := range sorted {
		confidenceSum += member.Confidence()
	}

	return models.ConsolidatedMetadata{
		Title:       consolidatedTitle(primary, len(sorted)),
		Description: consolidatedDescription(sorted),
		Entities:    unionStrings(sorted, func(m *models.AssetMetadata) []string { return m.Entities }),
		Keywords:    unionStrings(sorted, func(m *models.AssetMetadata) []string { return m.Keywords }),
		Category:    majorityCategory(sorted),
		Confidence:  confidenceSum / float64(len(sorted)),
	}
}

// consolidatedTitle returns the primary title verbatim for single-member
// groups; larger groups truncate at the separator and note the view count.
func consolidatedTitle(primary models.Asset, memberCount int) string {
	title := primary.Title()
	if memberCount == 1 {
		return title
	}
	if idx := strings.Index(title, titleSeparator); idx >= 0 {
		title = title[:idx]
	}
	return fmt.Sprintf("%s (%d views)", title, memberCount)
}

// consolidatedDescription bases the merged description on the longest member
// description. Secondary descriptions contributing enough novel significant
// words are quoted; otherwise a generic consolidation note is appended.
func consolidatedDescription(sorted []models.Asset) string {
	base := ""
	baseIdx := -1
	for i, member := range sorted {
		if desc := member.Description(); len(desc) > len(base) {
			base = desc
			baseIdx = i
		}
	}

	if len(sorted) == 1 {
		return base
	}
	if base == "" {
		return ""
	}

	baseWords := make(map[string]bool)
	for _, word := range similarity.SignificantWords(base) {
		baseWords[word] = true
	}

	var excerpts []string
	for i, member := range sorted {
		if i == baseIdx {
			continue
		}
		desc := member.Description()
		if strings.TrimSpace(desc) == "" || desc == base {
			continue
		}

		novel := make(map[string]bool)
		for _, word := range similarity.SignificantWords(desc) {
			if !baseWords[word] {
				novel[word] = true
			}
		}
		if len(novel) >= minNovelWords {
			excerpts = append(excerpts, excerpt(desc))
			if len(excerpts) == maxExcerpts {
				break
			}
		}
	}

	if len(excerpts) > 0 {
		return base + "\n\nAdditional details: " + strings.Join(excerpts, "; ")
	}
	return base + fmt.Sprintf("\n\nConsolidated from %d images.", len(sorted))
}

// excerpt trims a description down to its leading words.
func excerpt(desc string) string {
	words := strings.Fields(desc)
	if len(words) <= excerptMaxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:excerptMaxWords], " ") + "..."
}

// unionStrings merges a list field across members, deduplicated
// case-insensitively and trimmed, keeping the first-encountered casing in
// confidence order.
func unionStrings(sorted []models.Asset, field func(*models.AssetMetadata) []string) models.StringArray {
	seen := make(map[string]bool)
	var union models.StringArray
	for _, member := range sorted {
		if member.Metadata == nil {
			continue
		}
		for _, item := range field(member.Metadata) {
			trimmed := strings.TrimSpace(item)
			key := strings.ToLower(trimmed)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			union = append(union, trimmed)
		}
	}
	return union
}

// majorityCategory returns the most frequent category label, counted
// case-insensitively; ties go to the first-encountered label.
func majorityCategory(sorted []models.Asset) string {
	counts := make(map[string]int)
	labels := make(map[string]string)
	var order []string

	for _, member := range sorted {
		if member.Metadata == nil {
			continue
		}
		trimmed := strings.TrimSpace(member.Metadata.Category)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := labels[key]; !ok {
			labels[key] = trimmed
			order = append(order, key)
		}
		counts[key]++
	}

	best := ""
	for _, key := range order {
		if best == "" || counts[key] > counts[best] {
			best = key
		}
	}
	return labels[best]
}
