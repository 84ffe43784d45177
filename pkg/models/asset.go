// Package models contains domain models for relic.
package models

// GeoPosition is a capture location in floating-point degrees.
type GeoPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AssetMetadata holds the extracted metadata attached to a digitized asset.
// All fields are optional; the dedup engine skips features whose fields are
// missing on either side of a comparison.
type AssetMetadata struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Entities    StringArray `json:"entities,omitempty"`
	Keywords    StringArray `json:"keywords,omitempty"`
	Category    string      `json:"category,omitempty"`
	Collection  string      `json:"collection,omitempty"`
	GISZone     string      `json:"gis_zone,omitempty"`
	Confidence  float64     `json:"confidence,omitempty"`
}

// Asset represents one digitized artifact capture produced by the upstream
// pipeline. The engine never mutates assets; all derived structures are new.
type Asset struct {
	ID       string         `json:"id"`
	Position *GeoPosition   `json:"position,omitempty"`
	Metadata *AssetMetadata `json:"metadata,omitempty"`
}

// Confidence returns the extraction confidence, or 0 when metadata is absent.
func (a Asset) Confidence() float64 {
	if a.Metadata == nil {
		return 0
	}
	return a.Metadata.Confidence
}

// Title returns the metadata title, or "" when metadata is absent.
func (a Asset) Title() string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata.Title
}

// Description returns the metadata description, or "" when metadata is absent.
func (a Asset) Description() string {
	if a.Metadata == nil {
		return ""
	}
	return a.Metadata.Description
}
