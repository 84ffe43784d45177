// Package worker provides the HTTP service wrapping the dedup engine.
package worker

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	gormdb "github.com/thebtf/relic/internal/db/gorm"
	"github.com/thebtf/relic/pkg/models"
)

const maxIngestBatch = 5000

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.assets.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        s.version,
		"assets":         count,
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
	})
}

func (s *Service) handleIngestAssets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Assets []models.Asset `json:"assets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Assets) == 0 {
		writeError(w, http.StatusBadRequest, "assets is required")
		return
	}
	if len(req.Assets) > maxIngestBatch {
		writeError(w, http.StatusRequestEntityTooLarge, "batch too large")
		return
	}

	stored, err := s.assets.SaveBatch(r.Context(), req.Assets)
	if err != nil {
		log.Error().Err(err).Msg("Failed to ingest assets")
		writeError(w, http.StatusInternalServerError, "failed to store assets")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"ingested": len(stored),
		"assets":   stored,
	})
}

func (s *Service) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.assets.List(r.Context(), gormdb.ListParams{
		Collection: r.URL.Query().Get("collection"),
		Category:   r.URL.Query().Get("category"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
		"count":  len(assets),
	})
}

func (s *Service) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, gormdb.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch asset")
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Service) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	err := s.assets.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, gormdb.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dedupeRequest selects which assets to cluster and at which threshold.
type dedupeRequest struct {
	Collection string   `json:"collection,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

func (s *Service) handleDedupe(w http.ResponseWriter, r *http.Request) {
	req, assets, ok := s.loadScope(w, r)
	if !ok {
		return
	}

	engine := s.Engine()
	threshold := engine.Options().ClusterThreshold
	if req.Threshold != nil {
		if *req.Threshold <= 0 || *req.Threshold > 1 {
			writeError(w, http.StatusBadRequest, "threshold must be in (0, 1]")
			return
		}
		threshold = *req.Threshold
	}

	start := time.Now()
	result := engine.FindClustersAt(assets, threshold)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":           uuid.NewString(),
		"generated_at":     time.Now().Format(time.RFC3339),
		"threshold":        threshold,
		"assets_scanned":   len(assets),
		"clusters":         result.Clusters,
		"unique_assets":    result.UniqueAssets,
		"total_duplicates": result.TotalDuplicates,
		"duration_ms":      time.Since(start).Milliseconds(),
	})
}

func (s *Service) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	_, assets, ok := s.loadScope(w, r)
	if !ok {
		return
	}

	suggestions := s.Engine().GenerateSuggestions(assets)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":         uuid.NewString(),
		"generated_at":   time.Now().Format(time.RFC3339),
		"assets_scanned": len(assets),
		"suggestions":    suggestions,
	})
}

// loadScope decodes the common dedupe/suggestion request body and loads the
// assets in scope. An empty body means the full corpus.
func (s *Service) loadScope(w http.ResponseWriter, r *http.Request) (dedupeRequest, []models.Asset, bool) {
	var req dedupeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return req, nil, false
		}
	}

	assets, err := s.assets.List(r.Context(), gormdb.ListParams{Collection: req.Collection})
	if err != nil {
		log.Error().Err(err).Msg("Failed to load assets for dedupe")
		writeError(w, http.StatusInternalServerError, "failed to load assets")
		return req, nil, false
	}
	return req, assets, true
}

func (s *Service) handleRecordReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SuggestionID string   `json:"suggestion_id"`
		RunID        string   `json:"run_id,omitempty"`
		Decision     string   `json:"decision"`
		AssetIDs     []string `json:"asset_ids,omitempty"`
		Notes        string   `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SuggestionID == "" {
		writeError(w, http.StatusBadRequest, "suggestion_id is required")
		return
	}

	id, err := s.reviews.Record(r.Context(), req.SuggestionID, req.RunID, req.Decision, req.AssetIDs, req.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// reviewResponse flattens sql.Null* columns for clean JSON output.
type reviewResponse struct {
	ID           int64    `json:"id"`
	SuggestionID string   `json:"suggestion_id"`
	RunID        string   `json:"run_id,omitempty"`
	Decision     string   `json:"decision"`
	AssetIDs     []string `json:"asset_ids,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

func (s *Service) handleListReviews(w http.ResponseWriter, r *http.Request) {
	decisions, err := s.reviews.List(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	reviews := make([]reviewResponse, 0, len(decisions))
	for _, d := range decisions {
		reviews = append(reviews, reviewResponse{
			ID:           d.ID,
			SuggestionID: d.SuggestionID,
			RunID:        d.RunID,
			Decision:     d.Decision,
			AssetIDs:     d.AssetIDs,
			Notes:        d.Notes.String,
			CreatedAt:    d.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
