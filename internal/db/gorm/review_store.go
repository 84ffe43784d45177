// Package gorm provides GORM-based database operations for relic.
package gorm

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/thebtf/relic/pkg/models"
)

// Reviewer decisions.
const (
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

// ReviewStore persists reviewer decisions on dedup suggestions.
type ReviewStore struct {
	db *gorm.DB
}

// NewReviewStore creates a new review store.
func NewReviewStore(store *Store) *ReviewStore {
	return &ReviewStore{db: store.DB}
}

// Record stores one accept/reject decision.
func (s *ReviewStore) Record(ctx context.Context, suggestionID, runID, decision string, assetIDs []string, notes string) (int64, error) {
	if decision != DecisionAccepted && decision != DecisionRejected {
		return 0, fmt.Errorf("invalid decision %q", decision)
	}

	record := &ReviewDecision{
		SuggestionID: suggestionID,
		RunID:        runID,
		Decision:     decision,
		AssetIDs:     models.StringArray(assetIDs),
		Notes:        sql.NullString{String: notes, Valid: notes != ""},
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// List returns the most recent decisions, newest first.
func (s *ReviewStore) List(ctx context.Context, limit int) ([]ReviewDecision, error) {
	if limit <= 0 {
		limit = 50
	}
	var decisions []ReviewDecision
	err := s.db.WithContext(ctx).
		Order("created_at_epoch DESC, id DESC").
		Limit(limit).
		Find(&decisions).Error
	return decisions, err
}
