package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/straye-as/estimate-api/internal/domain"
)

// EstimateRepository handles estimate data access operations
type EstimateRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEstimateRepository creates a new estimate repository instance
func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// upsertColumns are overwritten when a save hits an existing id.
// created_at is deliberately absent.
var upsertColumns = []string{
	"updated_at",
	"title",
	"zip",
	"trade",
	"customer_json",
	"inputs_json",
	"outputs_json",
}

// GetByID retrieves an estimate by its ID
func (r *EstimateRepository) GetByID(ctx context.Context, id string) (*domain.EstimateRecord, error) {
	var rec domain.EstimateRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every estimate summary, most recently updated first
func (r *EstimateRepository) List(ctx context.Context) ([]domain.EstimateSummary, error) {
	var recs []domain.EstimateRecord
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "updated_at", "title", "zip", "trade").
		Order("updated_at DESC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.EstimateSummary, len(recs))
	for i, rec := range recs {
		out[i] = rec.Summary()
	}
	return out, nil
}

// Upsert inserts rec or replaces the stored estimate with the same id.
// UpdatedAt is always set to now; CreatedAt of an existing row is kept.
func (r *EstimateRepository) Upsert(ctx context.Context, rec *domain.EstimateRecord) error {
	now := r.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(rec).Error
}

// Delete removes an estimate. It reports whether a row existed.
func (r *EstimateRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.EstimateRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdatedAtByID returns the current updated_at of each id that still exists
func (r *EstimateRepository) UpdatedAtByID(ctx context.Context, ids []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		ID        string
		UpdatedAt time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&domain.EstimateRecord{}).
		Select("id", "updated_at").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.ID] = row.UpdatedAt
	}
	return out, nil
}
