package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// PredictionRepository implements prediction.Repository backed by GORM.
type PredictionRepository struct {
	db     *gorm.DB
	mapper mappers.PredictionMapper
}

// NewPredictionRepository creates a new PredictionRepository
func NewPredictionRepository(gdb *gorm.DB) *PredictionRepository {
	return &PredictionRepository{
		db:     gdb,
		mapper: mappers.NewPredictionMapper(),
	}
}

// Upsert inserts a pick or replaces the existing one for the same
// (registration_id, match_id) pair.
func (r *PredictionRepository) Upsert(ctx context.Context, p *prediction.Prediction) error {
	model := r.mapper.ToModel(p)

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "registration_id"}, {Name: "match_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"home_goals", "away_goals", "points", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

// GetByRegistrationAndMatch retrieves a single pick
func (r *PredictionRepository) GetByRegistrationAndMatch(ctx context.Context, registrationID, matchID uint) (*prediction.Prediction, error) {
	var model models.PredictionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("registration_id = ? AND match_id = ?", registrationID, matchID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prediction.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByRegistration retrieves every pick a registration has made
func (r *PredictionRepository) ListByRegistration(ctx context.Context, registrationID uint) ([]*prediction.Prediction, error) {
	var rows []*models.PredictionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("registration_id = ?", registrationID).
		Order("match_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return r.mapper.ToDomains(rows), nil
}

// ListByMatch retrieves every pick for a match
func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID uint) ([]*prediction.Prediction, error) {
	var rows []*models.PredictionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("match_id = ?", matchID).
		Order("registration_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return r.mapper.ToDomains(rows), nil
}
