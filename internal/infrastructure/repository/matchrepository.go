package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// MatchRepository implements prediction.MatchRepository backed by GORM.
type MatchRepository struct {
	db     *gorm.DB
	mapper mappers.MatchMapper
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(gdb *gorm.DB) *MatchRepository {
	return &MatchRepository{
		db:     gdb,
		mapper: mappers.NewMatchMapper(),
	}
}

// Create persists a new match
func (r *MatchRepository) Create(ctx context.Context, match *prediction.Match) error {
	model := r.mapper.ToModel(match)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	match.SetID(model.ID)
	return nil
}

// Update persists match changes
func (r *MatchRepository) Update(ctx context.Context, match *prediction.Match) error {
	model := r.mapper.ToModel(match)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MatchModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"home_team":  model.HomeTeam,
			"away_team":  model.AwayTeam,
			"kickoff_at": model.KickoffAt,
			"status":     model.Status,
			"home_score": model.HomeScore,
			"away_score": model.AwayScore,
			"updated_at": model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id uint) (*prediction.Match, error) {
	var model models.MatchModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prediction.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySID retrieves a match by SID
func (r *MatchRepository) GetBySID(ctx context.Context, sid string) (*prediction.Match, error) {
	var model models.MatchModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prediction.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by sid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByPool retrieves every match in a pool ordered by kickoff
func (r *MatchRepository) ListByPool(ctx context.Context, poolID uint) ([]*prediction.Match, error) {
	var rows []*models.MatchModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("pool_id = ?", poolID).
		Order("kickoff_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	result := make([]*prediction.Match, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, nil
}
