package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// MatchMapper handles conversion between Match domain and model.
type MatchMapper interface {
	ToModel(match *prediction.Match) *models.MatchModel
	ToDomain(model *models.MatchModel) *prediction.Match
}

// MatchMapperImpl is the concrete implementation of MatchMapper.
type MatchMapperImpl struct{}

// NewMatchMapper creates a new MatchMapper.
func NewMatchMapper() MatchMapper {
	return &MatchMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *MatchMapperImpl) ToModel(match *prediction.Match) *models.MatchModel {
	if match == nil {
		return nil
	}
	return &models.MatchModel{
		ID:        match.ID(),
		SID:       match.SID(),
		PoolID:    match.PoolID(),
		HomeTeam:  match.HomeTeam(),
		AwayTeam:  match.AwayTeam(),
		KickoffAt: match.KickoffAt(),
		Status:    string(match.Status()),
		HomeScore: match.HomeScore(),
		AwayScore: match.AwayScore(),
		CreatedAt: match.CreatedAt(),
		UpdatedAt: match.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *MatchMapperImpl) ToDomain(model *models.MatchModel) *prediction.Match {
	if model == nil {
		return nil
	}
	return prediction.ReconstructMatch(
		model.ID,
		model.SID,
		model.PoolID,
		model.HomeTeam,
		model.AwayTeam,
		model.KickoffAt,
		prediction.MatchStatus(model.Status),
		model.HomeScore,
		model.AwayScore,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
