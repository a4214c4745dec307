package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/prediction"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// PredictionMapper handles conversion between Prediction domain and model.
type PredictionMapper interface {
	ToModel(p *prediction.Prediction) *models.PredictionModel
	ToDomain(model *models.PredictionModel) *prediction.Prediction
	ToDomains(models []*models.PredictionModel) []*prediction.Prediction
}

// PredictionMapperImpl is the concrete implementation of PredictionMapper.
type PredictionMapperImpl struct{}

// NewPredictionMapper creates a new PredictionMapper.
func NewPredictionMapper() PredictionMapper {
	return &PredictionMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *PredictionMapperImpl) ToModel(p *prediction.Prediction) *models.PredictionModel {
	if p == nil {
		return nil
	}
	return &models.PredictionModel{
		ID:             p.ID(),
		RegistrationID: p.RegistrationID(),
		MatchID:        p.MatchID(),
		HomeGoals:      p.HomeGoals(),
		AwayGoals:      p.AwayGoals(),
		Points:         p.Points(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *PredictionMapperImpl) ToDomain(model *models.PredictionModel) *prediction.Prediction {
	if model == nil {
		return nil
	}
	return prediction.ReconstructPrediction(
		model.ID,
		model.RegistrationID,
		model.MatchID,
		model.HomeGoals,
		model.AwayGoals,
		model.Points,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ToDomains converts a slice of GORM models to domain entities
func (m *PredictionMapperImpl) ToDomains(predictionModels []*models.PredictionModel) []*prediction.Prediction {
	result := make([]*prediction.Prediction, 0, len(predictionModels))
	for _, pm := range predictionModels {
		result = append(result, m.ToDomain(pm))
	}
	return result
}
