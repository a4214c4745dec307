package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// CodeBatchMapper handles conversion between CodeBatch domain and model.
type CodeBatchMapper interface {
	ToModel(b *access.CodeBatch) *models.CodeBatchModel
	ToDomain(model *models.CodeBatchModel) *access.CodeBatch
}

// CodeBatchMapperImpl is the concrete implementation of CodeBatchMapper.
type CodeBatchMapperImpl struct{}

// NewCodeBatchMapper creates a new CodeBatchMapper.
func NewCodeBatchMapper() CodeBatchMapper {
	return &CodeBatchMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *CodeBatchMapperImpl) ToModel(b *access.CodeBatch) *models.CodeBatchModel {
	if b == nil {
		return nil
	}
	return &models.CodeBatchModel{
		ID:          b.ID(),
		SID:         b.SID(),
		PolicyID:    b.PolicyID(),
		TenantID:    b.TenantID(),
		Name:        b.Name(),
		CodeCount:   b.CodeCount(),
		UsesPerCode: b.UsesPerCode(),
		ExpiresAt:   b.ExpiresAt(),
		Paused:      b.Paused(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *CodeBatchMapperImpl) ToDomain(model *models.CodeBatchModel) *access.CodeBatch {
	if model == nil {
		return nil
	}
	return access.ReconstructCodeBatch(
		model.ID,
		model.SID,
		model.PolicyID,
		model.TenantID,
		model.Name,
		model.CodeCount,
		model.UsesPerCode,
		model.ExpiresAt,
		model.Paused,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
