package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// InviteCodeMapper handles conversion between InviteCode domain and model.
type InviteCodeMapper interface {
	ToModel(c *access.InviteCode) *models.InviteCodeModel
	ToDomain(model *models.InviteCodeModel) *access.InviteCode
	ToModels(codes []*access.InviteCode) []*models.InviteCodeModel
}

// InviteCodeMapperImpl is the concrete implementation of InviteCodeMapper.
type InviteCodeMapperImpl struct{}

// NewInviteCodeMapper creates a new InviteCodeMapper.
func NewInviteCodeMapper() InviteCodeMapper {
	return &InviteCodeMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *InviteCodeMapperImpl) ToModel(c *access.InviteCode) *models.InviteCodeModel {
	if c == nil {
		return nil
	}
	return &models.InviteCodeModel{
		ID:          c.ID(),
		BatchID:     c.BatchID(),
		PolicyID:    c.PolicyID(),
		TenantID:    c.TenantID(),
		Code:        c.Code(),
		Status:      string(c.Status()),
		UsesPerCode: c.UsesPerCode(),
		UsedCount:   c.UsedCount(),
		ExpiresAt:   c.ExpiresAt(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *InviteCodeMapperImpl) ToDomain(model *models.InviteCodeModel) *access.InviteCode {
	if model == nil {
		return nil
	}
	return access.ReconstructInviteCode(
		model.ID,
		model.BatchID,
		model.PolicyID,
		model.TenantID,
		model.Code,
		access.CodeStatus(model.Status),
		model.UsesPerCode,
		model.UsedCount,
		model.ExpiresAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ToModels converts a slice of domain entities to GORM models
func (m *InviteCodeMapperImpl) ToModels(codes []*access.InviteCode) []*models.InviteCodeModel {
	result := make([]*models.InviteCodeModel, 0, len(codes))
	for _, c := range codes {
		result = append(result, m.ToModel(c))
	}
	return result
}
