package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// PoolMapper handles conversion between Pool domain and model.
type PoolMapper interface {
	ToModel(p *pool.Pool) *models.PoolModel
	ToDomain(model *models.PoolModel) *pool.Pool
}

// PoolMapperImpl is the concrete implementation of PoolMapper.
type PoolMapperImpl struct{}

// NewPoolMapper creates a new PoolMapper.
func NewPoolMapper() PoolMapper {
	return &PoolMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *PoolMapperImpl) ToModel(p *pool.Pool) *models.PoolModel {
	if p == nil {
		return nil
	}
	return &models.PoolModel{
		ID:          p.ID(),
		SID:         p.SID(),
		TenantID:    p.TenantID(),
		Name:        p.Name(),
		Description: p.Description(),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *PoolMapperImpl) ToDomain(model *models.PoolModel) *pool.Pool {
	if model == nil {
		return nil
	}
	return pool.ReconstructPool(
		model.ID,
		model.SID,
		model.TenantID,
		model.Name,
		model.Description,
		pool.PoolStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
