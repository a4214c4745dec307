package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/tenant"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// TenantMapper handles conversion between Tenant domain and model.
type TenantMapper interface {
	ToModel(t *tenant.Tenant) *models.TenantModel
	ToDomain(model *models.TenantModel) *tenant.Tenant
}

// TenantMapperImpl is the concrete implementation of TenantMapper.
type TenantMapperImpl struct{}

// NewTenantMapper creates a new TenantMapper.
func NewTenantMapper() TenantMapper {
	return &TenantMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *TenantMapperImpl) ToModel(t *tenant.Tenant) *models.TenantModel {
	if t == nil {
		return nil
	}
	return &models.TenantModel{
		ID:        t.ID(),
		SID:       t.SID(),
		Slug:      t.Slug(),
		Name:      t.Name(),
		Status:    string(t.Status()),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *TenantMapperImpl) ToDomain(model *models.TenantModel) *tenant.Tenant {
	if model == nil {
		return nil
	}
	return tenant.ReconstructTenant(
		model.ID,
		model.SID,
		model.Slug,
		model.Name,
		tenant.TenantStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
