package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// SettingMapper handles conversion between Setting domain and model.
type SettingMapper interface {
	ToModel(s *setting.Setting) *models.SettingModel
	ToDomain(model *models.SettingModel) *setting.Setting
}

// SettingMapperImpl is the concrete implementation of SettingMapper.
type SettingMapperImpl struct{}

// NewSettingMapper creates a new SettingMapper.
func NewSettingMapper() SettingMapper {
	return &SettingMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *SettingMapperImpl) ToModel(s *setting.Setting) *models.SettingModel {
	if s == nil {
		return nil
	}
	return &models.SettingModel{
		ID:        s.ID(),
		SID:       s.SID(),
		Scope:     string(s.Scope()),
		TenantSID: s.TenantSID(),
		PoolSID:   s.PoolSID(),
		Key:       s.Key(),
		Value:     s.Value(),
		ValueType: string(s.ValueType()),
		UpdatedBy: s.UpdatedBy(),
		Version:   s.Version(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *SettingMapperImpl) ToDomain(model *models.SettingModel) *setting.Setting {
	if model == nil {
		return nil
	}
	return setting.ReconstructSetting(
		model.ID,
		model.SID,
		setting.Scope(model.Scope),
		model.TenantSID,
		model.PoolSID,
		model.Key,
		model.Value,
		setting.ValueType(model.ValueType),
		model.UpdatedBy,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
