package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// RegistrationMapper handles conversion between Registration domain and model.
type RegistrationMapper interface {
	ToModel(r *access.Registration) *models.RegistrationModel
	ToDomain(model *models.RegistrationModel) *access.Registration
}

// RegistrationMapperImpl is the concrete implementation of RegistrationMapper.
type RegistrationMapperImpl struct{}

// NewRegistrationMapper creates a new RegistrationMapper.
func NewRegistrationMapper() RegistrationMapper {
	return &RegistrationMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *RegistrationMapperImpl) ToModel(r *access.Registration) *models.RegistrationModel {
	if r == nil {
		return nil
	}
	return &models.RegistrationModel{
		ID:           r.ID(),
		SID:          r.SID(),
		PoolID:       r.PoolID(),
		TenantID:     r.TenantID(),
		UserID:       r.UserID(),
		DisplayName:  r.DisplayName(),
		Email:        r.Email(),
		Phone:        r.Phone(),
		InviteCodeID: r.InviteCodeID(),
		InvitationID: r.InvitationID(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *RegistrationMapperImpl) ToDomain(model *models.RegistrationModel) *access.Registration {
	if model == nil {
		return nil
	}
	return access.ReconstructRegistration(
		model.ID,
		model.SID,
		model.PoolID,
		model.TenantID,
		model.UserID,
		model.DisplayName,
		model.Email,
		model.Phone,
		model.InviteCodeID,
		model.InvitationID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
