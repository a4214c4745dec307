package mappers

import (
	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// InvitationMapper handles conversion between Invitation domain and model.
type InvitationMapper interface {
	ToModel(i *access.Invitation) *models.InvitationModel
	ToDomain(model *models.InvitationModel) *access.Invitation
}

// InvitationMapperImpl is the concrete implementation of InvitationMapper.
type InvitationMapperImpl struct{}

// NewInvitationMapper creates a new InvitationMapper.
func NewInvitationMapper() InvitationMapper {
	return &InvitationMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *InvitationMapperImpl) ToModel(i *access.Invitation) *models.InvitationModel {
	if i == nil {
		return nil
	}
	return &models.InvitationModel{
		ID:         i.ID(),
		SID:        i.SID(),
		PolicyID:   i.PolicyID(),
		TenantID:   i.TenantID(),
		Email:      i.Email(),
		Token:      i.Token(),
		Status:     string(i.Status()),
		ExpiresAt:  i.ExpiresAt(),
		AcceptedAt: i.AcceptedAt(),
		SentCount:  i.SentCount(),
		LastSentAt: i.LastSentAt(),
		OpenedAt:   i.OpenedAt(),
		ClickedAt:  i.ClickedAt(),
		BouncedAt:  i.BouncedAt(),
		CreatedAt:  i.CreatedAt(),
		UpdatedAt:  i.UpdatedAt(),
	}
}

// ToDomain converts GORM model to domain entity
func (m *InvitationMapperImpl) ToDomain(model *models.InvitationModel) *access.Invitation {
	if model == nil {
		return nil
	}
	return access.ReconstructInvitation(access.InvitationReconstructParams{
		ID:         model.ID,
		SID:        model.SID,
		PolicyID:   model.PolicyID,
		TenantID:   model.TenantID,
		Email:      model.Email,
		Token:      model.Token,
		Status:     access.InvitationStatus(model.Status),
		ExpiresAt:  model.ExpiresAt,
		AcceptedAt: model.AcceptedAt,
		SentCount:  model.SentCount,
		LastSentAt: model.LastSentAt,
		OpenedAt:   model.OpenedAt,
		ClickedAt:  model.ClickedAt,
		BouncedAt:  model.BouncedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	})
}
