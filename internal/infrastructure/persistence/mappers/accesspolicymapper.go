package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// AccessPolicyMapper handles conversion between Policy domain and model.
type AccessPolicyMapper interface {
	ToModel(p *access.Policy) (*models.AccessPolicyModel, error)
	ToDomain(model *models.AccessPolicyModel) (*access.Policy, error)
}

// AccessPolicyMapperImpl is the concrete implementation of AccessPolicyMapper.
type AccessPolicyMapperImpl struct{}

// NewAccessPolicyMapper creates a new AccessPolicyMapper.
func NewAccessPolicyMapper() AccessPolicyMapper {
	return &AccessPolicyMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *AccessPolicyMapperImpl) ToModel(p *access.Policy) (*models.AccessPolicyModel, error) {
	if p == nil {
		return nil, nil
	}

	var allowListJSON datatypes.JSON
	if list := p.DomainAllowList(); len(list) > 0 {
		data, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal domain allow list: %w", err)
		}
		allowListJSON = data
	}

	return &models.AccessPolicyModel{
		ID:                       p.ID(),
		SID:                      p.SID(),
		PoolID:                   p.PoolID(),
		AccessType:               string(p.AccessType()),
		RequireCaptcha:           p.RequireCaptcha(),
		RequireEmailVerification: p.RequireEmailVerification(),
		DomainAllowList:          allowListJSON,
		MaxRegistrations:         p.MaxRegistrations(),
		RegistrationStartDate:    p.RegistrationStartDate(),
		RegistrationEndDate:      p.RegistrationEndDate(),
		UserCap:                  p.UserCap(),
		WindowStart:              p.WindowStart(),
		WindowEnd:                p.WindowEnd(),
		CreatedAt:                p.CreatedAt(),
		UpdatedAt:                p.UpdatedAt(),
	}, nil
}

// ToDomain converts GORM model to domain entity
func (m *AccessPolicyMapperImpl) ToDomain(model *models.AccessPolicyModel) (*access.Policy, error) {
	if model == nil {
		return nil, nil
	}

	var allowList []string
	if len(model.DomainAllowList) > 0 {
		if err := json.Unmarshal(model.DomainAllowList, &allowList); err != nil {
			return nil, fmt.Errorf("failed to unmarshal domain allow list: %w", err)
		}
	}

	return access.ReconstructPolicy(access.PolicyReconstructParams{
		ID:                       model.ID,
		SID:                      model.SID,
		PoolID:                   model.PoolID,
		AccessType:               access.AccessType(model.AccessType),
		RequireCaptcha:           model.RequireCaptcha,
		RequireEmailVerification: model.RequireEmailVerification,
		DomainAllowList:          allowList,
		MaxRegistrations:         model.MaxRegistrations,
		RegistrationStartDate:    model.RegistrationStartDate,
		RegistrationEndDate:      model.RegistrationEndDate,
		UserCap:                  model.UserCap,
		WindowStart:              model.WindowStart,
		WindowEnd:                model.WindowEnd,
		CreatedAt:                model.CreatedAt,
		UpdatedAt:                model.UpdatedAt,
	}), nil
}
