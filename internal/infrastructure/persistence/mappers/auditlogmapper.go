package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/quiniela-inc/quiniela/internal/domain/audit"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

// AuditLogMapper handles conversion between audit Entry domain and model.
type AuditLogMapper interface {
	ToModel(e *audit.Entry) (*models.AuditLogModel, error)
	ToDomain(model *models.AuditLogModel) (*audit.Entry, error)
}

// AuditLogMapperImpl is the concrete implementation of AuditLogMapper.
type AuditLogMapperImpl struct{}

// NewAuditLogMapper creates a new AuditLogMapper.
func NewAuditLogMapper() AuditLogMapper {
	return &AuditLogMapperImpl{}
}

// ToModel converts domain entity to GORM model
func (m *AuditLogMapperImpl) ToModel(e *audit.Entry) (*models.AuditLogModel, error) {
	if e == nil {
		return nil, nil
	}

	var detailJSON datatypes.JSON
	if detail := e.Detail(); len(detail) > 0 {
		data, err := json.Marshal(detail)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit detail: %w", err)
		}
		detailJSON = data
	}

	return &models.AuditLogModel{
		ID:        e.ID(),
		TenantID:  e.TenantID(),
		ActorSID:  e.ActorSID(),
		Action:    e.Action(),
		TargetSID: e.TargetSID(),
		Detail:    detailJSON,
		IP:        e.IP(),
		CreatedAt: e.CreatedAt(),
	}, nil
}

// ToDomain converts GORM model to domain entity
func (m *AuditLogMapperImpl) ToDomain(model *models.AuditLogModel) (*audit.Entry, error) {
	if model == nil {
		return nil, nil
	}

	var detail map[string]any
	if len(model.Detail) > 0 {
		if err := json.Unmarshal(model.Detail, &detail); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit detail: %w", err)
		}
	}

	return audit.ReconstructEntry(
		model.ID,
		model.TenantID,
		model.ActorSID,
		model.Action,
		model.TargetSID,
		detail,
		model.IP,
		model.CreatedAt,
	), nil
}
