package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/audit"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// AuditLogRepository implements audit.Repository backed by GORM.
type AuditLogRepository struct {
	db     *gorm.DB
	mapper mappers.AuditLogMapper
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(gdb *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{
		db:     gdb,
		mapper: mappers.NewAuditLogMapper(),
	}
}

// Create persists an audit entry
func (r *AuditLogRepository) Create(ctx context.Context, entry *audit.Entry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// ListByTenant retrieves a tenant's audit trail, newest first
func (r *AuditLogRepository) ListByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*audit.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.AuditLogModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var rows []*models.AuditLogModel
	offset := (page - 1) * pageSize
	if err := tx.Order("id DESC").Offset(offset).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	result := make([]*audit.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := r.mapper.ToDomain(row)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, entry)
	}
	return result, total, nil
}
