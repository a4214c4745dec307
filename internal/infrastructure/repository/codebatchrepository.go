package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// CodeBatchRepository implements access.CodeBatchRepository backed by GORM.
type CodeBatchRepository struct {
	db     *gorm.DB
	mapper mappers.CodeBatchMapper
}

// NewCodeBatchRepository creates a new CodeBatchRepository
func NewCodeBatchRepository(gdb *gorm.DB) *CodeBatchRepository {
	return &CodeBatchRepository{
		db:     gdb,
		mapper: mappers.NewCodeBatchMapper(),
	}
}

// Create persists a new code batch
func (r *CodeBatchRepository) Create(ctx context.Context, batch *access.CodeBatch) error {
	model := r.mapper.ToModel(batch)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create code batch: %w", err)
	}
	batch.SetID(model.ID)
	return nil
}

// Update persists batch changes
func (r *CodeBatchRepository) Update(ctx context.Context, batch *access.CodeBatch) error {
	model := r.mapper.ToModel(batch)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CodeBatchModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"paused":     model.Paused,
			"expires_at": model.ExpiresAt,
			"updated_at": model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update code batch: %w", err)
	}
	return nil
}

// GetByID retrieves a batch by ID
func (r *CodeBatchRepository) GetByID(ctx context.Context, id uint) (*access.CodeBatch, error) {
	var model models.CodeBatchModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get code batch: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySID retrieves a batch by SID
func (r *CodeBatchRepository) GetBySID(ctx context.Context, sid string) (*access.CodeBatch, error) {
	var model models.CodeBatchModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get code batch by sid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByPolicyID retrieves every batch attached to a policy
func (r *CodeBatchRepository) ListByPolicyID(ctx context.Context, policyID uint) ([]*access.CodeBatch, error) {
	var rows []*models.CodeBatchModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("policy_id = ?", policyID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list code batches: %w", err)
	}

	result := make([]*access.CodeBatch, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, nil
}
