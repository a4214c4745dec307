package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/pool"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// PoolRepository implements pool.Repository backed by GORM.
type PoolRepository struct {
	db     *gorm.DB
	mapper mappers.PoolMapper
}

// NewPoolRepository creates a new PoolRepository
func NewPoolRepository(gdb *gorm.DB) *PoolRepository {
	return &PoolRepository{
		db:     gdb,
		mapper: mappers.NewPoolMapper(),
	}
}

// Create persists a new pool
func (r *PoolRepository) Create(ctx context.Context, p *pool.Pool) error {
	model := r.mapper.ToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	p.SetID(model.ID)
	return nil
}

// Update persists pool changes
func (r *PoolRepository) Update(ctx context.Context, p *pool.Pool) error {
	model := r.mapper.ToModel(p)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PoolModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"status":      model.Status,
			"updated_at":  model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update pool: %w", err)
	}
	return nil
}

// GetByID retrieves a pool by ID
func (r *PoolRepository) GetByID(ctx context.Context, id uint) (*pool.Pool, error) {
	var model models.PoolModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pool.ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySID retrieves a pool by SID
func (r *PoolRepository) GetBySID(ctx context.Context, sid string) (*pool.Pool, error) {
	var model models.PoolModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pool.ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to get pool by sid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListByTenant retrieves a tenant's pools with pagination
func (r *PoolRepository) ListByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*pool.Pool, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.PoolModel{}).
		Scopes(db.ByTenant(tenantID))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pools: %w", err)
	}

	var rows []*models.PoolModel
	if err := tx.Order("id ASC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pools: %w", err)
	}

	result := make([]*pool.Pool, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, total, nil
}
