package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/tenant"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// TenantRepository implements tenant.Repository backed by GORM.
type TenantRepository struct {
	db     *gorm.DB
	mapper mappers.TenantMapper
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(gdb *gorm.DB) *TenantRepository {
	return &TenantRepository{
		db:     gdb,
		mapper: mappers.NewTenantMapper(),
	}
}

// Create persists a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

// Update persists tenant changes
func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	model := r.mapper.ToModel(t)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TenantModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	return nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySID retrieves a tenant by SID
func (r *TenantRepository) GetBySID(ctx context.Context, sid string) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by sid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySlug retrieves a tenant by its URL slug
func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by slug: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// List retrieves tenants with pagination
func (r *TenantRepository) List(ctx context.Context, page, pageSize int) ([]*tenant.Tenant, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	var rows []*models.TenantModel
	offset := (page - 1) * pageSize
	if err := tx.Order("id ASC").Offset(offset).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	result := make([]*tenant.Tenant, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, total, nil
}
