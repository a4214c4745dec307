package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quiniela-inc/quiniela/internal/domain/setting"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// SettingRepository implements setting.Repository backed by GORM.
type SettingRepository struct {
	db     *gorm.DB
	mapper mappers.SettingMapper
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(gdb *gorm.DB) *SettingRepository {
	return &SettingRepository{
		db:     gdb,
		mapper: mappers.NewSettingMapper(),
	}
}

// Get retrieves the override at exactly one scope.
func (r *SettingRepository) Get(ctx context.Context, scope setting.Scope, ref setting.ScopeRef, key string) (*setting.Setting, error) {
	var model models.SettingModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("scope = ? AND tenant_sid = ? AND pool_sid = ? AND setting_key = ?",
			string(scope), refTenant(scope, ref), refPool(scope, ref), key).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// ListForScope retrieves every override visible from the given scope reference.
func (r *SettingRepository) ListForScope(ctx context.Context, ref setting.ScopeRef) ([]*setting.Setting, error) {
	q := db.GetTxFromContext(ctx, r.db).Where("scope = ?", string(setting.ScopeGlobal))

	if ref.TenantSID != "" {
		q = q.Or("scope = ? AND tenant_sid = ?", string(setting.ScopeTenant), ref.TenantSID)
	}
	if ref.TenantSID != "" && ref.PoolSID != "" {
		q = q.Or("scope = ? AND tenant_sid = ? AND pool_sid = ?",
			string(setting.ScopePool), ref.TenantSID, ref.PoolSID)
	}

	var rows []*models.SettingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	result := make([]*setting.Setting, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, nil
}

// Upsert creates or updates an override on its natural key.
func (r *SettingRepository) Upsert(ctx context.Context, s *setting.Setting) error {
	model := r.mapper.ToModel(s)

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "scope"}, {Name: "tenant_sid"}, {Name: "pool_sid"}, {Name: "setting_key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"setting_value", "value_type", "updated_by", "version", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	s.SetID(model.ID)
	return nil
}

// Delete removes the override at the given scope. Deleting a missing
// override is a no-op.
func (r *SettingRepository) Delete(ctx context.Context, scope setting.Scope, ref setting.ScopeRef, key string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Where("scope = ? AND tenant_sid = ? AND pool_sid = ? AND setting_key = ?",
			string(scope), refTenant(scope, ref), refPool(scope, ref), key).
		Delete(&models.SettingModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

// refTenant narrows the tenant column to the scope: GLOBAL rows always store
// an empty tenant_sid regardless of the caller's context.
func refTenant(scope setting.Scope, ref setting.ScopeRef) string {
	if scope == setting.ScopeGlobal {
		return ""
	}
	return ref.TenantSID
}

func refPool(scope setting.Scope, ref setting.ScopeRef) string {
	if scope != setting.ScopePool {
		return ""
	}
	return ref.PoolSID
}
