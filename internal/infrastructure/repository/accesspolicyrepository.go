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

// AccessPolicyRepository implements access.PolicyRepository backed by GORM.
type AccessPolicyRepository struct {
	db     *gorm.DB
	mapper mappers.AccessPolicyMapper
}

// NewAccessPolicyRepository creates a new AccessPolicyRepository
func NewAccessPolicyRepository(gdb *gorm.DB) *AccessPolicyRepository {
	return &AccessPolicyRepository{
		db:     gdb,
		mapper: mappers.NewAccessPolicyMapper(),
	}
}

// Create persists a new policy
func (r *AccessPolicyRepository) Create(ctx context.Context, policy *access.Policy) error {
	model, err := r.mapper.ToModel(policy)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create access policy: %w", err)
	}
	policy.SetID(model.ID)
	return nil
}

// Update persists policy changes. The access type column is deliberately
// not part of the update set.
func (r *AccessPolicyRepository) Update(ctx context.Context, policy *access.Policy) error {
	model, err := r.mapper.ToModel(policy)
	if err != nil {
		return err
	}
	err = db.GetTxFromContext(ctx, r.db).
		Model(&models.AccessPolicyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"require_captcha":            model.RequireCaptcha,
			"require_email_verification": model.RequireEmailVerification,
			"domain_allow_list":          model.DomainAllowList,
			"max_registrations":          model.MaxRegistrations,
			"registration_start_date":    model.RegistrationStartDate,
			"registration_end_date":      model.RegistrationEndDate,
			"user_cap":                   model.UserCap,
			"window_start":               model.WindowStart,
			"window_end":                 model.WindowEnd,
			"updated_at":                 model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update access policy: %w", err)
	}
	return nil
}

// GetByID retrieves a policy by ID
func (r *AccessPolicyRepository) GetByID(ctx context.Context, id uint) (*access.Policy, error) {
	var model models.AccessPolicyModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get access policy: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// GetBySID retrieves a policy by SID
func (r *AccessPolicyRepository) GetBySID(ctx context.Context, sid string) (*access.Policy, error) {
	var model models.AccessPolicyModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get access policy by sid: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// GetByPoolID retrieves the policy attached to a pool
func (r *AccessPolicyRepository) GetByPoolID(ctx context.Context, poolID uint) (*access.Policy, error) {
	var model models.AccessPolicyModel
	if err := db.GetTxFromContext(ctx, r.db).Where("pool_id = ?", poolID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to get access policy by pool: %w", err)
	}
	return r.mapper.ToDomain(&model)
}
