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
	apperrors "github.com/quiniela-inc/quiniela/internal/shared/errors"
)

// RegistrationRepository implements access.RegistrationRepository backed by GORM.
type RegistrationRepository struct {
	db     *gorm.DB
	mapper mappers.RegistrationMapper
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(gdb *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{
		db:     gdb,
		mapper: mappers.NewRegistrationMapper(),
	}
}

// Create persists a new registration. The unique index on (user_id, pool_id)
// turns a concurrent double join into ErrRegistrationExists.
func (r *RegistrationRepository) Create(ctx context.Context, registration *access.Registration) error {
	model := r.mapper.ToModel(registration)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return access.ErrRegistrationExists
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	registration.SetID(model.ID)
	return nil
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id uint) (*access.Registration, error) {
	var model models.RegistrationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySID retrieves a registration by SID
func (r *RegistrationRepository) GetBySID(ctx context.Context, sid string) (*access.Registration, error) {
	var model models.RegistrationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration by sid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetByUserAndPool retrieves a user's registration in a pool
func (r *RegistrationRepository) GetByUserAndPool(ctx context.Context, userID, poolID uint) (*access.Registration, error) {
	var model models.RegistrationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND pool_id = ?", userID, poolID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// CountByPool counts admissions in a pool
func (r *RegistrationRepository) CountByPool(ctx context.Context, poolID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RegistrationModel{}).
		Scopes(db.ByPool(poolID)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

// ListByPool retrieves a pool's registrations with pagination
func (r *RegistrationRepository) ListByPool(ctx context.Context, poolID uint, page, pageSize int) ([]*access.Registration, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.RegistrationModel{}).
		Scopes(db.ByPool(poolID))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	var rows []*models.RegistrationModel
	if err := tx.Order("id ASC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}

	result := make([]*access.Registration, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, total, nil
}
