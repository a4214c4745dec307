package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/mappers"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
	"github.com/quiniela-inc/quiniela/internal/shared/db"
)

// InviteCodeRepository implements access.InviteCodeRepository backed by GORM.
type InviteCodeRepository struct {
	db     *gorm.DB
	mapper mappers.InviteCodeMapper
}

// NewInviteCodeRepository creates a new InviteCodeRepository
func NewInviteCodeRepository(gdb *gorm.DB) *InviteCodeRepository {
	return &InviteCodeRepository{
		db:     gdb,
		mapper: mappers.NewInviteCodeMapper(),
	}
}

// CreateBatch persists a batch of codes in a single insert
func (r *InviteCodeRepository) CreateBatch(ctx context.Context, codes []*access.InviteCode) error {
	if len(codes) == 0 {
		return nil
	}

	rows := r.mapper.ToModels(codes)
	if err := db.GetTxFromContext(ctx, r.db).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("failed to create invite codes: %w", err)
	}

	for i, row := range rows {
		codes[i].SetID(row.ID)
	}
	return nil
}

// GetByID retrieves a code by ID
func (r *InviteCodeRepository) GetByID(ctx context.Context, id uint) (*access.InviteCode, error) {
	var model models.InviteCodeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetByCode looks a code up within a tenant
func (r *InviteCodeRepository) GetByCode(ctx context.Context, tenantID uint, code string) (*access.InviteCode, error) {
	var model models.InviteCodeModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// Consume claims one use of the code in a single conditional update. The
// guard rejects paused, expired and fully used codes, so two concurrent
// claims of the last use cannot both match a row. The status assignment must
// precede the counter increment: MySQL applies SET clauses left to right
// against updated values, so the CASE has to read the pre-increment
// used_count.
func (r *InviteCodeRepository) Consume(ctx context.Context, codeID uint, now time.Time) error {
	table := models.InviteCodeModel{}.TableName()
	result := db.GetTxFromContext(ctx, r.db).Exec(
		`UPDATE `+table+`
		 SET status = CASE WHEN used_count + 1 >= uses_per_code THEN ? ELSE ? END,
		     used_count = used_count + 1,
		     updated_at = ?
		 WHERE id = ?
		   AND used_count < uses_per_code
		   AND status NOT IN (?, ?)
		   AND (expires_at IS NULL OR expires_at > ?)`,
		string(access.CodeUsed),
		string(access.CodePartiallyUsed),
		now,
		codeID,
		string(access.CodeExpired),
		string(access.CodePaused),
		now,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to consume invite code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return access.ErrCodeExhausted
	}
	return nil
}

// UpdateStatus sets a code's status directly
func (r *InviteCodeRepository) UpdateStatus(ctx context.Context, codeID uint, status access.CodeStatus) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.InviteCodeModel{}).
		Where("id = ?", codeID).
		Update("status", string(status)).Error
	if err != nil {
		return fmt.Errorf("failed to update invite code status: %w", err)
	}
	return nil
}

// ListByBatchID retrieves every code in a batch
func (r *InviteCodeRepository) ListByBatchID(ctx context.Context, batchID uint) ([]*access.InviteCode, error) {
	var rows []*models.InviteCodeModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("batch_id = ?", batchID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invite codes: %w", err)
	}

	result := make([]*access.InviteCode, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, nil
}

// PauseByBatchID flips every non-terminal code in a batch to PAUSED
func (r *InviteCodeRepository) PauseByBatchID(ctx context.Context, batchID uint) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.InviteCodeModel{}).
		Where("batch_id = ? AND status NOT IN (?, ?)",
			batchID, string(access.CodeUsed), string(access.CodeExpired)).
		Update("status", string(access.CodePaused)).Error
	if err != nil {
		return fmt.Errorf("failed to pause invite codes: %w", err)
	}
	return nil
}

// ResumeByBatchID re-derives status from counters for paused codes. Codes
// whose expiry passed while paused land on EXPIRED, not back on UNUSED.
func (r *InviteCodeRepository) ResumeByBatchID(ctx context.Context, batchID uint, now time.Time) error {
	table := models.InviteCodeModel{}.TableName()
	result := db.GetTxFromContext(ctx, r.db).Exec(
		`UPDATE `+table+`
		 SET status = CASE
		         WHEN expires_at IS NOT NULL AND expires_at <= ? THEN ?
		         WHEN used_count >= uses_per_code THEN ?
		         WHEN used_count > 0 THEN ?
		         ELSE ?
		     END,
		     updated_at = ?
		 WHERE batch_id = ? AND status = ?`,
		now,
		string(access.CodeExpired),
		string(access.CodeUsed),
		string(access.CodePartiallyUsed),
		string(access.CodeUnused),
		now,
		batchID,
		string(access.CodePaused),
	)
	if result.Error != nil {
		return fmt.Errorf("failed to resume invite codes: %w", result.Error)
	}
	return nil
}
