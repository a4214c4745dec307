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

// InvitationRepository implements access.InvitationRepository backed by GORM.
type InvitationRepository struct {
	db     *gorm.DB
	mapper mappers.InvitationMapper
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(gdb *gorm.DB) *InvitationRepository {
	return &InvitationRepository{
		db:     gdb,
		mapper: mappers.NewInvitationMapper(),
	}
}

// Create persists a new invitation
func (r *InvitationRepository) Create(ctx context.Context, invitation *access.Invitation) error {
	model := r.mapper.ToModel(invitation)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	invitation.SetID(model.ID)
	return nil
}

// Update persists invitation changes
func (r *InvitationRepository) Update(ctx context.Context, invitation *access.Invitation) error {
	model := r.mapper.ToModel(invitation)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.InvitationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"expires_at":   model.ExpiresAt,
			"accepted_at":  model.AcceptedAt,
			"sent_count":   model.SentCount,
			"last_sent_at": model.LastSentAt,
			"opened_at":    model.OpenedAt,
			"clicked_at":   model.ClickedAt,
			"bounced_at":   model.BouncedAt,
			"updated_at":   model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}

// GetByID retrieves an invitation by ID
func (r *InvitationRepository) GetByID(ctx context.Context, id uint) (*access.Invitation, error) {
	var model models.InvitationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySID retrieves an invitation by SID
func (r *InvitationRepository) GetBySID(ctx context.Context, sid string) (*access.Invitation, error) {
	var model models.InvitationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation by sid: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetByToken retrieves an invitation by its opaque token
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*access.Invitation, error) {
	var model models.InvitationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation by token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetByPolicyAndEmail retrieves an invitation by policy and normalized email
func (r *InvitationRepository) GetByPolicyAndEmail(ctx context.Context, policyID uint, email string) (*access.Invitation, error) {
	var model models.InvitationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("policy_id = ? AND email = ?", policyID, email).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation by email: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// Accept transitions PENDING to ACCEPTED guarded on the current status, so
// a token can only be redeemed once.
func (r *InvitationRepository) Accept(ctx context.Context, invitationID uint, acceptedAt time.Time) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InvitationModel{}).
		Where("id = ? AND status = ?", invitationID, string(access.InvitationPending)).
		Updates(map[string]interface{}{
			"status":      string(access.InvitationAccepted),
			"accepted_at": acceptedAt,
			"updated_at":  acceptedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to accept invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return access.ErrInvitationNotPending
	}
	return nil
}

// ListByPolicyID retrieves a policy's invitations with pagination
func (r *InvitationRepository) ListByPolicyID(ctx context.Context, policyID uint, page, pageSize int) ([]*access.Invitation, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.InvitationModel{}).
		Where("policy_id = ?", policyID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invitations: %w", err)
	}

	var rows []*models.InvitationModel
	offset := (page - 1) * pageSize
	if err := tx.Order("id ASC").Offset(offset).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list invitations: %w", err)
	}

	result := make([]*access.Invitation, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.mapper.ToDomain(row))
	}
	return result, total, nil
}

// ExpirePending lazily flips PENDING invitations whose expiry passed
func (r *InvitationRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InvitationModel{}).
		Where("status = ? AND expires_at <= ?", string(access.InvitationPending), now).
		Updates(map[string]interface{}{
			"status":     string(access.InvitationExpired),
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire invitations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
