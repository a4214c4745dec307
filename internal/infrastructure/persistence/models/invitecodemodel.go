package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// InviteCodeModel is the GORM model for invite_codes table.
// Codes are unique within a tenant, not globally.
type InviteCodeModel struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	BatchID     uint       `gorm:"column:batch_id;not null;index"`
	PolicyID    uint       `gorm:"column:policy_id;not null;index"`
	TenantID    uint       `gorm:"column:tenant_id;not null;uniqueIndex:uk_invite_codes_tenant_code"`
	Code        string     `gorm:"column:code;type:varchar(50);not null;uniqueIndex:uk_invite_codes_tenant_code"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:UNUSED;index"`
	UsesPerCode int        `gorm:"column:uses_per_code;not null;default:1"`
	UsedCount   int        `gorm:"column:used_count;not null;default:0"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (InviteCodeModel) TableName() string {
	return constants.TableInviteCodes
}
