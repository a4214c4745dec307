package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// InvitationModel is the GORM model for invitations table
type InvitationModel struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	SID        string     `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	PolicyID   uint       `gorm:"column:policy_id;not null;uniqueIndex:uk_invitations_policy_email"`
	TenantID   uint       `gorm:"column:tenant_id;not null;index"`
	Email      string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uk_invitations_policy_email"`
	Token      string     `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Status     string     `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	AcceptedAt *time.Time `gorm:"column:accepted_at"`
	SentCount  int        `gorm:"column:sent_count;not null;default:0"`
	LastSentAt *time.Time `gorm:"column:last_sent_at"`
	OpenedAt   *time.Time `gorm:"column:opened_at"`
	ClickedAt  *time.Time `gorm:"column:clicked_at"`
	BouncedAt  *time.Time `gorm:"column:bounced_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (InvitationModel) TableName() string {
	return constants.TableInvitations
}
