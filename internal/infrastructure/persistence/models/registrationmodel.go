package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// RegistrationModel is the GORM model for registrations table.
// A user joins a given pool at most once.
type RegistrationModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	SID          string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	PoolID       uint      `gorm:"column:pool_id;not null;uniqueIndex:uk_registrations_user_pool;index"`
	TenantID     uint      `gorm:"column:tenant_id;not null;index"`
	UserID       uint      `gorm:"column:user_id;not null;uniqueIndex:uk_registrations_user_pool"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(100);not null"`
	Email        string    `gorm:"column:email;type:varchar(255)"`
	Phone        string    `gorm:"column:phone;type:varchar(20)"`
	InviteCodeID *uint     `gorm:"column:invite_code_id;index"`
	InvitationID *uint     `gorm:"column:invitation_id;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (RegistrationModel) TableName() string {
	return constants.TableRegistrations
}
