package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// AccessPolicyModel is the GORM model for access_policies table
type AccessPolicyModel struct {
	ID                       uint           `gorm:"primaryKey;autoIncrement"`
	SID                      string         `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	PoolID                   uint           `gorm:"column:pool_id;not null;uniqueIndex"`
	AccessType               string         `gorm:"column:access_type;type:varchar(20);not null"`
	RequireCaptcha           bool           `gorm:"column:require_captcha;default:false"`
	RequireEmailVerification bool           `gorm:"column:require_email_verification;default:false"`
	DomainAllowList          datatypes.JSON `gorm:"column:domain_allow_list"`
	MaxRegistrations         *int           `gorm:"column:max_registrations"`
	RegistrationStartDate    *time.Time     `gorm:"column:registration_start_date"`
	RegistrationEndDate      *time.Time     `gorm:"column:registration_end_date"`
	UserCap                  *int           `gorm:"column:user_cap"`
	WindowStart              *time.Time     `gorm:"column:window_start"`
	WindowEnd                *time.Time     `gorm:"column:window_end"`
	CreatedAt                time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (AccessPolicyModel) TableName() string {
	return constants.TableAccessPolicies
}
