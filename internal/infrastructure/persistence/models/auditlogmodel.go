package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// AuditLogModel is the GORM model for audit_log table
type AuditLogModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	TenantID  *uint          `gorm:"column:tenant_id;index"`
	ActorSID  string         `gorm:"column:actor_sid;type:varchar(50);index"`
	Action    string         `gorm:"column:action;type:varchar(50);not null;index"`
	TargetSID string         `gorm:"column:target_sid;type:varchar(50)"`
	Detail    datatypes.JSON `gorm:"column:detail"`
	IP        string         `gorm:"column:ip;type:varchar(45)"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return constants.TableAuditLog
}
