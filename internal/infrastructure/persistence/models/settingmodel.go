package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// SettingModel is the GORM model for settings table.
// The composite unique index guarantees a single override per scope ref and key.
type SettingModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SID       string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Scope     string    `gorm:"column:scope;type:varchar(10);not null;uniqueIndex:uk_settings_ref_key"`
	TenantSID string    `gorm:"column:tenant_sid;type:varchar(50);not null;default:'';uniqueIndex:uk_settings_ref_key"`
	PoolSID   string    `gorm:"column:pool_sid;type:varchar(50);not null;default:'';uniqueIndex:uk_settings_ref_key"`
	Key       string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex:uk_settings_ref_key"`
	Value     string    `gorm:"column:setting_value;type:text;not null"`
	ValueType string    `gorm:"column:value_type;type:varchar(20);not null"`
	UpdatedBy uint      `gorm:"column:updated_by"`
	Version   int       `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return constants.TableSettings
}
