package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// PoolModel is the GORM model for pools table
type PoolModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	SID         string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	TenantID    uint      `gorm:"column:tenant_id;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PoolModel) TableName() string {
	return constants.TablePools
}
