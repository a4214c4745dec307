package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// TenantModel is the GORM model for tenants table
type TenantModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SID       string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Slug      string    `gorm:"column:slug;type:varchar(63);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return constants.TableTenants
}
