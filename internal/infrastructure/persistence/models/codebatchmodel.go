package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// CodeBatchModel is the GORM model for code_batches table
type CodeBatchModel struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	SID         string     `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	PolicyID    uint       `gorm:"column:policy_id;not null;index"`
	TenantID    uint       `gorm:"column:tenant_id;not null;index"`
	Name        string     `gorm:"column:name;type:varchar(255);not null"`
	CodeCount   int        `gorm:"column:code_count;not null"`
	UsesPerCode int        `gorm:"column:uses_per_code;not null;default:1"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	Paused      bool       `gorm:"column:paused;default:false"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CodeBatchModel) TableName() string {
	return constants.TableCodeBatches
}
