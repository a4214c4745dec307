package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// PredictionModel is the GORM model for predictions table.
// One pick per registration and match.
type PredictionModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	RegistrationID uint      `gorm:"column:registration_id;not null;uniqueIndex:uk_predictions_reg_match"`
	MatchID        uint      `gorm:"column:match_id;not null;uniqueIndex:uk_predictions_reg_match;index"`
	HomeGoals      int       `gorm:"column:home_goals;not null"`
	AwayGoals      int       `gorm:"column:away_goals;not null"`
	Points         *int      `gorm:"column:points"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PredictionModel) TableName() string {
	return constants.TablePredictions
}
