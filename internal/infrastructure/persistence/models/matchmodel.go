package models

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/constants"
)

// MatchModel is the GORM model for matches table
type MatchModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SID       string    `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	PoolID    uint      `gorm:"column:pool_id;not null;index"`
	HomeTeam  string    `gorm:"column:home_team;type:varchar(100);not null"`
	AwayTeam  string    `gorm:"column:away_team;type:varchar(100);not null"`
	KickoffAt time.Time `gorm:"column:kickoff_at;not null;index"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:SCHEDULED"`
	HomeScore *int      `gorm:"column:home_score"`
	AwayScore *int      `gorm:"column:away_score"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (MatchModel) TableName() string {
	return constants.TableMatches
}
