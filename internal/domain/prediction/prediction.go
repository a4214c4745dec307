package prediction

import (
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
)

// Prediction is one registrant's score forecast for one match. A
// registration holds at most one prediction per match; saving again before
// the lock replaces the pick.
type Prediction struct {
	id             uint
	registrationID uint
	matchID        uint
	homeGoals      int
	awayGoals      int
	points         *int // awarded after the match finishes
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPrediction creates a score forecast.
func NewPrediction(registrationID, matchID uint, homeGoals, awayGoals int) (*Prediction, error) {
	if homeGoals < 0 || awayGoals < 0 {
		return nil, fmt.Errorf("predicted goals cannot be negative")
	}

	now := biztime.NowUTC()
	return &Prediction{
		registrationID: registrationID,
		matchID:        matchID,
		homeGoals:      homeGoals,
		awayGoals:      awayGoals,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructPrediction rebuilds a Prediction from the persistence layer.
func ReconstructPrediction(
	id uint,
	registrationID, matchID uint,
	homeGoals, awayGoals int,
	points *int,
	createdAt, updatedAt time.Time,
) *Prediction {
	return &Prediction{
		id:             id,
		registrationID: registrationID,
		matchID:        matchID,
		homeGoals:      homeGoals,
		awayGoals:      awayGoals,
		points:         points,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Getters
func (p *Prediction) ID() uint             { return p.id }
func (p *Prediction) RegistrationID() uint { return p.registrationID }
func (p *Prediction) MatchID() uint        { return p.matchID }
func (p *Prediction) HomeGoals() int       { return p.homeGoals }
func (p *Prediction) AwayGoals() int       { return p.awayGoals }
func (p *Prediction) Points() *int         { return p.points }
func (p *Prediction) CreatedAt() time.Time { return p.createdAt }
func (p *Prediction) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the prediction ID (only for persistence layer use)
func (p *Prediction) SetID(id uint) { p.id = id }

// UpdatePick replaces the forecast before the lock.
func (p *Prediction) UpdatePick(homeGoals, awayGoals int) error {
	if homeGoals < 0 || awayGoals < 0 {
		return fmt.Errorf("predicted goals cannot be negative")
	}
	p.homeGoals = homeGoals
	p.awayGoals = awayGoals
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Score awards points against the final result: exact score earns 3,
// correct outcome earns 1, anything else 0.
func (p *Prediction) Score(homeScore, awayScore int) int {
	points := 0
	switch {
	case p.homeGoals == homeScore && p.awayGoals == awayScore:
		points = 3
	case sign(p.homeGoals-p.awayGoals) == sign(homeScore-awayScore):
		points = 1
	}
	p.points = &points
	p.updatedAt = biztime.NowUTC()
	return points
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
