package prediction

import (
	"context"
	"errors"
)

var (
	// ErrMatchNotFound is returned when no match row exists
	ErrMatchNotFound = errors.New("match not found")

	// ErrPredictionNotFound is returned when no prediction row exists
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrPredictionsLocked is returned when a save arrives at or after the
	// match lock time
	ErrPredictionsLocked = errors.New("predictions are locked for this match")
)

// MatchRepository persists fixtures.
type MatchRepository interface {
	Create(ctx context.Context, match *Match) error
	Update(ctx context.Context, match *Match) error
	GetByID(ctx context.Context, id uint) (*Match, error)
	GetBySID(ctx context.Context, sid string) (*Match, error)
	ListByPool(ctx context.Context, poolID uint) ([]*Match, error)
}

// Repository persists predictions. Upsert replaces an existing pick for the
// same (registrationID, matchID) pair.
type Repository interface {
	Upsert(ctx context.Context, prediction *Prediction) error
	GetByRegistrationAndMatch(ctx context.Context, registrationID, matchID uint) (*Prediction, error)
	ListByRegistration(ctx context.Context, registrationID uint) ([]*Prediction, error)
	ListByMatch(ctx context.Context, matchID uint) ([]*Prediction, error)
}
