package prediction

import (
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// MatchStatus is the lifecycle state of a fixture.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchFinished  MatchStatus = "FINISHED"
)

// Match is one fixture inside a pool. Predictions against it lock at
// kickoff minus the pool's configured lock offset.
type Match struct {
	id        uint
	sid       string // mt_xxx
	poolID    uint
	homeTeam  string
	awayTeam  string
	kickoffAt time.Time
	status    MatchStatus
	homeScore *int
	awayScore *int
	createdAt time.Time
	updatedAt time.Time
}

// NewMatch creates a scheduled fixture.
func NewMatch(poolID uint, homeTeam, awayTeam string, kickoffAt time.Time) (*Match, error) {
	if homeTeam == "" || awayTeam == "" {
		return nil, fmt.Errorf("both team names are required")
	}
	if homeTeam == awayTeam {
		return nil, fmt.Errorf("a team cannot play itself")
	}

	sid, err := id.NewMatchID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Match{
		sid:       sid,
		poolID:    poolID,
		homeTeam:  homeTeam,
		awayTeam:  awayTeam,
		kickoffAt: kickoffAt,
		status:    MatchScheduled,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructMatch rebuilds a Match from the persistence layer.
func ReconstructMatch(
	id uint,
	sid string,
	poolID uint,
	homeTeam, awayTeam string,
	kickoffAt time.Time,
	status MatchStatus,
	homeScore, awayScore *int,
	createdAt, updatedAt time.Time,
) *Match {
	return &Match{
		id:        id,
		sid:       sid,
		poolID:    poolID,
		homeTeam:  homeTeam,
		awayTeam:  awayTeam,
		kickoffAt: kickoffAt,
		status:    status,
		homeScore: homeScore,
		awayScore: awayScore,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters
func (m *Match) ID() uint             { return m.id }
func (m *Match) SID() string          { return m.sid }
func (m *Match) PoolID() uint         { return m.poolID }
func (m *Match) HomeTeam() string     { return m.homeTeam }
func (m *Match) AwayTeam() string     { return m.awayTeam }
func (m *Match) KickoffAt() time.Time { return m.kickoffAt }
func (m *Match) Status() MatchStatus  { return m.status }
func (m *Match) HomeScore() *int      { return m.homeScore }
func (m *Match) AwayScore() *int      { return m.awayScore }
func (m *Match) CreatedAt() time.Time { return m.createdAt }
func (m *Match) UpdatedAt() time.Time { return m.updatedAt }

// SetID sets the match ID (only for persistence layer use)
func (m *Match) SetID(id uint) { m.id = id }

// LockTime returns when predictions stop being accepted for this match.
func (m *Match) LockTime(lockOffset time.Duration) time.Time {
	return m.kickoffAt.Add(-lockOffset)
}

// IsLocked reports whether predictions are closed at now, given the pool's
// lock offset before kickoff.
func (m *Match) IsLocked(now time.Time, lockOffset time.Duration) bool {
	if m.status == MatchFinished {
		return true
	}
	return !now.Before(m.LockTime(lockOffset))
}

// RecordResult finishes the match with the final score.
func (m *Match) RecordResult(homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	m.homeScore = &homeScore
	m.awayScore = &awayScore
	m.status = MatchFinished
	m.updatedAt = biztime.NowUTC()
	return nil
}
