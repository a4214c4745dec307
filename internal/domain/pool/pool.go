package pool

import (
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// PoolStatus is the lifecycle state of a pool. Only ACTIVE pools admit new
// registrations; ARCHIVED pools keep their history readable.
type PoolStatus string

const (
	PoolDraft    PoolStatus = "DRAFT"
	PoolActive   PoolStatus = "ACTIVE"
	PoolArchived PoolStatus = "ARCHIVED"
)

// Pool is one prediction contest inside a tenant.
type Pool struct {
	id          uint
	sid         string // pl_xxx
	tenantID    uint
	name        string
	description string
	status      PoolStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPool creates a pool in DRAFT.
func NewPool(tenantID uint, name, description string) (*Pool, error) {
	if name == "" {
		return nil, fmt.Errorf("pool name is required")
	}

	sid, err := id.NewPoolID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Pool{
		sid:         sid,
		tenantID:    tenantID,
		name:        name,
		description: description,
		status:      PoolDraft,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPool rebuilds a Pool from the persistence layer.
func ReconstructPool(id uint, sid string, tenantID uint, name, description string, status PoolStatus, createdAt, updatedAt time.Time) *Pool {
	return &Pool{
		id:          id,
		sid:         sid,
		tenantID:    tenantID,
		name:        name,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters
func (p *Pool) ID() uint             { return p.id }
func (p *Pool) SID() string          { return p.sid }
func (p *Pool) TenantID() uint       { return p.tenantID }
func (p *Pool) Name() string         { return p.name }
func (p *Pool) Description() string  { return p.description }
func (p *Pool) Status() PoolStatus   { return p.status }
func (p *Pool) CreatedAt() time.Time { return p.createdAt }
func (p *Pool) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the pool ID (only for persistence layer use)
func (p *Pool) SetID(id uint) { p.id = id }

// BelongsToTenant reports whether the pool belongs to the given tenant.
func (p *Pool) BelongsToTenant(tenantID uint) bool {
	return p.tenantID == tenantID
}

// AcceptsRegistrations reports whether the pool admits new players.
func (p *Pool) AcceptsRegistrations() bool {
	return p.status == PoolActive
}

// Activate opens the pool for registration and play.
func (p *Pool) Activate() error {
	if p.status == PoolArchived {
		return fmt.Errorf("archived pool cannot be activated")
	}
	p.status = PoolActive
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Archive closes the pool permanently.
func (p *Pool) Archive() {
	p.status = PoolArchived
	p.updatedAt = biztime.NowUTC()
}

// UpdateInfo renames the pool and replaces its description.
func (p *Pool) UpdateInfo(name, description string) error {
	if name == "" {
		return fmt.Errorf("pool name is required")
	}
	p.name = name
	p.description = description
	p.updatedAt = biztime.NowUTC()
	return nil
}
