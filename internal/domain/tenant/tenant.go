package tenant

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// TenantStatus is the lifecycle state of a tenant.
type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Tenant is one isolated organization. Every pool, policy, credential and
// registration is scoped to exactly one tenant.
type Tenant struct {
	id        uint
	sid       string // tn_xxx
	slug      string // unique, used in the X-Tenant header and subdomains
	name      string
	status    TenantStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewTenant creates an active tenant with a URL-safe slug.
func NewTenant(slug, name string) (*Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("invalid tenant slug: %q", slug)
	}
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}

	sid, err := id.NewTenantID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Tenant{
		sid:       sid,
		slug:      slug,
		name:      name,
		status:    TenantActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTenant rebuilds a Tenant from the persistence layer.
func ReconstructTenant(id uint, sid, slug, name string, status TenantStatus, createdAt, updatedAt time.Time) *Tenant {
	return &Tenant{
		id:        id,
		sid:       sid,
		slug:      slug,
		name:      name,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters
func (t *Tenant) ID() uint             { return t.id }
func (t *Tenant) SID() string          { return t.sid }
func (t *Tenant) Slug() string         { return t.slug }
func (t *Tenant) Name() string         { return t.name }
func (t *Tenant) Status() TenantStatus { return t.status }
func (t *Tenant) CreatedAt() time.Time { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time { return t.updatedAt }

// SetID sets the tenant ID (only for persistence layer use)
func (t *Tenant) SetID(id uint) { t.id = id }

// IsActive reports whether the tenant can serve traffic.
func (t *Tenant) IsActive() bool {
	return t.status == TenantActive
}

// Suspend blocks all traffic for the tenant.
func (t *Tenant) Suspend() {
	t.status = TenantSuspended
	t.updatedAt = biztime.NowUTC()
}

// Activate restores a suspended tenant.
func (t *Tenant) Activate() {
	t.status = TenantActive
	t.updatedAt = biztime.NowUTC()
}

// UpdateName renames the tenant.
func (t *Tenant) UpdateName(name string) error {
	if name == "" {
		return fmt.Errorf("tenant name is required")
	}
	t.name = name
	t.updatedAt = biztime.NowUTC()
	return nil
}
