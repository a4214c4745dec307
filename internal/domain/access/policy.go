package access

import (
	"fmt"
	"strings"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// AccessType selects the admission mode of a pool. The three modes are
// mutually exclusive and immutable once the policy is created.
type AccessType string

const (
	AccessPublic      AccessType = "PUBLIC"
	AccessCode        AccessType = "CODE"
	AccessEmailInvite AccessType = "EMAIL_INVITE"
)

// IsValid checks if the access type is one of the three admission modes.
func (t AccessType) IsValid() bool {
	switch t {
	case AccessPublic, AccessCode, AccessEmailInvite:
		return true
	default:
		return false
	}
}

// Policy is the admission-mode configuration attached to one pool.
type Policy struct {
	id                       uint
	sid                      string // ap_xxx
	poolID                   uint
	accessType               AccessType
	requireCaptcha           bool
	requireEmailVerification bool
	domainAllowList          []string
	maxRegistrations         *int
	registrationStartDate    *time.Time
	registrationEndDate      *time.Time
	userCap                  *int
	windowStart              *time.Time
	windowEnd                *time.Time
	createdAt                time.Time
	updatedAt                time.Time
}

// NewPolicy creates an access policy for a pool.
func NewPolicy(poolID uint, accessType AccessType) (*Policy, error) {
	if !accessType.IsValid() {
		return nil, fmt.Errorf("invalid access type: %s", accessType)
	}

	sid, err := id.NewPolicyID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Policy{
		sid:        sid,
		poolID:     poolID,
		accessType: accessType,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// PolicyReconstructParams carries persistence state into ReconstructPolicy.
type PolicyReconstructParams struct {
	ID                       uint
	SID                      string
	PoolID                   uint
	AccessType               AccessType
	RequireCaptcha           bool
	RequireEmailVerification bool
	DomainAllowList          []string
	MaxRegistrations         *int
	RegistrationStartDate    *time.Time
	RegistrationEndDate      *time.Time
	UserCap                  *int
	WindowStart              *time.Time
	WindowEnd                *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// ReconstructPolicy rebuilds a Policy from the persistence layer.
func ReconstructPolicy(p PolicyReconstructParams) *Policy {
	return &Policy{
		id:                       p.ID,
		sid:                      p.SID,
		poolID:                   p.PoolID,
		accessType:               p.AccessType,
		requireCaptcha:           p.RequireCaptcha,
		requireEmailVerification: p.RequireEmailVerification,
		domainAllowList:          p.DomainAllowList,
		maxRegistrations:         p.MaxRegistrations,
		registrationStartDate:    p.RegistrationStartDate,
		registrationEndDate:      p.RegistrationEndDate,
		userCap:                  p.UserCap,
		windowStart:              p.WindowStart,
		windowEnd:                p.WindowEnd,
		createdAt:                p.CreatedAt,
		updatedAt:                p.UpdatedAt,
	}
}

// Getters
func (p *Policy) ID() uint                          { return p.id }
func (p *Policy) SID() string                       { return p.sid }
func (p *Policy) PoolID() uint                      { return p.poolID }
func (p *Policy) AccessType() AccessType            { return p.accessType }
func (p *Policy) RequireCaptcha() bool              { return p.requireCaptcha }
func (p *Policy) RequireEmailVerification() bool    { return p.requireEmailVerification }
func (p *Policy) DomainAllowList() []string         { return p.domainAllowList }
func (p *Policy) MaxRegistrations() *int            { return p.maxRegistrations }
func (p *Policy) RegistrationStartDate() *time.Time { return p.registrationStartDate }
func (p *Policy) RegistrationEndDate() *time.Time   { return p.registrationEndDate }
func (p *Policy) UserCap() *int                     { return p.userCap }
func (p *Policy) WindowStart() *time.Time           { return p.windowStart }
func (p *Policy) WindowEnd() *time.Time             { return p.windowEnd }
func (p *Policy) CreatedAt() time.Time              { return p.createdAt }
func (p *Policy) UpdatedAt() time.Time              { return p.updatedAt }

// SetID sets the policy ID (only for persistence layer use)
func (p *Policy) SetID(id uint) { p.id = id }

// Setters for the mutable constraint fields. The access type itself is
// immutable after creation.
func (p *Policy) SetRequireCaptcha(v bool) {
	p.requireCaptcha = v
	p.updatedAt = biztime.NowUTC()
}

func (p *Policy) SetRequireEmailVerification(v bool) {
	p.requireEmailVerification = v
	p.updatedAt = biztime.NowUTC()
}

func (p *Policy) SetDomainAllowList(domains []string) {
	p.domainAllowList = domains
	p.updatedAt = biztime.NowUTC()
}

func (p *Policy) SetMaxRegistrations(max *int) {
	p.maxRegistrations = max
	p.updatedAt = biztime.NowUTC()
}

func (p *Policy) SetRegistrationWindow(start, end *time.Time) {
	p.registrationStartDate = start
	p.registrationEndDate = end
	p.updatedAt = biztime.NowUTC()
}

// InRegistrationWindow reports whether now falls inside the admission window.
// Unset bounds leave that side open.
func (p *Policy) InRegistrationWindow(now time.Time) bool {
	if p.registrationStartDate != nil && now.Before(*p.registrationStartDate) {
		return false
	}
	if p.registrationEndDate != nil && now.After(*p.registrationEndDate) {
		return false
	}
	return true
}

// UnderCap reports whether another registration fits under maxRegistrations.
// A nil cap means unlimited. The count is taken before insert; the cap is a
// documented soft cap under concurrency.
func (p *Policy) UnderCap(currentCount int64) bool {
	if p.maxRegistrations == nil {
		return true
	}
	return currentCount < int64(*p.maxRegistrations)
}

// EmailAllowed reports whether the email's domain passes the allow list.
// An empty list allows every domain.
func (p *Policy) EmailAllowed(email string) bool {
	if len(p.domainAllowList) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range p.domainAllowList {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
