package access

import (
	"fmt"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// Registration is the admission record: its existence is the sole authority
// for "is this user admitted to this pool". It links at most one credential,
// depending on the policy's access type, and is never deleted in normal
// operation.
type Registration struct {
	id           uint
	sid          string // reg_xxx
	poolID       uint
	tenantID     uint
	userID       uint
	displayName  string
	email        string
	phone        string
	inviteCodeID *uint
	invitationID *uint
	createdAt    time.Time
	updatedAt    time.Time
}

// NewRegistration creates an admission record. At most one of inviteCodeID
// and invitationID may be set; PUBLIC admissions set neither.
func NewRegistration(poolID, tenantID, userID uint, displayName, email, phone string, inviteCodeID, invitationID *uint) (*Registration, error) {
	if inviteCodeID != nil && invitationID != nil {
		return nil, fmt.Errorf("registration cannot link both a code and an invitation")
	}

	sid, err := id.NewRegistrationID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Registration{
		sid:          sid,
		poolID:       poolID,
		tenantID:     tenantID,
		userID:       userID,
		displayName:  displayName,
		email:        email,
		phone:        phone,
		inviteCodeID: inviteCodeID,
		invitationID: invitationID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructRegistration rebuilds a Registration from the persistence layer.
func ReconstructRegistration(
	id uint,
	sid string,
	poolID, tenantID, userID uint,
	displayName, email, phone string,
	inviteCodeID, invitationID *uint,
	createdAt, updatedAt time.Time,
) *Registration {
	return &Registration{
		id:           id,
		sid:          sid,
		poolID:       poolID,
		tenantID:     tenantID,
		userID:       userID,
		displayName:  displayName,
		email:        email,
		phone:        phone,
		inviteCodeID: inviteCodeID,
		invitationID: invitationID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Getters
func (r *Registration) ID() uint             { return r.id }
func (r *Registration) SID() string          { return r.sid }
func (r *Registration) PoolID() uint         { return r.poolID }
func (r *Registration) TenantID() uint       { return r.tenantID }
func (r *Registration) UserID() uint         { return r.userID }
func (r *Registration) DisplayName() string  { return r.displayName }
func (r *Registration) Email() string        { return r.email }
func (r *Registration) Phone() string        { return r.phone }
func (r *Registration) InviteCodeID() *uint  { return r.inviteCodeID }
func (r *Registration) InvitationID() *uint  { return r.invitationID }
func (r *Registration) CreatedAt() time.Time { return r.createdAt }
func (r *Registration) UpdatedAt() time.Time { return r.updatedAt }

// SetID sets the registration ID (only for persistence layer use)
func (r *Registration) SetID(id uint) { r.id = id }

// BelongsToTenant reports whether the registration is scoped to the caller's
// resolved tenant. Enforced unconditionally, independent of access type.
func (r *Registration) BelongsToTenant(tenantID uint) bool {
	return r.tenantID == tenantID
}

// Touch bumps updatedAt; used by telemetry-only writes.
func (r *Registration) Touch() {
	r.updatedAt = biztime.NowUTC()
}
