package access

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
	"github.com/quiniela-inc/quiniela/internal/shared/id"
)

// InvitationStatus is the invitation lifecycle state. PENDING→ACCEPTED
// happens at most once; PENDING→EXPIRED is applied lazily on read.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// Invitation is a single-recipient admission credential bound to an email
// address. The token is high-entropy and single-use for acceptance.
type Invitation struct {
	id         uint
	sid        string // inv_xxx
	policyID   uint
	tenantID   uint
	email      string
	token      string
	status     InvitationStatus
	expiresAt  time.Time
	acceptedAt *time.Time

	// Engagement telemetry, write-only. Not invariant-bearing.
	sentCount  int
	lastSentAt *time.Time
	openedAt   *time.Time
	clickedAt  *time.Time
	bouncedAt  *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewInvitation creates a pending invitation for one recipient.
func NewInvitation(policyID, tenantID uint, email string, expiresAt time.Time) (*Invitation, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid invitation email: %q", email)
	}

	sid, err := id.NewInvitationID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Invitation{
		sid:       sid,
		policyID:  policyID,
		tenantID:  tenantID,
		email:     email,
		token:     newInvitationToken(),
		status:    InvitationPending,
		expiresAt: expiresAt,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// newInvitationToken produces a 128-bit random token without separators.
func newInvitationToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// InvitationReconstructParams carries persistence state into
// ReconstructInvitation.
type InvitationReconstructParams struct {
	ID         uint
	SID        string
	PolicyID   uint
	TenantID   uint
	Email      string
	Token      string
	Status     InvitationStatus
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	SentCount  int
	LastSentAt *time.Time
	OpenedAt   *time.Time
	ClickedAt  *time.Time
	BouncedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReconstructInvitation rebuilds an Invitation from the persistence layer.
func ReconstructInvitation(p InvitationReconstructParams) *Invitation {
	return &Invitation{
		id:         p.ID,
		sid:        p.SID,
		policyID:   p.PolicyID,
		tenantID:   p.TenantID,
		email:      p.Email,
		token:      p.Token,
		status:     p.Status,
		expiresAt:  p.ExpiresAt,
		acceptedAt: p.AcceptedAt,
		sentCount:  p.SentCount,
		lastSentAt: p.LastSentAt,
		openedAt:   p.OpenedAt,
		clickedAt:  p.ClickedAt,
		bouncedAt:  p.BouncedAt,
		createdAt:  p.CreatedAt,
		updatedAt:  p.UpdatedAt,
	}
}

// Getters
func (i *Invitation) ID() uint                 { return i.id }
func (i *Invitation) SID() string              { return i.sid }
func (i *Invitation) PolicyID() uint           { return i.policyID }
func (i *Invitation) TenantID() uint           { return i.tenantID }
func (i *Invitation) Email() string            { return i.email }
func (i *Invitation) Token() string            { return i.token }
func (i *Invitation) Status() InvitationStatus { return i.status }
func (i *Invitation) ExpiresAt() time.Time     { return i.expiresAt }
func (i *Invitation) AcceptedAt() *time.Time   { return i.acceptedAt }
func (i *Invitation) SentCount() int           { return i.sentCount }
func (i *Invitation) LastSentAt() *time.Time   { return i.lastSentAt }
func (i *Invitation) OpenedAt() *time.Time     { return i.openedAt }
func (i *Invitation) ClickedAt() *time.Time    { return i.clickedAt }
func (i *Invitation) BouncedAt() *time.Time    { return i.bouncedAt }
func (i *Invitation) CreatedAt() time.Time     { return i.createdAt }
func (i *Invitation) UpdatedAt() time.Time     { return i.updatedAt }

// SetID sets the invitation ID (only for persistence layer use)
func (i *Invitation) SetID(id uint) { i.id = id }

// IsExpired reports whether the expiry has passed.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.expiresAt)
}

// MarkExpired applies the lazy PENDING→EXPIRED transition on read.
func (i *Invitation) MarkExpired(now time.Time) bool {
	if i.status != InvitationPending || !i.IsExpired(now) {
		return false
	}
	i.status = InvitationExpired
	i.updatedAt = now
	return true
}

// EmailMatches compares the submitted email to the invitation target,
// case-insensitively.
func (i *Invitation) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), i.email)
}

// CheckAcceptable validates the admission-time state machine for accepting
// this invitation with the submitted email.
func (i *Invitation) CheckAcceptable(email string, now time.Time) *DeniedError {
	if i.status == InvitationAccepted {
		return Denied(ReasonInvitationRequired, "invitation already accepted")
	}
	if i.status == InvitationExpired || i.IsExpired(now) {
		return Denied(ReasonInvitationExpired, "invitation has expired")
	}
	if !i.EmailMatches(email) {
		return Denied(ReasonInvitationRequired, "email does not match invitation")
	}
	return nil
}

// CheckHeld validates the read-only re-check state machine for an
// invitation already linked to a registration: status must be exactly
// ACCEPTED and the expiry must not have passed.
func (i *Invitation) CheckHeld(now time.Time) *DeniedError {
	if i.status != InvitationAccepted {
		return Denied(ReasonInvitationNotAccepted, fmt.Sprintf("invitation is %s", i.status))
	}
	if i.IsExpired(now) {
		return Denied(ReasonInvitationExpired, "invitation has expired")
	}
	return nil
}

// Accept applies the single ACCEPTED transition and stamps acceptedAt.
func (i *Invitation) Accept(now time.Time) error {
	if i.status != InvitationPending {
		return ErrInvitationNotPending
	}
	if i.IsExpired(now) {
		return ErrInvitationNotPending
	}
	i.status = InvitationAccepted
	i.acceptedAt = &now
	i.updatedAt = now
	return nil
}

// RecordSend stamps delivery telemetry.
func (i *Invitation) RecordSend(now time.Time) {
	i.sentCount++
	i.lastSentAt = &now
	i.updatedAt = now
}

// RecordOpen stamps the first-open telemetry.
func (i *Invitation) RecordOpen(now time.Time) {
	if i.openedAt == nil {
		i.openedAt = &now
	}
	i.updatedAt = now
}

// RecordClick stamps the first-click telemetry.
func (i *Invitation) RecordClick(now time.Time) {
	if i.clickedAt == nil {
		i.clickedAt = &now
	}
	i.updatedAt = now
}

// RecordBounce stamps bounce telemetry.
func (i *Invitation) RecordBounce(now time.Time) {
	i.bouncedAt = &now
	i.updatedAt = now
}
