package audit

import (
	"context"
	"time"

	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
)

// Action names for the admission and settings paths.
const (
	ActionRegistrationCreated = "registration.created"
	ActionRegistrationDenied  = "registration.denied"
	ActionCodeConsumed        = "invite_code.consumed"
	ActionInvitationAccepted  = "invitation.accepted"
	ActionInvitationSent      = "invitation.sent"
	ActionBatchCreated        = "code_batch.created"
	ActionBatchPaused         = "code_batch.paused"
	ActionBatchResumed        = "code_batch.resumed"
	ActionSettingUpdated      = "setting.updated"
	ActionSettingDeleted      = "setting.deleted"
)

// Entry is one append-only audit record. Entries are best effort: a failed
// audit write never rolls back the action it describes.
type Entry struct {
	id        uint
	tenantID  *uint // nil for platform-level actions
	actorSID  string
	action    string
	targetSID string
	detail    map[string]any
	ip        string
	createdAt time.Time
}

// NewEntry creates an audit record stamped now.
func NewEntry(tenantID *uint, actorSID, action, targetSID string, detail map[string]any, ip string) *Entry {
	return &Entry{
		tenantID:  tenantID,
		actorSID:  actorSID,
		action:    action,
		targetSID: targetSID,
		detail:    detail,
		ip:        ip,
		createdAt: biztime.NowUTC(),
	}
}

// ReconstructEntry rebuilds an Entry from the persistence layer.
func ReconstructEntry(id uint, tenantID *uint, actorSID, action, targetSID string, detail map[string]any, ip string, createdAt time.Time) *Entry {
	return &Entry{
		id:        id,
		tenantID:  tenantID,
		actorSID:  actorSID,
		action:    action,
		targetSID: targetSID,
		detail:    detail,
		ip:        ip,
		createdAt: createdAt,
	}
}

// Getters
func (e *Entry) ID() uint               { return e.id }
func (e *Entry) TenantID() *uint        { return e.tenantID }
func (e *Entry) ActorSID() string       { return e.actorSID }
func (e *Entry) Action() string         { return e.action }
func (e *Entry) TargetSID() string      { return e.targetSID }
func (e *Entry) Detail() map[string]any { return e.detail }
func (e *Entry) IP() string             { return e.ip }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }

// SetID sets the entry ID (only for persistence layer use)
func (e *Entry) SetID(id uint) { e.id = id }

// Repository persists audit entries.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByTenant(ctx context.Context, tenantID uint, page, pageSize int) ([]*Entry, int64, error)
}
