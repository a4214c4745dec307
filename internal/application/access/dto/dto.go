package dto

import (
	"time"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
)

// RegistrationDTO is the API representation of an admission.
type RegistrationDTO struct {
	SID         string `json:"id"`
	PoolSID     string `json:"poolId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	CreatedAt   string `json:"createdAt"`
}

// FromRegistration converts an admission entity. The pool SID comes from the
// caller since registrations store the internal pool ID.
func FromRegistration(r *access.Registration, poolSID string) *RegistrationDTO {
	return &RegistrationDTO{
		SID:         r.SID(),
		PoolSID:     poolSID,
		DisplayName: r.DisplayName(),
		Email:       r.Email(),
		CreatedAt:   r.CreatedAt().UTC().Format(time.RFC3339),
	}
}

// CodeValidationDTO is the pre-flight answer for an invite code, shown
// before the registration form is submitted.
type CodeValidationDTO struct {
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"`
	UsesRemaining int    `json:"usesRemaining,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
}

// InvitationValidationDTO is the pre-flight answer for an invitation token.
// The invited email is echoed back so the form can pre-fill it.
type InvitationValidationDTO struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	Email     string `json:"email,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// InvitationDTO is the admin-facing representation of an invitation.
type InvitationDTO struct {
	SID        string `json:"id"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	ExpiresAt  string `json:"expiresAt"`
	SentCount  int    `json:"sentCount"`
	LastSentAt string `json:"lastSentAt,omitempty"`
	OpenedAt   string `json:"openedAt,omitempty"`
	AcceptedAt string `json:"acceptedAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// FromInvitation converts an invitation entity.
func FromInvitation(inv *access.Invitation) *InvitationDTO {
	out := &InvitationDTO{
		SID:       inv.SID(),
		Email:     inv.Email(),
		Status:    string(inv.Status()),
		ExpiresAt: inv.ExpiresAt().UTC().Format(time.RFC3339),
		SentCount: inv.SentCount(),
		CreatedAt: inv.CreatedAt().UTC().Format(time.RFC3339),
	}
	if ts := inv.LastSentAt(); ts != nil {
		out.LastSentAt = ts.UTC().Format(time.RFC3339)
	}
	if ts := inv.OpenedAt(); ts != nil {
		out.OpenedAt = ts.UTC().Format(time.RFC3339)
	}
	if ts := inv.AcceptedAt(); ts != nil {
		out.AcceptedAt = ts.UTC().Format(time.RFC3339)
	}
	return out
}

// CodeBatchDTO is the admin-facing representation of a code batch, with the
// minted codes included only at creation time.
type CodeBatchDTO struct {
	SID         string   `json:"id"`
	Name        string   `json:"name"`
	CodeCount   int      `json:"codeCount"`
	UsesPerCode int      `json:"usesPerCode"`
	ExpiresAt   string   `json:"expiresAt,omitempty"`
	Paused      bool     `json:"paused"`
	Codes       []string `json:"codes,omitempty"`
}

// FromCodeBatch converts a batch entity.
func FromCodeBatch(b *access.CodeBatch, codes []*access.InviteCode) *CodeBatchDTO {
	out := &CodeBatchDTO{
		SID:         b.SID(),
		Name:        b.Name(),
		CodeCount:   b.CodeCount(),
		UsesPerCode: b.UsesPerCode(),
		Paused:      b.Paused(),
	}
	if ts := b.ExpiresAt(); ts != nil {
		out.ExpiresAt = ts.UTC().Format(time.RFC3339)
	}
	for _, c := range codes {
		out.Codes = append(out.Codes, c.Code())
	}
	return out
}
