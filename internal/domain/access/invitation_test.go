package access

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvitation(t *testing.T, email string, expiresAt time.Time) *Invitation {
	t.Helper()
	inv, err := NewInvitation(1, 1, email, expiresAt)
	require.NoError(t, err)
	return inv
}

func TestNewInvitation(t *testing.T) {
	expiry := time.Now().UTC().Add(24 * time.Hour)
	inv := newTestInvitation(t, "  Player@Example.COM ", expiry)

	assert.Equal(t, "player@example.com", inv.Email(), "email is normalized")
	assert.Equal(t, InvitationPending, inv.Status())
	assert.Len(t, inv.Token(), 32)
	assert.NotContains(t, inv.Token(), "-")
	assert.True(t, strings.HasPrefix(inv.SID(), "inv_"))
}

func TestNewInvitation_InvalidEmail(t *testing.T) {
	expiry := time.Now().UTC().Add(time.Hour)
	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := NewInvitation(1, 1, email, expiry)
		assert.Error(t, err, "email %q", email)
	}
}

func TestInvitation_CheckAcceptable(t *testing.T) {
	now := time.Now().UTC()

	t.Run("pending matching email", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
		assert.Nil(t, inv.CheckAcceptable("Player@Example.com", now))
	})

	t.Run("email mismatch", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
		denied := inv.CheckAcceptable("other@example.com", now)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonInvitationRequired, denied.Reason)
	})

	t.Run("expired by clock", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(-time.Minute))
		denied := inv.CheckAcceptable("player@example.com", now)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonInvitationExpired, denied.Reason)
	})

	t.Run("already accepted", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
		require.NoError(t, inv.Accept(now))
		denied := inv.CheckAcceptable("player@example.com", now)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonInvitationRequired, denied.Reason)
	})
}

func TestInvitation_AcceptOnce(t *testing.T) {
	now := time.Now().UTC()
	inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))

	require.NoError(t, inv.Accept(now))
	assert.Equal(t, InvitationAccepted, inv.Status())
	require.NotNil(t, inv.AcceptedAt())
	assert.Equal(t, now, *inv.AcceptedAt())

	assert.ErrorIs(t, inv.Accept(now), ErrInvitationNotPending)
}

func TestInvitation_AcceptExpired(t *testing.T) {
	now := time.Now().UTC()
	inv := newTestInvitation(t, "player@example.com", now.Add(-time.Minute))

	assert.ErrorIs(t, inv.Accept(now), ErrInvitationNotPending)
	assert.Equal(t, InvitationPending, inv.Status())
}

func TestInvitation_MarkExpired(t *testing.T) {
	now := time.Now().UTC()

	inv := newTestInvitation(t, "player@example.com", now.Add(-time.Minute))
	assert.True(t, inv.MarkExpired(now))
	assert.Equal(t, InvitationExpired, inv.Status())
	assert.False(t, inv.MarkExpired(now), "transition applies once")

	fresh := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
	assert.False(t, fresh.MarkExpired(now))
	assert.Equal(t, InvitationPending, fresh.Status())

	accepted := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
	require.NoError(t, accepted.Accept(now))
	assert.False(t, accepted.MarkExpired(now.Add(2*time.Hour)), "accepted never lapses to EXPIRED")
}

func TestInvitation_CheckHeld(t *testing.T) {
	now := time.Now().UTC()

	t.Run("accepted grants held access", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
		require.NoError(t, inv.Accept(now))
		assert.Nil(t, inv.CheckHeld(now))
	})

	t.Run("pending is not accepted", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))
		denied := inv.CheckHeld(now)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonInvitationNotAccepted, denied.Reason)
	})

	t.Run("accepted then expired revokes", func(t *testing.T) {
		inv := newTestInvitation(t, "player@example.com", now.Add(time.Minute))
		require.NoError(t, inv.Accept(now))
		denied := inv.CheckHeld(now.Add(2 * time.Minute))
		require.NotNil(t, denied)
		assert.Equal(t, ReasonInvitationExpired, denied.Reason)
	})
}

func TestInvitation_SendTelemetry(t *testing.T) {
	now := time.Now().UTC()
	inv := newTestInvitation(t, "player@example.com", now.Add(time.Hour))

	inv.RecordSend(now)
	inv.RecordSend(now.Add(time.Minute))
	assert.Equal(t, 2, inv.SentCount())
	require.NotNil(t, inv.LastSentAt())
	assert.Equal(t, now.Add(time.Minute), *inv.LastSentAt())

	inv.RecordOpen(now)
	inv.RecordOpen(now.Add(time.Hour))
	require.NotNil(t, inv.OpenedAt())
	assert.Equal(t, now, *inv.OpenedAt(), "first open wins")
}
