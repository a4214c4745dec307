package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCode(t *testing.T, usesPerCode int, expiresAt *time.Time) *InviteCode {
	t.Helper()
	code, err := NewInviteCode(1, 1, 1, usesPerCode, expiresAt)
	require.NoError(t, err)
	return code
}

func TestNewInviteCode(t *testing.T) {
	code := newTestCode(t, 3, nil)

	assert.Len(t, code.Code(), 10)
	assert.Equal(t, CodeUnused, code.Status())
	assert.Equal(t, 0, code.UsedCount())
	assert.Equal(t, 3, code.UsesRemaining())
}

func TestNewInviteCode_InvalidUses(t *testing.T) {
	_, err := NewInviteCode(1, 1, 1, 0, nil)
	assert.Error(t, err)
}

func TestInviteCode_RecordUse(t *testing.T) {
	now := time.Now().UTC()
	code := newTestCode(t, 2, nil)

	require.NoError(t, code.RecordUse(now))
	assert.Equal(t, 1, code.UsedCount())
	assert.Equal(t, CodePartiallyUsed, code.Status())
	assert.Equal(t, 1, code.UsesRemaining())

	require.NoError(t, code.RecordUse(now))
	assert.Equal(t, 2, code.UsedCount())
	assert.Equal(t, CodeUsed, code.Status())
	assert.Equal(t, 0, code.UsesRemaining())

	err := code.RecordUse(now)
	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, 2, code.UsedCount(), "counter must never exceed capacity")
}

func TestInviteCode_SingleUseGoesStraightToUsed(t *testing.T) {
	now := time.Now().UTC()
	code := newTestCode(t, 1, nil)

	require.NoError(t, code.RecordUse(now))
	assert.Equal(t, CodeUsed, code.Status())
	assert.ErrorIs(t, code.RecordUse(now), ErrCodeExhausted)
}

func TestInviteCode_DeriveStatus(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		status    CodeStatus
		used      int
		uses      int
		expiresAt *time.Time
		want      CodeStatus
	}{
		{"unused", CodeUnused, 0, 3, nil, CodeUnused},
		{"partially used", CodeUnused, 1, 3, nil, CodePartiallyUsed},
		{"used", CodePartiallyUsed, 3, 3, nil, CodeUsed},
		{"expired wins over counters", CodePartiallyUsed, 1, 3, &past, CodeExpired},
		{"future expiry keeps counters", CodeUnused, 0, 3, &future, CodeUnused},
		{"paused is sticky", CodePaused, 0, 3, nil, CodePaused},
		{"paused is sticky even when expired", CodePaused, 0, 3, &past, CodePaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := ReconstructInviteCode(1, 1, 1, 1, "ABCDEFGHIJ", tt.status, tt.uses, tt.used, tt.expiresAt, now, now)
			assert.Equal(t, tt.want, code.DeriveStatus(now))
		})
	}
}

func TestInviteCode_CheckConsumable(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		status     CodeStatus
		used       int
		uses       int
		expiresAt  *time.Time
		wantReason ReasonCode
	}{
		{"unused ok", CodeUnused, 0, 1, nil, ""},
		{"partially used ok", CodePartiallyUsed, 1, 3, nil, ""},
		{"paused", CodePaused, 0, 3, nil, ReasonCodeInvalid},
		{"expired status", CodeExpired, 0, 3, nil, ReasonCodeExpired},
		{"expired by clock", CodeUnused, 0, 3, &past, ReasonCodeExpired},
		{"exhausted", CodeUsed, 3, 3, nil, ReasonCodeExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := ReconstructInviteCode(1, 1, 1, 1, "ABCDEFGHIJ", tt.status, tt.uses, tt.used, tt.expiresAt, now, now)
			denied := code.CheckConsumable(now)
			if tt.wantReason == "" {
				assert.Nil(t, denied)
				return
			}
			require.NotNil(t, denied)
			assert.Equal(t, tt.wantReason, denied.Reason)
		})
	}
}

func TestInviteCode_CheckHeld(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		status     CodeStatus
		used       int
		uses       int
		expiresAt  *time.Time
		wantReason ReasonCode
	}{
		{"used code still grants held access", CodeUsed, 3, 3, nil, ""},
		{"partially used held ok", CodePartiallyUsed, 1, 3, nil, ""},
		{"paused revokes held access", CodePaused, 1, 3, nil, ReasonCodeInvalid},
		{"expired status revokes", CodeExpired, 1, 3, nil, ReasonCodeInvalid},
		{"expired by clock revokes", CodeUsed, 3, 3, &past, ReasonCodeExpired},
		{"counter overrun revokes", CodeUsed, 4, 3, nil, ReasonCodeExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := ReconstructInviteCode(1, 1, 1, 1, "ABCDEFGHIJ", tt.status, tt.uses, tt.used, tt.expiresAt, now, now)
			denied := code.CheckHeld(now)
			if tt.wantReason == "" {
				assert.Nil(t, denied)
				return
			}
			require.NotNil(t, denied)
			assert.Equal(t, tt.wantReason, denied.Reason)
		})
	}
}

func TestInviteCode_PauseResume(t *testing.T) {
	now := time.Now().UTC()
	code := newTestCode(t, 3, nil)
	require.NoError(t, code.RecordUse(now))

	code.Pause()
	assert.Equal(t, CodePaused, code.Status())
	require.NotNil(t, code.CheckConsumable(now))

	code.Resume(now)
	assert.Equal(t, CodePartiallyUsed, code.Status())
	assert.Nil(t, code.CheckConsumable(now))
}

func TestInviteCode_ResumeExpiredCode(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	code := ReconstructInviteCode(1, 1, 1, 1, "ABCDEFGHIJ", CodePaused, 3, 0, &past, now, now)

	code.Resume(now)
	assert.Equal(t, CodeExpired, code.Status())
}

func TestInviteCode_ResumeNonPausedIsNoop(t *testing.T) {
	now := time.Now().UTC()
	code := newTestCode(t, 3, nil)
	require.NoError(t, code.RecordUse(now))

	code.Resume(now)
	assert.Equal(t, CodePartiallyUsed, code.Status())
}
