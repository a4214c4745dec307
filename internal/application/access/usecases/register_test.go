package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
)

func publicUseCase(f *fixture) *RegisterPublicUseCase {
	return NewRegisterPublicUseCase(f.pools, f.policies, f.registrations, f.audits, f.values, passthroughTx{}, logger.NewLogger())
}

func codeUseCase(f *fixture) *RegisterWithCodeUseCase {
	return NewRegisterWithCodeUseCase(f.pools, f.policies, f.codes, f.registrations, f.audits, f.values, passthroughTx{}, logger.NewLogger())
}

func invitationUseCase(f *fixture) *RegisterWithInvitationUseCase {
	return NewRegisterWithInvitationUseCase(f.pools, f.policies, f.invitations, f.registrations, f.audits, f.values, passthroughTx{}, logger.NewLogger())
}

func requireDenied(t *testing.T, err error, reason access.ReasonCode) {
	t.Helper()
	var denied *access.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, reason, denied.Reason)
}

func TestRegisterPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("admits and audits", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		uc := publicUseCase(f)

		reg, err := uc.Execute(ctx, f.command(100))
		require.NoError(t, err)
		assert.Equal(t, f.pool.SID(), reg.PoolSID)
		assert.NotEmpty(t, reg.SID)

		require.Len(t, f.audits.entries, 1)
		assert.Empty(t, f.audits.entries[0].IP(), "ip logging defaults to off")
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		uc := publicUseCase(f)

		_, err := uc.Execute(ctx, f.command(100))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, f.command(100))
		assert.ErrorIs(t, err, access.ErrRegistrationExists)
	})

	t.Run("rejects other tenants", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		uc := publicUseCase(f)

		cmd := f.command(100)
		cmd.TenantID = 99
		_, err := uc.Execute(ctx, cmd)
		requireDenied(t, err, access.ReasonTenantMismatch)
	})

	t.Run("rejects inactive pools", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		f.pool.Archive()
		uc := publicUseCase(f)

		_, err := uc.Execute(ctx, f.command(100))
		assert.ErrorIs(t, err, ErrPoolClosed)
	})

	t.Run("enforces the registration window", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		past := time.Now().UTC().Add(-time.Hour)
		f.policy.SetRegistrationWindow(nil, &past)
		uc := publicUseCase(f)

		_, err := uc.Execute(ctx, f.command(100))
		assert.ErrorIs(t, err, ErrRegistrationWindow)
	})

	t.Run("enforces the cap", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		cap := 1
		f.policy.SetMaxRegistrations(&cap)
		uc := publicUseCase(f)

		_, err := uc.Execute(ctx, f.command(100))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, f.command(101))
		assert.ErrorIs(t, err, ErrPoolFull)
	})

	t.Run("enforces the domain allow list", func(t *testing.T) {
		f := newFixture(t, access.AccessPublic)
		f.policy.SetDomainAllowList([]string{"corp.mx"})
		uc := publicUseCase(f)

		_, err := uc.Execute(ctx, f.command(100))
		assert.ErrorIs(t, err, ErrEmailDomainNotAllowed)
	})

	t.Run("rejects the wrong mode", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		uc := publicUseCase(f)

		_, err := uc.Execute(ctx, f.command(100))
		assert.ErrorIs(t, err, ErrAccessTypeMismatch)
	})
}

func TestRegisterWithCode(t *testing.T) {
	ctx := context.Background()

	t.Run("admits and consumes one use", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		codes := f.mintCodes(t, 1, 3, nil)
		uc := codeUseCase(f)

		reg, err := uc.Execute(ctx, RegisterWithCodeCommand{
			RegistrationCommand: f.command(100),
			Code:                codes[0].Code(),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, reg.SID)

		assert.Equal(t, 1, codes[0].UsedCount())
		assert.Equal(t, access.CodePartiallyUsed, codes[0].Status())

		stored, err := f.registrations.GetByUserAndPool(ctx, 100, f.pool.ID())
		require.NoError(t, err)
		require.NotNil(t, stored.InviteCodeID())
		assert.Equal(t, codes[0].ID(), *stored.InviteCodeID())
	})

	t.Run("requires a code", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		uc := codeUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithCodeCommand{RegistrationCommand: f.command(100)})
		requireDenied(t, err, access.ReasonCodeRequired)
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		uc := codeUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithCodeCommand{
			RegistrationCommand: f.command(100),
			Code:                "NOSUCHCODE",
		})
		requireDenied(t, err, access.ReasonCodeInvalid)
	})

	t.Run("rejects expired codes", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		past := time.Now().UTC().Add(-time.Hour)
		codes := f.mintCodes(t, 1, 3, &past)
		uc := codeUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithCodeCommand{
			RegistrationCommand: f.command(100),
			Code:                codes[0].Code(),
		})
		requireDenied(t, err, access.ReasonCodeExpired)
	})

	t.Run("single-use code admits exactly one user", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		codes := f.mintCodes(t, 1, 1, nil)
		uc := codeUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithCodeCommand{
			RegistrationCommand: f.command(100),
			Code:                codes[0].Code(),
		})
		require.NoError(t, err)
		assert.Equal(t, access.CodeUsed, codes[0].Status())

		_, err = uc.Execute(ctx, RegisterWithCodeCommand{
			RegistrationCommand: f.command(101),
			Code:                codes[0].Code(),
		})
		requireDenied(t, err, access.ReasonCodeExhausted)
		assert.Equal(t, 1, codes[0].UsedCount(), "the counter never overruns")
	})

	t.Run("rejects paused codes", func(t *testing.T) {
		f := newFixture(t, access.AccessCode)
		codes := f.mintCodes(t, 1, 3, nil)
		codes[0].Pause()
		uc := codeUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithCodeCommand{
			RegistrationCommand: f.command(100),
			Code:                codes[0].Code(),
		})
		requireDenied(t, err, access.ReasonCodeInvalid)
	})
}

func TestRegisterWithInvitation(t *testing.T) {
	ctx := context.Background()
	future := time.Now().UTC().Add(24 * time.Hour)

	t.Run("admits and accepts", func(t *testing.T) {
		f := newFixture(t, access.AccessEmailInvite)
		inv := f.invite(t, "player@example.com", future)
		uc := invitationUseCase(f)

		reg, err := uc.Execute(ctx, RegisterWithInvitationCommand{
			RegistrationCommand: f.command(100),
			Token:               inv.Token(),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, reg.SID)
		assert.Equal(t, access.InvitationAccepted, inv.Status())

		stored, err := f.registrations.GetByUserAndPool(ctx, 100, f.pool.ID())
		require.NoError(t, err)
		require.NotNil(t, stored.InvitationID())
		assert.Equal(t, inv.ID(), *stored.InvitationID())
	})

	t.Run("requires a token", func(t *testing.T) {
		f := newFixture(t, access.AccessEmailInvite)
		uc := invitationUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithInvitationCommand{RegistrationCommand: f.command(100)})
		requireDenied(t, err, access.ReasonInvitationRequired)
	})

	t.Run("rejects a mismatched email", func(t *testing.T) {
		f := newFixture(t, access.AccessEmailInvite)
		inv := f.invite(t, "someone.else@example.com", future)
		uc := invitationUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithInvitationCommand{
			RegistrationCommand: f.command(100),
			Token:               inv.Token(),
		})
		requireDenied(t, err, access.ReasonInvitationRequired)
		assert.Equal(t, access.InvitationPending, inv.Status(), "a failed attempt does not burn the token")
	})

	t.Run("rejects an expired token and persists the lapse", func(t *testing.T) {
		f := newFixture(t, access.AccessEmailInvite)
		inv := f.invite(t, "player@example.com", time.Now().UTC().Add(-time.Minute))
		uc := invitationUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithInvitationCommand{
			RegistrationCommand: f.command(100),
			Token:               inv.Token(),
		})
		requireDenied(t, err, access.ReasonInvitationExpired)
		assert.Equal(t, access.InvitationExpired, inv.Status())
	})

	t.Run("a token admits exactly one account", func(t *testing.T) {
		f := newFixture(t, access.AccessEmailInvite)
		inv := f.invite(t, "player@example.com", future)
		uc := invitationUseCase(f)

		_, err := uc.Execute(ctx, RegisterWithInvitationCommand{
			RegistrationCommand: f.command(100),
			Token:               inv.Token(),
		})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, RegisterWithInvitationCommand{
			RegistrationCommand: f.command(101),
			Token:               inv.Token(),
		})
		requireDenied(t, err, access.ReasonInvitationRequired)
	})
}

func TestValidateCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessCode)
	codes := f.mintCodes(t, 1, 2, nil)
	uc := NewValidateCodeUseCase(f.pools, f.policies, f.codes, logger.NewLogger())

	got, err := uc.Execute(ctx, ValidateCodeQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), Code: codes[0].Code()})
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, 2, got.UsesRemaining)

	got, err = uc.Execute(ctx, ValidateCodeQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), Code: "WRONG"})
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, string(access.ReasonCodeInvalid), got.Reason)

	got, err = uc.Execute(ctx, ValidateCodeQuery{TenantID: testTenantID, PoolSID: f.pool.SID()})
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, string(access.ReasonCodeRequired), got.Reason)

	// Validation never consumes.
	assert.Equal(t, 0, codes[0].UsedCount())
}

func TestValidateInvitation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessEmailInvite)
	uc := NewValidateInvitationUseCase(f.invitations, logger.NewLogger())

	live := f.invite(t, "player@example.com", time.Now().UTC().Add(time.Hour))
	got, err := uc.Execute(ctx, ValidateInvitationQuery{Token: live.Token()})
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, "player@example.com", got.Email)

	lapsed := f.invite(t, "late@example.com", time.Now().UTC().Add(-time.Hour))
	got, err = uc.Execute(ctx, ValidateInvitationQuery{Token: lapsed.Token()})
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, string(access.ReasonInvitationExpired), got.Reason)
	assert.Equal(t, access.InvitationExpired, lapsed.Status(), "lazy expiry is persisted")

	got, err = uc.Execute(ctx, ValidateInvitationQuery{Token: "nope"})
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, string(access.ReasonInvitationRequired), got.Reason)
}
