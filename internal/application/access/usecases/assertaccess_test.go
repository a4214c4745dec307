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

func assertUseCase(f *fixture) *AssertAccessUseCase {
	return NewAssertAccessUseCase(f.pools, f.policies, f.registrations, f.codes, f.invitations, logger.NewLogger())
}

func TestAssertAccess_Public(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessPublic)

	_, err := publicUseCase(f).Execute(ctx, f.command(100))
	require.NoError(t, err)

	uc := assertUseCase(f)

	reg, err := uc.Execute(ctx, AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 100})
	require.NoError(t, err)
	assert.Equal(t, uint(100), reg.UserID())

	_, err = uc.Execute(ctx, AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 999})
	requireDenied(t, err, access.ReasonRegistrationRequired)

	_, err = uc.Execute(ctx, AssertAccessQuery{TenantID: 42, PoolSID: f.pool.SID(), UserID: 100})
	requireDenied(t, err, access.ReasonTenantMismatch)
}

func TestAssertAccess_CodeRecheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessCode)
	codes := f.mintCodes(t, 1, 1, nil)

	_, err := codeUseCase(f).Execute(ctx, RegisterWithCodeCommand{
		RegistrationCommand: f.command(100),
		Code:                codes[0].Code(),
	})
	require.NoError(t, err)

	uc := assertUseCase(f)
	query := AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 100}

	// A fully used code still grants access to the player who consumed it.
	reg, err := uc.Execute(ctx, query)
	require.NoError(t, err)
	require.NotNil(t, reg.InviteCodeID())

	// Pausing the code afterwards locks that player out.
	codes[0].Pause()
	_, err = uc.Execute(ctx, query)
	requireDenied(t, err, access.ReasonCodeInvalid)

	// Resuming restores access.
	codes[0].Resume(time.Now().UTC())
	_, err = uc.Execute(ctx, query)
	require.NoError(t, err)
}

func TestAssertAccess_CodeMissingLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessCode)

	// A registration without a code link in a CODE pool, as left behind by a
	// policy switched after a public admission.
	reg, err := access.NewRegistration(f.pool.ID(), testTenantID, 100, "Player", "player@example.com", "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.registrations.Create(ctx, reg))

	_, err = assertUseCase(f).Execute(ctx, AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 100})
	requireDenied(t, err, access.ReasonCodeRequired)
}

func TestAssertAccess_InvitationRecheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessEmailInvite)
	inv := f.invite(t, "player@example.com", time.Now().UTC().Add(time.Minute))

	_, err := invitationUseCase(f).Execute(ctx, RegisterWithInvitationCommand{
		RegistrationCommand: f.command(100),
		Token:               inv.Token(),
	})
	require.NoError(t, err)

	uc := assertUseCase(f)
	query := AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 100}

	_, err = uc.Execute(ctx, query)
	require.NoError(t, err)

	// Once the invitation's expiry passes, even an accepted invitation stops
	// granting access on the re-check.
	expired, err := access.NewInvitation(f.policy.ID(), testTenantID, "other@example.com", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.invitations.Create(ctx, expired))
	require.NoError(t, expired.Accept(time.Now().UTC().Add(-2*time.Hour)))

	reg2, err := access.NewRegistration(f.pool.ID(), testTenantID, 101, "Other", "other@example.com", "", nil, ptrUint(expired.ID()))
	require.NoError(t, err)
	require.NoError(t, f.registrations.Create(ctx, reg2))

	_, err = uc.Execute(ctx, AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 101})
	requireDenied(t, err, access.ReasonInvitationExpired)
}

func TestAssertAccess_InvitationMissingLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessEmailInvite)

	reg, err := access.NewRegistration(f.pool.ID(), testTenantID, 100, "Player", "player@example.com", "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.registrations.Create(ctx, reg))

	_, err = assertUseCase(f).Execute(ctx, AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 100})
	requireDenied(t, err, access.ReasonInvitationRequired)
}

func TestAssertAccess_UnknownAccessType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, access.AccessPublic)

	// Simulate a policy row whose access type no release of the code knows.
	broken := access.ReconstructPolicy(access.PolicyReconstructParams{
		ID:         f.policy.ID(),
		SID:        f.policy.SID(),
		PoolID:     f.pool.ID(),
		AccessType: access.AccessType("LEGACY_SSO"),
		CreatedAt:  f.policy.CreatedAt(),
		UpdatedAt:  f.policy.UpdatedAt(),
	})
	require.NoError(t, f.policies.Update(ctx, broken))

	_, err := publicUseCase(f).Execute(ctx, f.command(100))
	require.Error(t, err, "registration also refuses the unknown type")

	reg, err := access.NewRegistration(f.pool.ID(), testTenantID, 100, "Player", "player@example.com", "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.registrations.Create(ctx, reg))

	_, err = assertUseCase(f).Execute(ctx, AssertAccessQuery{TenantID: testTenantID, PoolSID: f.pool.SID(), UserID: 100})
	var cfg *access.ConfigError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, access.ReasonUnknownAccessType, cfg.Reason)
}

func ptrUint(v uint) *uint { return &v }
