package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	policy, err := NewPolicy(1, AccessCode)
	require.NoError(t, err)

	assert.Equal(t, AccessCode, policy.AccessType())
	assert.False(t, policy.RequireCaptcha())
	assert.Nil(t, policy.MaxRegistrations())
	assert.NotEmpty(t, policy.SID())
}

func TestNewPolicy_InvalidAccessType(t *testing.T) {
	_, err := NewPolicy(1, AccessType("OAUTH"))
	assert.Error(t, err)
}

func TestAccessType_IsValid(t *testing.T) {
	assert.True(t, AccessPublic.IsValid())
	assert.True(t, AccessCode.IsValid())
	assert.True(t, AccessEmailInvite.IsValid())
	assert.False(t, AccessType("").IsValid())
	assert.False(t, AccessType("public").IsValid())
}

func TestPolicy_InRegistrationWindow(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"no bounds", nil, nil, true},
		{"inside window", &past, &future, true},
		{"before start", &future, nil, false},
		{"after end", nil, &past, false},
		{"open start", nil, &future, true},
		{"open end", &past, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewPolicy(1, AccessPublic)
			require.NoError(t, err)
			policy.SetRegistrationWindow(tt.start, tt.end)
			assert.Equal(t, tt.want, policy.InRegistrationWindow(now))
		})
	}
}

func TestPolicy_UnderCap(t *testing.T) {
	policy, err := NewPolicy(1, AccessPublic)
	require.NoError(t, err)

	assert.True(t, policy.UnderCap(1_000_000), "nil cap is unlimited")

	cap := 10
	policy.SetMaxRegistrations(&cap)
	assert.True(t, policy.UnderCap(9))
	assert.False(t, policy.UnderCap(10))
	assert.False(t, policy.UnderCap(11))
}

func TestPolicy_EmailAllowed(t *testing.T) {
	policy, err := NewPolicy(1, AccessEmailInvite)
	require.NoError(t, err)

	assert.True(t, policy.EmailAllowed("anyone@anywhere.dev"), "empty list allows all")

	policy.SetDomainAllowList([]string{"Example.com", "corp.mx"})
	assert.True(t, policy.EmailAllowed("player@example.COM"))
	assert.True(t, policy.EmailAllowed("player@corp.mx"))
	assert.False(t, policy.EmailAllowed("player@other.com"))
	assert.False(t, policy.EmailAllowed("no-at-sign"))
}

func TestNewRegistration(t *testing.T) {
	codeID := uint(7)

	reg, err := NewRegistration(1, 2, 3, "Player One", "player@example.com", "", &codeID, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), reg.PoolID())
	assert.Equal(t, uint(2), reg.TenantID())
	assert.Equal(t, uint(3), reg.UserID())
	require.NotNil(t, reg.InviteCodeID())
	assert.Equal(t, codeID, *reg.InviteCodeID())
	assert.Nil(t, reg.InvitationID())
	assert.True(t, reg.BelongsToTenant(2))
	assert.False(t, reg.BelongsToTenant(9))
}

func TestNewRegistration_BothCredentials(t *testing.T) {
	codeID := uint(7)
	invID := uint(8)
	_, err := NewRegistration(1, 2, 3, "Player One", "player@example.com", "", &codeID, &invID)
	assert.Error(t, err)
}

func TestCodeBatch_GenerateCodes(t *testing.T) {
	batch, err := NewCodeBatch(1, 2, "launch wave", 5, 3, nil)
	require.NoError(t, err)

	codes, err := batch.GenerateCodes()
	require.NoError(t, err)
	require.Len(t, codes, 5)

	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		assert.Equal(t, CodeUnused, c.Status())
		assert.Equal(t, 3, c.UsesPerCode())
		assert.Equal(t, uint(2), c.TenantID())
		assert.False(t, seen[c.Code()], "codes within a batch must differ")
		seen[c.Code()] = true
	}
}

func TestNewCodeBatch_Validation(t *testing.T) {
	_, err := NewCodeBatch(1, 2, "", 5, 3, nil)
	assert.Error(t, err)

	_, err = NewCodeBatch(1, 2, "wave", 0, 3, nil)
	assert.Error(t, err)

	_, err = NewCodeBatch(1, 2, "wave", 5, 0, nil)
	assert.Error(t, err)
}
