package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	got, err := Generate(20)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestGenerate_DefaultLengthOnNonPositive(t *testing.T) {
	for _, n := range []int{0, -5} {
		got, err := Generate(n)
		require.NoError(t, err)
		assert.Len(t, got, DefaultLength)
	}
}

func TestGenerate_AlphabetOnly(t *testing.T) {
	got, err := Generate(128)
	require.NoError(t, err)
	for _, r := range got {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixPool, DefaultLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "pl_"))
	assert.Len(t, got, len("pl_")+DefaultLength)
}

func TestParsePrefixedID(t *testing.T) {
	prefix, short, err := ParsePrefixedID("reg_xK9mP2vL3nQa")
	require.NoError(t, err)
	assert.Equal(t, "reg", prefix)
	assert.Equal(t, "xK9mP2vL3nQa", short)
}

func TestParsePrefixedID_Invalid(t *testing.T) {
	_, _, err := ParsePrefixedID("no-separator")
	assert.Error(t, err)
}

func TestValidatePrefix(t *testing.T) {
	require.NoError(t, ValidatePrefix("pl_abc123", PrefixPool))
	assert.Error(t, ValidatePrefix("tn_abc123", PrefixPool))
}

func TestEntityConstructors(t *testing.T) {
	cases := []struct {
		name   string
		fn     func() (string, error)
		prefix string
	}{
		{"Tenant", NewTenantID, PrefixTenant},
		{"Pool", NewPoolID, PrefixPool},
		{"Setting", NewSettingID, PrefixSetting},
		{"Policy", NewPolicyID, PrefixPolicy},
		{"CodeBatch", NewCodeBatchID, PrefixCodeBatch},
		{"Invitation", NewInvitationID, PrefixInvitation},
		{"Registration", NewRegistrationID, PrefixRegistration},
		{"Match", NewMatchID, PrefixMatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sid, err := tc.fn()
			require.NoError(t, err)
			require.NoError(t, ValidatePrefix(sid, tc.prefix))
		})
	}
}

func FuzzParsePrefixedID(f *testing.F) {
	f.Add("pl_abc")
	f.Add("___")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		prefix, short, err := ParsePrefixedID(s)
		if err != nil {
			return
		}
		// Round trip must reproduce the input.
		if got := prefix + "_" + short; got != s {
			t.Fatalf("round trip mismatch: %q != %q", got, s)
		}
	})
}
