package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captchaDef(t *testing.T) Definition {
	t.Helper()
	def, ok := DefaultRegistry().Get(KeyCaptchaLevel)
	require.True(t, ok)
	return def
}

func TestNewSetting_ValidPoolOverride(t *testing.T) {
	ref := ScopeRef{TenantSID: "tn_abc", PoolSID: "pl_abc"}

	s, err := NewSetting(ScopePool, ref, captchaDef(t), "force", 7)

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NotEmpty(t, s.SID())
	assert.Equal(t, ScopePool, s.Scope())
	assert.Equal(t, "tn_abc", s.TenantSID())
	assert.Equal(t, "pl_abc", s.PoolSID())
	assert.Equal(t, KeyCaptchaLevel, s.Key())
	assert.Equal(t, "force", s.Value())
	assert.Equal(t, uint(7), s.UpdatedBy())
	assert.Equal(t, 1, s.Version())
	assert.Equal(t, SourcePool, s.Source())
}

func TestNewSetting_ScopeShapeViolation(t *testing.T) {
	_, err := NewSetting(ScopeGlobal, ScopeRef{TenantSID: "tn_abc"}, captchaDef(t), "off", 1)
	assert.ErrorIs(t, err, ErrGlobalScopeIDs)

	_, err = NewSetting(ScopeTenant, ScopeRef{}, captchaDef(t), "off", 1)
	assert.ErrorIs(t, err, ErrTenantScopeIDs)

	_, err = NewSetting(ScopePool, ScopeRef{TenantSID: "tn_abc"}, captchaDef(t), "off", 1)
	assert.ErrorIs(t, err, ErrPoolScopeIDs)
}

func TestNewSetting_InvalidValue(t *testing.T) {
	_, err := NewSetting(ScopeGlobal, ScopeRef{}, captchaDef(t), "sometimes", 1)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestUpdateValue(t *testing.T) {
	s, err := NewSetting(ScopeGlobal, ScopeRef{}, captchaDef(t), "off", 1)
	require.NoError(t, err)

	require.NoError(t, s.UpdateValue(captchaDef(t), "force", 2))
	assert.Equal(t, "force", s.Value())
	assert.Equal(t, uint(2), s.UpdatedBy())
	assert.Equal(t, 2, s.Version())

	err = s.UpdateValue(captchaDef(t), "sometimes", 2)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "force", s.Value(), "failed update must not mutate")
}

func TestSetting_Source(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		scope Scope
		want  Source
	}{
		{ScopePool, SourcePool},
		{ScopeTenant, SourceTenant},
		{ScopeGlobal, SourceGlobal},
	}
	for _, tc := range cases {
		s := ReconstructSetting(1, "set_x", tc.scope, "tn_a", "pl_a", "k", "v", ValueTypeString, 0, 1, now, now)
		assert.Equal(t, tc.want, s.Source())
	}
}

func TestSetting_TypedAccessors(t *testing.T) {
	now := time.Now().UTC()

	intRow := ReconstructSetting(1, "set_a", ScopeGlobal, "", "", KeyLeaderboardPageSize, "50", ValueTypeInt, 0, 1, now, now)
	n, err := intRow.GetIntValue()
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	boolRow := ReconstructSetting(2, "set_b", ScopeGlobal, "", "", KeyIPLoggingEnabled, "true", ValueTypeBool, 0, 1, now, now)
	b, err := boolRow.GetBoolValue()
	require.NoError(t, err)
	assert.True(t, b)

	jsonRow := ReconstructSetting(3, "set_c", ScopeGlobal, "", "", KeyRegistrationRateLimit, `{"window_sec":60,"max":10}`, ValueTypeJSON, 0, 1, now, now)
	var rl RateLimit
	require.NoError(t, jsonRow.GetJSONValue(&rl))
	assert.Equal(t, 60, rl.WindowSec)
	assert.Equal(t, 10, rl.Max)
}
