package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_IsValid(t *testing.T) {
	assert.True(t, ScopeGlobal.IsValid())
	assert.True(t, ScopeTenant.IsValid())
	assert.True(t, ScopePool.IsValid())
	assert.False(t, Scope("BRAND").IsValid())
	assert.False(t, Scope("").IsValid())
}

func TestValidateRef_Global(t *testing.T) {
	require.NoError(t, ScopeGlobal.ValidateRef(ScopeRef{}))

	err := ScopeGlobal.ValidateRef(ScopeRef{TenantSID: "tn_abc"})
	require.Error(t, err)
	assert.Equal(t, "Global settings cannot have tenantId", err.Error())

	err = ScopeGlobal.ValidateRef(ScopeRef{PoolSID: "pl_abc"})
	require.ErrorIs(t, err, ErrGlobalScopeIDs)
}

func TestValidateRef_Tenant(t *testing.T) {
	require.NoError(t, ScopeTenant.ValidateRef(ScopeRef{TenantSID: "tn_abc"}))

	err := ScopeTenant.ValidateRef(ScopeRef{})
	require.Error(t, err)
	assert.Equal(t, "Tenant settings must have tenantId", err.Error())

	// A pool id at TENANT scope is the same shape violation.
	err = ScopeTenant.ValidateRef(ScopeRef{TenantSID: "tn_abc", PoolSID: "pl_abc"})
	require.ErrorIs(t, err, ErrTenantScopeIDs)
}

func TestValidateRef_Pool(t *testing.T) {
	require.NoError(t, ScopePool.ValidateRef(ScopeRef{TenantSID: "tn_abc", PoolSID: "pl_abc"}))

	err := ScopePool.ValidateRef(ScopeRef{TenantSID: "tn_abc"})
	require.Error(t, err)
	assert.Equal(t, "Pool settings must have both tenantId and poolId", err.Error())

	err = ScopePool.ValidateRef(ScopeRef{PoolSID: "pl_abc"})
	require.ErrorIs(t, err, ErrPoolScopeIDs)
}

func TestValidateRef_UnknownScope(t *testing.T) {
	err := Scope("BRAND").ValidateRef(ScopeRef{})
	assert.ErrorIs(t, err, ErrInvalidScope)
}
