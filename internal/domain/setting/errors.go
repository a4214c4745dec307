package setting

import "errors"

var (
	// ErrSettingNotFound is returned when no override exists at the
	// requested scope. Resolution treats it as "fall through".
	ErrSettingNotFound = errors.New("setting not found")

	// ErrUnknownSettingKey is returned when the key is not in the registry
	ErrUnknownSettingKey = errors.New("unknown setting key")

	// ErrInvalidValue is returned when a value fails the key's declared shape
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrInvalidScope is returned when the scope is not GLOBAL/TENANT/POOL
	ErrInvalidScope = errors.New("invalid setting scope")
)

// Scope-shape violations carry the exact messages of the external contract.
var (
	ErrGlobalScopeIDs = errors.New("Global settings cannot have tenantId")
	ErrTenantScopeIDs = errors.New("Tenant settings must have tenantId")
	ErrPoolScopeIDs   = errors.New("Pool settings must have both tenantId and poolId")
)
