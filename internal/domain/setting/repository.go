package setting

import (
	"context"
)

// Repository defines the interface for setting override persistence.
// Absence at a scope is reported as ErrSettingNotFound so resolution can
// fall through to the next scope.
type Repository interface {
	// Get retrieves the override at exactly one scope.
	Get(ctx context.Context, scope Scope, ref ScopeRef, key string) (*Setting, error)

	// ListForScope retrieves every override visible from the given scope
	// reference: GLOBAL rows, TENANT rows for ref.TenantSID, and POOL rows
	// for ref.PoolSID.
	ListForScope(ctx context.Context, ref ScopeRef) ([]*Setting, error)

	// Upsert creates or updates an override on its natural key
	// (scope, tenant, pool, key).
	Upsert(ctx context.Context, s *Setting) error

	// Delete removes the override at the given scope, causing subsequent
	// reads to fall through.
	Delete(ctx context.Context, scope Scope, ref ScopeRef, key string) error
}
