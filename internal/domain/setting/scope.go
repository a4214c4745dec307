package setting

// Scope identifies the level of the override cascade a setting row lives at.
type Scope string

const (
	ScopeGlobal Scope = "GLOBAL"
	ScopeTenant Scope = "TENANT"
	ScopePool   Scope = "POOL"
)

// IsValid checks if the scope is one of the three cascade levels.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeGlobal, ScopeTenant, ScopePool:
		return true
	default:
		return false
	}
}

// Source tags where a resolved value came from, so callers and audits can
// explain provenance.
type Source string

const (
	SourcePool    Source = "pool"
	SourceTenant  Source = "tenant"
	SourceGlobal  Source = "global"
	SourceDefault Source = "default"
)

// ScopeRef carries the tenant/pool SIDs addressing a scope. Empty string
// means absent.
type ScopeRef struct {
	TenantSID string
	PoolSID   string
}

// ValidateRef enforces the scope-shape invariant: GLOBAL rows carry neither
// id, TENANT rows carry the tenant id only, POOL rows carry both.
func (s Scope) ValidateRef(ref ScopeRef) error {
	switch s {
	case ScopeGlobal:
		if ref.TenantSID != "" || ref.PoolSID != "" {
			return ErrGlobalScopeIDs
		}
	case ScopeTenant:
		if ref.TenantSID == "" || ref.PoolSID != "" {
			return ErrTenantScopeIDs
		}
	case ScopePool:
		if ref.TenantSID == "" || ref.PoolSID == "" {
			return ErrPoolScopeIDs
		}
	default:
		return ErrInvalidScope
	}
	return nil
}
