package authorization

type UserRole string

const (
	// RoleSuperadmin operates platform-wide and owns GLOBAL settings.
	RoleSuperadmin UserRole = "superadmin"
	// RoleTenantAdmin administers one tenant's pools, settings and credentials.
	RoleTenantAdmin UserRole = "tenant_admin"
	// RolePlayer registers into pools and submits predictions.
	RolePlayer UserRole = "player"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSuperadmin() bool {
	return r == RoleSuperadmin
}

func (r UserRole) IsTenantAdmin() bool {
	return r == RoleTenantAdmin || r == RoleSuperadmin
}

func (r UserRole) IsValid() bool {
	return r == RoleSuperadmin || r == RoleTenantAdmin || r == RolePlayer
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RolePlayer
}
