package identity

// Role is the closed set of roles recognized by the system.
// SUPER_ADMIN is the only role exempt from tenant scoping.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleTenantAdmin Role = "TENANT_ADMIN"
	RoleTeacher     Role = "TEACHER"
	RoleStudent     Role = "STUDENT"
)

// Valid reports whether the role is one of the recognized values
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// TenantScoped reports whether rows visible to this role must be
// filtered by the caller's tenant
func (r Role) TenantScoped() bool {
	return r != RoleSuperAdmin
}

// Administrative reports whether the role may manage tenant resources
func (r Role) Administrative() bool {
	return r == RoleSuperAdmin || r == RoleTenantAdmin
}

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}
