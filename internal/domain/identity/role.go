package identity

// Role is the coarse role label carried on every user and in issued tokens
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
	RoleSalesRep   Role = "sales_rep"
	RoleAccountant Role = "accountant"
	RoleHRManager  Role = "hr_manager"
	RoleViewer     Role = "viewer"
)

// DefaultRole is assigned when registration does not name one
const DefaultRole = RoleEmployee

var validRoles = map[Role]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleManager:    true,
	RoleEmployee:   true,
	RoleSalesRep:   true,
	RoleAccountant: true,
	RoleHRManager:  true,
	RoleViewer:     true,
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the role label
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a label to a Role, falling back to DefaultRole for an
// empty label.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return DefaultRole, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return "", errInvalidRole
	}
	return r, nil
}
