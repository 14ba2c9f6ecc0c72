package user

type Role string

const (
	RoleParent          Role = "parent"
	RoleInstructor      Role = "instructor"
	RoleAdmin           Role = "admin"
	RoleVMRCCoordinator Role = "vmrc_coordinator"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleParent, RoleInstructor, RoleAdmin, RoleVMRCCoordinator:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// NewRoles skips nothing: one bad role invalidates the whole set.
func NewRoles(ss []string) ([]Role, error) {
	roles := make([]Role, 0, len(ss))
	for _, s := range ss {
		r, err := NewRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}
