package approval

// Role identifies a reviewer office that can sign off on a form.
type Role string

const (
	RoleComEx Role = "commex"
	RoleDean  Role = "dean"
	RoleASD   Role = "asd"
	RoleAD    Role = "ad"
)

// Roles returns every reviewer role in canonical display order.
func Roles() []Role {
	return []Role{RoleComEx, RoleDean, RoleASD, RoleAD}
}

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleComEx, RoleDean, RoleASD, RoleAD:
		return Role(s), true
	}
	return "", false
}

// RoleCategory classifies the submitter of a form. The required reviewer
// sequence depends on it.
type RoleCategory string

const (
	CategoryStudent      RoleCategory = "student"
	CategoryFaculty      RoleCategory = "faculty"
	CategoryOrganization RoleCategory = "organization"
)

func ParseRoleCategory(s string) (RoleCategory, bool) {
	switch RoleCategory(s) {
	case CategoryStudent, CategoryFaculty, CategoryOrganization:
		return RoleCategory(s), true
	}
	return "", false
}
