package models

// UserRole роль того, кто смотрит экран администрирования (из JWT).
type UserRole string

const (
	RoleSuperAdmin        UserRole = "super_administrator"
	RoleAdmin             UserRole = "administrator"
	RoleInstructor        UserRole = "instructor"
	RoleTeachingAssistant UserRole = "teaching_assistant"
	RoleStudent           UserRole = "student"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleInstructor, RoleTeachingAssistant, RoleStudent:
		return true
	default:
		return false
	}
}

// IsHighestPrivilege reports whether the viewer may see institution data.
func (r UserRole) IsHighestPrivilege() bool {
	return r == RoleSuperAdmin
}
