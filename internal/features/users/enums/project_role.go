package users_enums

type ProjectRole string

const (
	ProjectRoleAdmin  ProjectRole = "PROJECT_ADMIN"
	ProjectRoleMember ProjectRole = "PROJECT_MEMBER"
	ProjectRoleViewer ProjectRole = "PROJECT_VIEWER"
)

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleAdmin, ProjectRoleMember, ProjectRoleViewer:
		return true
	default:
		return false
	}
}

// FromWorkspaceRole maps a workspace role to the project role a member
// inherits when a team project is created.
func FromWorkspaceRole(role WorkspaceRole) ProjectRole {
	if role == WorkspaceRoleAdmin {
		return ProjectRoleAdmin
	}

	return ProjectRoleMember
}
