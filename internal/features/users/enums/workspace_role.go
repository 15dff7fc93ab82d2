package users_enums

type WorkspaceRole string

const (
	WorkspaceRoleAdmin  WorkspaceRole = "WORKSPACE_ADMIN"
	WorkspaceRoleMember WorkspaceRole = "WORKSPACE_MEMBER"
)

// IsValid validates the WorkspaceRole
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleAdmin, WorkspaceRoleMember:
		return true
	default:
		return false
	}
}
