package workspaces_models

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// WorkspaceMembership attaches a user to a workspace with a role. One
// membership per (user, workspace). While the workspace has members, at
// least one of them holds the admin role.
type WorkspaceMembership struct {
	ID          uuid.UUID                 `json:"id"          gorm:"column:id;primaryKey"`
	UserID      uuid.UUID                 `json:"userId"      gorm:"column:user_id;not null;uniqueIndex:idx_workspace_member"`
	WorkspaceID uuid.UUID                 `json:"workspaceId" gorm:"column:workspace_id;not null;uniqueIndex:idx_workspace_member"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"column:role;not null"`
	JoinedAt    time.Time                 `json:"joinedAt"    gorm:"column:joined_at;not null"`
}

func (WorkspaceMembership) TableName() string {
	return "workspace_memberships"
}

func (m *WorkspaceMembership) IsAdmin() bool {
	return m.Role == users_enums.WorkspaceRoleAdmin
}
