package workspaces_dto

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name        string `json:"name"        binding:"required"`
	Description string `json:"description"`
}

type UpdateWorkspaceRequest struct {
	Name        string `json:"name"        binding:"required"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	Email string                    `json:"email" binding:"required,email"`
	Role  users_enums.WorkspaceRole `json:"role"  binding:"required"`
}

type ChangeMemberRoleRequest struct {
	Role users_enums.WorkspaceRole `json:"role" binding:"required"`
}

type WorkspaceMemberResponse struct {
	UserID   uuid.UUID                 `json:"userId"`
	Email    string                    `json:"email"`
	Name     string                    `json:"name"`
	Role     users_enums.WorkspaceRole `json:"role"`
	JoinedAt time.Time                 `json:"joinedAt"`
}

type InvitationResponse struct {
	ID            uuid.UUID                 `json:"id"`
	WorkspaceID   uuid.UUID                 `json:"workspaceId"`
	WorkspaceName string                    `json:"workspaceName"`
	Role          users_enums.WorkspaceRole `json:"role"`
	InvitedByID   uuid.UUID                 `json:"invitedById"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

// RemoveMemberResponse reports how a removal resolved: a plain removal, a
// removal with an auto-promoted successor, or a workspace dissolution.
type RemoveMemberResponse struct {
	Outcome          string     `json:"outcome"`
	PromotedUserID   *uuid.UUID `json:"promotedUserId,omitempty"`
	WorkspaceDeleted bool       `json:"workspaceDeleted"`
}
