package workspaces_models

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// WorkspaceInvitation is a staged membership. AddMember never applies the
// membership directly; it creates an invitation the target user accepts.
type WorkspaceInvitation struct {
	ID          uuid.UUID                 `json:"id"          gorm:"column:id;primaryKey"`
	WorkspaceID uuid.UUID                 `json:"workspaceId" gorm:"column:workspace_id;not null"`
	UserID      uuid.UUID                 `json:"userId"      gorm:"column:user_id;not null"`
	InvitedByID uuid.UUID                 `json:"invitedById" gorm:"column:invited_by_id;not null"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"column:role;not null"`
	CreatedAt   time.Time                 `json:"createdAt"   gorm:"column:created_at"`
}

func (WorkspaceInvitation) TableName() string {
	return "workspace_invitations"
}
