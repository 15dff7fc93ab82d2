package projects_models

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProjectMembership exists only for team-owned projects. When a team project
// is created it inherits the owning workspace's member list.
type ProjectMembership struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id;not null;uniqueIndex:idx_project_member"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id;not null;uniqueIndex:idx_project_member"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role;not null"`
	JoinedAt  time.Time               `json:"joinedAt"  gorm:"column:joined_at;not null"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
