package projects_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project is either team-owned (WorkspaceID set) or personal (OwnerUserID
// set) - never both, never neither. Personal projects act as a user's inbox
// and carry no project-level memberships.
type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	Name        string    `json:"name"        gorm:"column:name;not null"`
	Description string    `json:"description" gorm:"column:description"`
	Color       string    `json:"color"       gorm:"column:color"`
	Icon        string    `json:"icon"        gorm:"column:icon"`

	WorkspaceID *uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	OwnerUserID *uuid.UUID `json:"ownerUserId" gorm:"column:owner_user_id"`
	CreatorID   uuid.UUID  `json:"creatorId"   gorm:"column:creator_id;not null"`

	// TaskIDs is a derived index; the task's project_id column is
	// authoritative.
	TaskIDs []uuid.UUID `json:"taskIds" gorm:"column:task_ids;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsPersonal() bool {
	return p.WorkspaceID == nil
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return errors.New("project name is required")
	}

	if p.WorkspaceID == nil && p.OwnerUserID == nil {
		return errors.New("project must be owned by a workspace or a user")
	}

	if p.WorkspaceID != nil && p.OwnerUserID != nil {
		return errors.New("project cannot be owned by both a workspace and a user")
	}

	return nil
}
