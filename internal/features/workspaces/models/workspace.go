package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	Name        string    `json:"name"        gorm:"column:name;not null"`
	Description string    `json:"description" gorm:"column:description"`
	CreatorID   uuid.UUID `json:"creatorId"   gorm:"column:creator_id;not null"`

	// ProjectIDs is a derived index over the projects owned by this
	// workspace. The project's workspace_id column is authoritative; the
	// cascade coordinator keeps this list in sync.
	ProjectIDs []uuid.UUID `json:"projectIds" gorm:"column:project_ids;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

func (w *Workspace) UpdateFromDTO(updateDTO *Workspace) {
	w.Name = updateDTO.Name
	w.Description = updateDTO.Description
	w.UpdatedAt = time.Now().UTC()
}
