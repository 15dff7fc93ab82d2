package projects_dto

import (
	"github.com/google/uuid"
)

// CreateProjectRequest creates a team project when WorkspaceID is set and a
// personal project otherwise.
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	WorkspaceID *uuid.UUID `json:"workspaceId"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}
