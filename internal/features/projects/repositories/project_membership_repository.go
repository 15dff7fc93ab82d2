package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskhive-backend/internal/features/projects/models"
	users_enums "taskhive-backend/internal/features/users/enums"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectMembershipRepository struct{}

func (r *ProjectMembershipRepository) CreateMembership(
	membership *projects_models.ProjectMembership,
) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

// GetMembershipByUserAndProject returns (nil, nil) when the user is not a
// member.
func (r *ProjectMembershipRepository) GetMembershipByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	var membership projects_models.ProjectMembership

	err := storage.GetDb().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *ProjectMembershipRepository) GetProjectMembers(
	projectID uuid.UUID,
) ([]*projects_models.ProjectMembership, error) {
	var members []*projects_models.ProjectMembership

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("joined_at ASC, id ASC").
		Find(&members).Error

	return members, err
}

// GetMembershipsByUserAndWorkspace returns the user's memberships in every
// team project of the given workspace.
func (r *ProjectMembershipRepository) GetMembershipsByUserAndWorkspace(
	userID, workspaceID uuid.UUID,
) ([]*projects_models.ProjectMembership, error) {
	var members []*projects_models.ProjectMembership

	err := storage.GetDb().
		Table("project_memberships pm").
		Select("pm.*").
		Joins("JOIN projects p ON p.id = pm.project_id").
		Where("pm.user_id = ? AND p.workspace_id = ?", userID, workspaceID).
		Scan(&members).Error

	return members, err
}

func (r *ProjectMembershipRepository) UpdateMemberRole(
	userID, projectID uuid.UUID,
	role users_enums.ProjectRole,
) error {
	return storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Update("role", role).Error
}
