package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskhive-backend/internal/features/projects/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	project.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(
	projectID uuid.UUID,
) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) ProjectExists(projectID uuid.UUID) (bool, error) {
	var project projects_models.Project

	err := storage.GetDb().Select("id").Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) GetProjectsByWorkspaceID(
	workspaceID uuid.UUID,
) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) GetPersonalProjectsByUserID(
	userID uuid.UUID,
) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Where("owner_user_id = ?", userID).
		Order("created_at ASC").
		Find(&projects).Error

	return projects, err
}
