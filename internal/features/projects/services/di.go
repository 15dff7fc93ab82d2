package projects_services

import (
	"taskhive-backend/internal/features/cascade"
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/util/logger"
)

var projectService = &ProjectService{
	projectRepository:           projects_repositories.GetProjectRepository(),
	projectMembershipRepository: projects_repositories.GetProjectMembershipRepository(),
	workspaceRepository:         workspaces_repositories.GetWorkspaceRepository(),
	membershipRepository:        workspaces_repositories.GetMembershipRepository(),
	planner:                     cascade.GetPlanner(),
	coordinator:                 cascade.GetCoordinator(),
	logger:                      logger.GetLogger(),
}

func GetProjectService() *ProjectService {
	return projectService
}
