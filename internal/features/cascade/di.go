package cascade

import (
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	tasks_repositories "taskhive-backend/internal/features/tasks/repositories"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/util/logger"
)

var planner = &Planner{
	workspaceRepository:         workspaces_repositories.GetWorkspaceRepository(),
	membershipRepository:        workspaces_repositories.GetMembershipRepository(),
	invitationRepository:        workspaces_repositories.GetInvitationRepository(),
	projectRepository:           projects_repositories.GetProjectRepository(),
	projectMembershipRepository: projects_repositories.GetProjectMembershipRepository(),
	taskRepository:              tasks_repositories.GetTaskRepository(),
	subtaskRepository:           tasks_repositories.GetSubtaskRepository(),
	commentRepository:           tasks_repositories.GetCommentRepository(),
}

var coordinator = &Coordinator{
	logger: logger.GetLogger(),
}

func GetPlanner() *Planner {
	return planner
}

func GetCoordinator() *Coordinator {
	return coordinator
}
