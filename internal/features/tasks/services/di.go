package tasks_services

import (
	"taskhive-backend/internal/features/cascade"
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	tasks_repositories "taskhive-backend/internal/features/tasks/repositories"
	"taskhive-backend/internal/util/logger"
)

var taskService = &TaskService{
	taskRepository:              tasks_repositories.GetTaskRepository(),
	subtaskRepository:           tasks_repositories.GetSubtaskRepository(),
	commentRepository:           tasks_repositories.GetCommentRepository(),
	projectRepository:           projects_repositories.GetProjectRepository(),
	projectMembershipRepository: projects_repositories.GetProjectMembershipRepository(),
	planner:                     cascade.GetPlanner(),
	coordinator:                 cascade.GetCoordinator(),
	logger:                      logger.GetLogger(),
}

func GetTaskService() *TaskService {
	return taskService
}
