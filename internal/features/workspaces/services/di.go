package workspaces_services

import (
	"taskhive-backend/internal/features/cascade"
	users_repositories "taskhive-backend/internal/features/users/repositories"
	users_services "taskhive-backend/internal/features/users/services"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/util/logger"
)

var workspaceService = &WorkspaceService{
	workspaceRepository:  workspaces_repositories.GetWorkspaceRepository(),
	membershipRepository: workspaces_repositories.GetMembershipRepository(),
	planner:              cascade.GetPlanner(),
	coordinator:          cascade.GetCoordinator(),
	logger:               logger.GetLogger(),
}

var membershipService = &MembershipService{
	membershipRepository: workspaces_repositories.GetMembershipRepository(),
	invitationRepository: workspaces_repositories.GetInvitationRepository(),
	workspaceRepository:  workspaces_repositories.GetWorkspaceRepository(),
	userRepository:       users_repositories.GetUserRepository(),
	userService:          users_services.GetUserService(),
	planner:              cascade.GetPlanner(),
	coordinator:          cascade.GetCoordinator(),
	logger:               logger.GetLogger(),
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
