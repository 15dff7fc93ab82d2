package workspaces_services_test

import (
	"testing"

	"taskhive-backend/internal/errs"
	projects_dto "taskhive-backend/internal/features/projects/dto"
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	projects_services "taskhive-backend/internal/features/projects/services"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_models "taskhive-backend/internal/features/users/models"
	users_services "taskhive-backend/internal/features/users/services"
	users_testing "taskhive-backend/internal/features/users/testing"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, role users_enums.UserRole) *users_models.User {
	response := users_testing.CreateTestUser(role)

	user, err := users_services.GetUserService().GetUserByID(response.UserID)
	require.NoError(t, err)

	return user
}

func createWorkspace(t *testing.T, admin *users_models.User) *workspaces_models.Workspace {
	workspace, err := workspaces_services.GetWorkspaceService().
		CreateWorkspace(admin, &workspaces_dto.CreateWorkspaceRequest{Name: "test workspace"})
	require.NoError(t, err)

	return workspace
}

// joinWorkspace runs the whole invite-accept flow for the given user.
func joinWorkspace(
	t *testing.T,
	admin *users_models.User,
	workspaceID uuid.UUID,
	user *users_models.User,
	role users_enums.WorkspaceRole,
) {
	service := workspaces_services.GetMembershipService()

	invitation, err := service.AddMember(admin, workspaceID, &workspaces_dto.AddMemberRequest{
		Email: user.Email,
		Role:  role,
	})
	require.NoError(t, err)

	_, err = service.AcceptInvitation(user, invitation.ID)
	require.NoError(t, err)
}

func Test_Membership_AcceptInvitationCreatesMembershipAtomically(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	// an existing team project must be inherited on accept
	project, err := projects_services.GetProjectService().
		CreateProject(admin, &projects_dto.CreateProjectRequest{
			Name:        "inherited project",
			WorkspaceID: &workspace.ID,
		})
	require.NoError(t, err)

	service := workspaces_services.GetMembershipService()

	invitation, err := service.AddMember(admin, workspace.ID, &workspaces_dto.AddMemberRequest{
		Email: member.Email,
		Role:  users_enums.WorkspaceRoleMember,
	})
	require.NoError(t, err)

	membership, err := service.AcceptInvitation(member, invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, users_enums.WorkspaceRoleMember, membership.Role)

	// the user's derived workspace list was extended in the same commit
	freshMember, err := users_services.GetUserService().GetUserByID(member.ID)
	require.NoError(t, err)
	assert.Contains(t, freshMember.WorkspaceIDs, workspace.ID)

	// the invitation is consumed
	pending, err := workspaces_repositories.GetInvitationRepository().
		GetInvitationByUserAndWorkspace(member.ID, workspace.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	// the team project membership was inherited from the workspace role
	projectMembership, err := projects_repositories.GetProjectMembershipRepository().
		GetMembershipByUserAndProject(member.ID, project.ID)
	require.NoError(t, err)
	require.NotNil(t, projectMembership)
	assert.Equal(t, users_enums.FromWorkspaceRole(users_enums.WorkspaceRoleMember), projectMembership.Role)
}

func Test_Membership_DuplicateInvitationIsConflict(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	service := workspaces_services.GetMembershipService()
	request := &workspaces_dto.AddMemberRequest{
		Email: member.Email,
		Role:  users_enums.WorkspaceRoleMember,
	}

	_, err := service.AddMember(admin, workspace.ID, request)
	require.NoError(t, err)

	_, err = service.AddMember(admin, workspace.ID, request)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func Test_Membership_ExistingMemberCannotBeInvitedAgain(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	joinWorkspace(t, admin, workspace.ID, member, users_enums.WorkspaceRoleMember)

	_, err := workspaces_services.GetMembershipService().
		AddMember(admin, workspace.ID, &workspaces_dto.AddMemberRequest{
			Email: member.Email,
			Role:  users_enums.WorkspaceRoleMember,
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func Test_Membership_NonAdminCannotInvite(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	outsider := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	joinWorkspace(t, admin, workspace.ID, member, users_enums.WorkspaceRoleMember)

	_, err := workspaces_services.GetMembershipService().
		AddMember(member, workspace.ID, &workspaces_dto.AddMemberRequest{
			Email: outsider.Email,
			Role:  users_enums.WorkspaceRoleMember,
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func Test_Membership_DemotingLastAdminIsRejected(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	joinWorkspace(t, admin, workspace.ID, member, users_enums.WorkspaceRoleMember)

	err := workspaces_services.GetMembershipService().
		ChangeRole(admin, workspace.ID, admin.ID, &workspaces_dto.ChangeMemberRoleRequest{
			Role: users_enums.WorkspaceRoleMember,
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvariantViolation)
}

func Test_Membership_DemotionAllowedWithSecondAdmin(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	joinWorkspace(t, admin, workspace.ID, member, users_enums.WorkspaceRoleAdmin)

	service := workspaces_services.GetMembershipService()

	err := service.ChangeRole(admin, workspace.ID, admin.ID, &workspaces_dto.ChangeMemberRoleRequest{
		Role: users_enums.WorkspaceRoleMember,
	})
	require.NoError(t, err)

	role, err := workspaces_repositories.GetMembershipRepository().
		GetUserWorkspaceRole(workspace.ID, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, users_enums.WorkspaceRoleMember, *role)
}

func Test_Membership_LastAdminCannotLeaveWhileOthersRemain(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	joinWorkspace(t, admin, workspace.ID, member, users_enums.WorkspaceRoleMember)

	_, err := workspaces_services.GetMembershipService().
		RemoveMember(admin, workspace.ID, admin.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvariantViolation)
}

func Test_Membership_SoleMemberRemovalDissolvesWorkspace(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	response, err := workspaces_services.GetMembershipService().
		RemoveMember(admin, workspace.ID, admin.ID)
	require.NoError(t, err)

	assert.True(t, response.WorkspaceDeleted)
	assert.Equal(t, string(workspaces_services.RemovalOutcomeDissolve), response.Outcome)

	exists, err := workspaces_repositories.GetWorkspaceRepository().WorkspaceExists(workspace.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// the derived workspace list on the user shrank in the same commit
	freshAdmin, err := users_services.GetUserService().GetUserByID(admin.ID)
	require.NoError(t, err)
	assert.NotContains(t, freshAdmin.WorkspaceIDs, workspace.ID)
}

func Test_Membership_ForcedAdminRemovalPromotesEarliestJoined(t *testing.T) {
	globalAdmin := createUser(t, users_enums.UserRoleAdmin)
	admin := createUser(t, users_enums.UserRoleMember)
	earliest := createUser(t, users_enums.UserRoleMember)
	later := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	joinWorkspace(t, admin, workspace.ID, earliest, users_enums.WorkspaceRoleMember)
	joinWorkspace(t, admin, workspace.ID, later, users_enums.WorkspaceRoleMember)

	response, err := workspaces_services.GetMembershipService().
		RemoveMember(globalAdmin, workspace.ID, admin.ID)
	require.NoError(t, err)

	assert.Equal(t, string(workspaces_services.RemovalOutcomePromote), response.Outcome)
	require.NotNil(t, response.PromotedUserID)
	assert.Equal(t, earliest.ID, *response.PromotedUserID)

	role, err := workspaces_repositories.GetMembershipRepository().
		GetUserWorkspaceRole(workspace.ID, earliest.ID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, *role)
}

func Test_Membership_RegularRemovalAlsoDropsProjectMemberships(t *testing.T) {
	admin := createUser(t, users_enums.UserRoleMember)
	member := createUser(t, users_enums.UserRoleMember)
	workspace := createWorkspace(t, admin)

	project, err := projects_services.GetProjectService().
		CreateProject(admin, &projects_dto.CreateProjectRequest{
			Name:        "team project",
			WorkspaceID: &workspace.ID,
		})
	require.NoError(t, err)

	joinWorkspace(t, admin, workspace.ID, member, users_enums.WorkspaceRoleMember)

	response, err := workspaces_services.GetMembershipService().
		RemoveMember(admin, workspace.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, string(workspaces_services.RemovalOutcomeRemoveOnly), response.Outcome)

	membership, err := workspaces_repositories.GetMembershipRepository().
		GetMembershipByUserAndWorkspace(member.ID, workspace.ID)
	require.NoError(t, err)
	assert.Nil(t, membership)

	projectMembership, err := projects_repositories.GetProjectMembershipRepository().
		GetMembershipByUserAndProject(member.ID, project.ID)
	require.NoError(t, err)
	assert.Nil(t, projectMembership)
}
