package projects_services_test

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

func createUser(t *testing.T) *users_models.User {
	response := users_testing.CreateTestUser(users_enums.UserRoleMember)

	user, err := users_services.GetUserService().GetUserByID(response.UserID)
	require.NoError(t, err)

	return user
}

func createWorkspace(t *testing.T, admin *users_models.User) *workspaces_models.Workspace {
	workspace, err := workspaces_services.GetWorkspaceService().
		CreateWorkspace(admin, &workspaces_dto.CreateWorkspaceRequest{Name: "project test workspace"})
	require.NoError(t, err)

	return workspace
}

func Test_CreateProject_PersonalProjectHasOwnerNotWorkspace(t *testing.T) {
	user := createUser(t)

	project, err := projects_services.GetProjectService().
		CreateProject(user, &projects_dto.CreateProjectRequest{Name: "inbox"})
	require.NoError(t, err)

	assert.True(t, project.IsPersonal())
	assert.Nil(t, project.WorkspaceID)
	require.NotNil(t, project.OwnerUserID)
	assert.Equal(t, user.ID, *project.OwnerUserID)
}

func Test_CreateProject_UnknownWorkspaceIsDanglingReference(t *testing.T) {
	user := createUser(t)
	missing := uuid.New()

	_, err := projects_services.GetProjectService().
		CreateProject(user, &projects_dto.CreateProjectRequest{
			Name:        "orphan",
			WorkspaceID: &missing,
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDanglingReference)
}

func Test_CreateProject_TeamProjectSeedsMembershipsFromWorkspace(t *testing.T) {
	admin := createUser(t)
	workspace := createWorkspace(t, admin)

	project, err := projects_services.GetProjectService().
		CreateProject(admin, &projects_dto.CreateProjectRequest{
			Name:        "team project",
			WorkspaceID: &workspace.ID,
		})
	require.NoError(t, err)

	// the creator's workspace admin role carries over
	membership, err := projects_repositories.GetProjectMembershipRepository().
		GetMembershipByUserAndProject(admin.ID, project.ID)
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.Equal(t, users_enums.FromWorkspaceRole(users_enums.WorkspaceRoleAdmin), membership.Role)

	// the workspace's derived project list grew in the same commit
	fresh, err := workspaces_repositories.GetWorkspaceRepository().GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)
	assert.Contains(t, fresh.ProjectIDs, project.ID)
}

func Test_CreateProject_NonMemberCannotCreateTeamProject(t *testing.T) {
	admin := createUser(t)
	outsider := createUser(t)
	workspace := createWorkspace(t, admin)

	_, err := projects_services.GetProjectService().
		CreateProject(outsider, &projects_dto.CreateProjectRequest{
			Name:        "not yours",
			WorkspaceID: &workspace.ID,
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func Test_DeleteProject_DetachesWorkspaceList(t *testing.T) {
	admin := createUser(t)
	workspace := createWorkspace(t, admin)

	service := projects_services.GetProjectService()

	project, err := service.CreateProject(admin, &projects_dto.CreateProjectRequest{
		Name:        "short lived",
		WorkspaceID: &workspace.ID,
	})
	require.NoError(t, err)

	summary, err := service.DeleteProject(admin, project.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.Deleted)

	exists, err := projects_repositories.GetProjectRepository().ProjectExists(project.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	fresh, err := workspaces_repositories.GetWorkspaceRepository().GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)
	assert.NotContains(t, fresh.ProjectIDs, project.ID)
}

func Test_GetProject_PersonalProjectIsPrivate(t *testing.T) {
	owner := createUser(t)
	stranger := createUser(t)

	service := projects_services.GetProjectService()

	project, err := service.CreateProject(owner, &projects_dto.CreateProjectRequest{Name: "private"})
	require.NoError(t, err)

	_, err = service.GetProject(owner, project.ID)
	require.NoError(t, err)

	_, err = service.GetProject(stranger, project.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}
