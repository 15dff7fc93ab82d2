package workspaces_controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	users_enums "taskhive-backend/internal/features/users/enums"
	users_testing "taskhive-backend/internal/features/users/testing"
	workspaces_controllers "taskhive-backend/internal/features/workspaces/controllers"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_testing "taskhive-backend/internal/features/workspaces/testing"
	util_testing "taskhive-backend/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WorkspaceLifecycle_ViaAPI(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
	)

	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	// create
	resp := util_testing.MakeAPIRequest(router, "POST", "/api/v1/workspaces",
		workspaces_dto.CreateWorkspaceRequest{Name: "api workspace"}, owner.Token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var workspace workspaces_models.Workspace
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &workspace))
	assert.Equal(t, "api workspace", workspace.Name)

	// read back
	resp = util_testing.MakeAPIRequest(router, "GET",
		fmt.Sprintf("/api/v1/workspaces/%s", workspace.ID), nil, owner.Token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// update
	resp = util_testing.MakeAPIRequest(router, "PUT",
		fmt.Sprintf("/api/v1/workspaces/%s", workspace.ID),
		workspaces_dto.UpdateWorkspaceRequest{Name: "renamed workspace"}, owner.Token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated workspaces_models.Workspace
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "renamed workspace", updated.Name)

	// delete
	resp = util_testing.MakeAPIRequest(router, "DELETE",
		fmt.Sprintf("/api/v1/workspaces/%s", workspace.ID), nil, owner.Token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = util_testing.MakeAPIRequest(router, "GET",
		fmt.Sprintf("/api/v1/workspaces/%s", workspace.ID), nil, owner.Token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func Test_Workspace_NonMemberGetsForbidden(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
	)

	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	stranger := users_testing.CreateTestUser(users_enums.UserRoleMember)

	resp := util_testing.MakeAPIRequest(router, "POST", "/api/v1/workspaces",
		workspaces_dto.CreateWorkspaceRequest{Name: "private workspace"}, owner.Token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var workspace workspaces_models.Workspace
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &workspace))

	resp = util_testing.MakeAPIRequest(router, "GET",
		fmt.Sprintf("/api/v1/workspaces/%s", workspace.ID), nil, stranger.Token)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = util_testing.MakeAPIRequest(router, "DELETE",
		fmt.Sprintf("/api/v1/workspaces/%s", workspace.ID), nil, stranger.Token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func Test_Workspace_InvalidIDIsBadRequest(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
	)

	user := users_testing.CreateTestUser(users_enums.UserRoleMember)

	resp := util_testing.MakeAPIRequest(router, "GET",
		"/api/v1/workspaces/not-a-uuid", nil, user.Token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid workspace ID")
}

func Test_Workspace_RequestWithoutTokenIsUnauthorized(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
	)

	resp := util_testing.MakeAPIRequest(router, "GET", "/api/v1/workspaces", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
