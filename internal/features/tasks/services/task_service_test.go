package tasks_services_test

import (
	"testing"

	"taskhive-backend/internal/errs"
	projects_dto "taskhive-backend/internal/features/projects/dto"
	projects_services "taskhive-backend/internal/features/projects/services"
	tasks_dto "taskhive-backend/internal/features/tasks/dto"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	tasks_repositories "taskhive-backend/internal/features/tasks/repositories"
	tasks_services "taskhive-backend/internal/features/tasks/services"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_models "taskhive-backend/internal/features/users/models"
	users_services "taskhive-backend/internal/features/users/services"
	users_testing "taskhive-backend/internal/features/users/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserWithProject(t *testing.T) (*users_models.User, uuid.UUID) {
	response := users_testing.CreateTestUser(users_enums.UserRoleMember)

	user, err := users_services.GetUserService().GetUserByID(response.UserID)
	require.NoError(t, err)

	project, err := projects_services.GetProjectService().
		CreateProject(user, &projects_dto.CreateProjectRequest{Name: "task test project"})
	require.NoError(t, err)

	return user, project.ID
}

func createTask(t *testing.T, user *users_models.User, projectID uuid.UUID) *tasks_models.Task {
	task, err := tasks_services.GetTaskService().CreateTask(user, &tasks_dto.CreateTaskRequest{
		Title:     "test task",
		ProjectID: projectID,
	})
	require.NoError(t, err)

	return task
}

func Test_CreateTask_DefaultsStatusAndPriority(t *testing.T) {
	user, projectID := createUserWithProject(t)

	task := createTask(t, user, projectID)

	assert.Equal(t, tasks_models.TaskStatusToDo, task.Status)
	assert.Equal(t, tasks_models.TaskPriorityMedium, task.Priority)
	require.NotNil(t, task.AssignerID)
	assert.Equal(t, user.ID, *task.AssignerID)
}

func Test_CreateTask_MissingProjectIsDanglingReference(t *testing.T) {
	user, _ := createUserWithProject(t)

	_, err := tasks_services.GetTaskService().CreateTask(user, &tasks_dto.CreateTaskRequest{
		Title:     "orphan task",
		ProjectID: uuid.New(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDanglingReference)
}

func Test_CreateSubtask_MissingTaskIsDanglingReference(t *testing.T) {
	user, _ := createUserWithProject(t)

	_, err := tasks_services.GetTaskService().CreateSubtask(user, &tasks_dto.CreateSubtaskRequest{
		Title:  "orphan subtask",
		TaskID: uuid.New(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDanglingReference)
}

func Test_CreateComment_AppendsToParentList(t *testing.T) {
	user, projectID := createUserWithProject(t)
	task := createTask(t, user, projectID)

	service := tasks_services.GetTaskService()

	comment, err := service.CreateComment(user, &tasks_dto.CreateCommentRequest{
		Content:    "looks good",
		ParentID:   task.ID,
		ParentType: tasks_models.CommentParentTask,
	})
	require.NoError(t, err)

	fresh, err := tasks_repositories.GetTaskRepository().GetTaskByID(task.ID)
	require.NoError(t, err)
	assert.Contains(t, fresh.CommentIDs, comment.ID)
}

func Test_CreateComment_OnMissingParentFails(t *testing.T) {
	user, _ := createUserWithProject(t)

	_, err := tasks_services.GetTaskService().CreateComment(user, &tasks_dto.CreateCommentRequest{
		Content:    "into the void",
		ParentID:   uuid.New(),
		ParentType: tasks_models.CommentParentTask,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDanglingReference)
}

func Test_DeleteComment_DetachesFromParent(t *testing.T) {
	user, projectID := createUserWithProject(t)
	task := createTask(t, user, projectID)

	service := tasks_services.GetTaskService()

	comment, err := service.CreateComment(user, &tasks_dto.CreateCommentRequest{
		Content:    "temporary",
		ParentID:   task.ID,
		ParentType: tasks_models.CommentParentTask,
	})
	require.NoError(t, err)

	summary, err := service.DeleteComment(user, comment.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Deleted, 1)

	fresh, err := tasks_repositories.GetTaskRepository().GetTaskByID(task.ID)
	require.NoError(t, err)
	assert.NotContains(t, fresh.CommentIDs, comment.ID)
}

func Test_DeleteComment_StrangerIsRejected(t *testing.T) {
	author, projectID := createUserWithProject(t)
	stranger, _ := createUserWithProject(t)
	task := createTask(t, author, projectID)

	service := tasks_services.GetTaskService()

	comment, err := service.CreateComment(author, &tasks_dto.CreateCommentRequest{
		Content:    "mine",
		ParentID:   task.ID,
		ParentType: tasks_models.CommentParentTask,
	})
	require.NoError(t, err)

	_, err = service.DeleteComment(stranger, comment.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func Test_DeleteTask_CascadesToSubtasksAndComments(t *testing.T) {
	user, projectID := createUserWithProject(t)
	task := createTask(t, user, projectID)

	service := tasks_services.GetTaskService()

	subtask, err := service.CreateSubtask(user, &tasks_dto.CreateSubtaskRequest{
		Title:  "step one",
		TaskID: task.ID,
	})
	require.NoError(t, err)

	_, err = service.CreateComment(user, &tasks_dto.CreateCommentRequest{
		Content:    "on the subtask",
		ParentID:   subtask.ID,
		ParentType: tasks_models.CommentParentSubtask,
	})
	require.NoError(t, err)

	summary, err := service.DeleteTask(user, task.ID)
	require.NoError(t, err)

	// task, subtask and the comment all went down together
	assert.Len(t, summary.Deleted, 3)

	_, err = tasks_repositories.GetSubtaskRepository().GetSubtaskByID(subtask.ID)
	require.Error(t, err)

	_, err = service.GetTask(user, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func Test_DeleteTask_AlreadyDeletedIsNotFound(t *testing.T) {
	user, projectID := createUserWithProject(t)
	task := createTask(t, user, projectID)

	service := tasks_services.GetTaskService()

	_, err := service.DeleteTask(user, task.ID)
	require.NoError(t, err)

	_, err = service.DeleteTask(user, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
