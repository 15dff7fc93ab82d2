package cascade_test

import (
	"testing"
	"time"

	"taskhive-backend/internal/errs"
	"taskhive-backend/internal/features/cascade"
	projects_models "taskhive-backend/internal/features/projects/models"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	users_enums "taskhive-backend/internal/features/users/enums"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	"taskhive-backend/internal/storage"
	util_testing "taskhive-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seededTree struct {
	workspace      *workspaces_models.Workspace
	membership     *workspaces_models.WorkspaceMembership
	project        *projects_models.Project
	task           *tasks_models.Task
	subtask        *tasks_models.Subtask
	taskComment    *tasks_models.Comment
	subtaskComment *tasks_models.Comment
}

// seedTree creates one full ownership chain directly in the database:
// workspace -> project -> task -> subtask, with a comment on both the task
// and the subtask.
func seedTree(t *testing.T) *seededTree {
	util_testing.EnsureTestDb()
	db := storage.GetDb()
	now := time.Now().UTC()

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      "planner test workspace",
		CreatorID: uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(workspace).Error)

	membership := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      workspace.CreatorID,
		WorkspaceID: workspace.ID,
		Role:        users_enums.WorkspaceRoleAdmin,
		JoinedAt:    now,
	}
	require.NoError(t, db.Create(membership).Error)

	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        "planner test project",
		WorkspaceID: &workspace.ID,
		CreatorID:   workspace.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(project).Error)

	workspace.ProjectIDs = []uuid.UUID{project.ID}
	require.NoError(t, db.Save(workspace).Error)

	task := &tasks_models.Task{
		ID:        uuid.New(),
		Title:     "planner test task",
		Status:    tasks_models.TaskStatusToDo,
		Priority:  tasks_models.TaskPriorityMedium,
		ProjectID: project.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(task).Error)

	project.TaskIDs = []uuid.UUID{task.ID}
	require.NoError(t, db.Save(project).Error)

	subtask := &tasks_models.Subtask{
		ID:        uuid.New(),
		Title:     "planner test subtask",
		Status:    tasks_models.TaskStatusToDo,
		Priority:  tasks_models.TaskPriorityLow,
		TaskID:    task.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(subtask).Error)

	taskComment := &tasks_models.Comment{
		ID:         uuid.New(),
		Content:    "on the task",
		AuthorID:   workspace.CreatorID,
		ParentID:   task.ID,
		ParentType: tasks_models.CommentParentTask,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(taskComment).Error)

	subtaskComment := &tasks_models.Comment{
		ID:         uuid.New(),
		Content:    "on the subtask",
		AuthorID:   workspace.CreatorID,
		ParentID:   subtask.ID,
		ParentType: tasks_models.CommentParentSubtask,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(subtaskComment).Error)

	task.SubtaskIDs = []uuid.UUID{subtask.ID}
	task.CommentIDs = []uuid.UUID{taskComment.ID}
	require.NoError(t, db.Save(task).Error)

	subtask.CommentIDs = []uuid.UUID{subtaskComment.ID}
	require.NoError(t, db.Save(subtask).Error)

	return &seededTree{
		workspace:      workspace,
		membership:     membership,
		project:        project,
		task:           task,
		subtask:        subtask,
		taskComment:    taskComment,
		subtaskComment: subtaskComment,
	}
}

func stepIndex(plan *cascade.CascadePlan, op cascade.Op, entityID uuid.UUID) int {
	for i, step := range plan.Steps {
		if step.Op == op && step.Entity == entityID {
			return i
		}
	}

	return -1
}

func Test_PlanDeleteTask_ChildrenPrecedeParent(t *testing.T) {
	tree := seedTree(t)

	plan, err := cascade.GetPlanner().PlanDeleteTask(tree.task.ID)
	require.NoError(t, err)

	taskIdx := stepIndex(plan, cascade.OpDelete, tree.task.ID)
	subtaskIdx := stepIndex(plan, cascade.OpDelete, tree.subtask.ID)
	taskCommentIdx := stepIndex(plan, cascade.OpDelete, tree.taskComment.ID)
	subtaskCommentIdx := stepIndex(plan, cascade.OpDelete, tree.subtaskComment.ID)

	require.GreaterOrEqual(t, taskIdx, 0)
	require.GreaterOrEqual(t, subtaskIdx, 0)
	require.GreaterOrEqual(t, taskCommentIdx, 0)
	require.GreaterOrEqual(t, subtaskCommentIdx, 0)

	assert.Less(t, taskCommentIdx, taskIdx)
	assert.Less(t, subtaskCommentIdx, subtaskIdx)
	assert.Less(t, subtaskIdx, taskIdx)

	// the owning project sheds the task id after the task row is gone
	detachIdx := stepIndex(plan, cascade.OpDetach, tree.project.ID)
	require.GreaterOrEqual(t, detachIdx, 0)
	assert.Greater(t, detachIdx, taskIdx)
	assert.Equal(t, tree.task.ID, plan.Steps[detachIdx].DetachID)
}

func Test_PlanDeleteTask_DanglingSubtaskIDBecomesSkip(t *testing.T) {
	tree := seedTree(t)
	db := storage.GetDb()

	dangling := uuid.New()
	tree.task.SubtaskIDs = append(tree.task.SubtaskIDs, dangling)
	require.NoError(t, db.Save(tree.task).Error)

	plan, err := cascade.GetPlanner().PlanDeleteTask(tree.task.ID)
	require.NoError(t, err)

	skipIdx := stepIndex(plan, cascade.OpSkip, dangling)
	require.GreaterOrEqual(t, skipIdx, 0)
	assert.Equal(t, cascade.EntitySubtask, plan.Steps[skipIdx].Type)

	// the real subtask is still deleted, not skipped
	assert.GreaterOrEqual(t, stepIndex(plan, cascade.OpDelete, tree.subtask.ID), 0)
}

func Test_PlanDeleteWorkspace_CoversWholeSubtree(t *testing.T) {
	tree := seedTree(t)

	plan, err := cascade.GetPlanner().PlanDeleteWorkspace(tree.workspace.ID)
	require.NoError(t, err)

	workspaceIdx := stepIndex(plan, cascade.OpDelete, tree.workspace.ID)
	projectIdx := stepIndex(plan, cascade.OpDelete, tree.project.ID)
	taskIdx := stepIndex(plan, cascade.OpDelete, tree.task.ID)
	membershipIdx := stepIndex(plan, cascade.OpDelete, tree.membership.ID)

	require.GreaterOrEqual(t, workspaceIdx, 0)
	require.GreaterOrEqual(t, projectIdx, 0)
	require.GreaterOrEqual(t, taskIdx, 0)
	require.GreaterOrEqual(t, membershipIdx, 0)

	assert.Less(t, taskIdx, projectIdx)
	assert.Less(t, projectIdx, workspaceIdx)
	assert.Less(t, membershipIdx, workspaceIdx)

	// each former member loses the workspace from their derived list last
	detachIdx := stepIndex(plan, cascade.OpDetach, tree.membership.UserID)
	require.GreaterOrEqual(t, detachIdx, 0)
	assert.Greater(t, detachIdx, workspaceIdx)
	assert.Equal(t, cascade.EntityUser, plan.Steps[detachIdx].Type)
}

func Test_PlanDeleteComment_MissingCommentIsNotFound(t *testing.T) {
	util_testing.EnsureTestDb()

	_, err := cascade.GetPlanner().PlanDeleteComment(uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func Test_PlanRemoveMember_WithPromotionAddsUpdateStep(t *testing.T) {
	tree := seedTree(t)
	db := storage.GetDb()

	successor := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		WorkspaceID: tree.workspace.ID,
		Role:        users_enums.WorkspaceRoleMember,
		JoinedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(successor).Error)

	plan, err := cascade.GetPlanner().
		PlanRemoveMember(tree.workspace.ID, tree.membership.UserID, &successor.UserID)
	require.NoError(t, err)

	promoteIdx := stepIndex(plan, cascade.OpUpdateField, successor.ID)
	require.GreaterOrEqual(t, promoteIdx, 0)
	assert.Equal(t, "role", plan.Steps[promoteIdx].Field)
	assert.Equal(t, string(users_enums.WorkspaceRoleAdmin), plan.Steps[promoteIdx].Value)

	// the removal itself comes before the promotion
	removeIdx := stepIndex(plan, cascade.OpDelete, tree.membership.ID)
	require.GreaterOrEqual(t, removeIdx, 0)
	assert.Less(t, removeIdx, promoteIdx)
}

func Test_PlanRemoveMember_VanishedSuccessorIsConflict(t *testing.T) {
	tree := seedTree(t)

	vanished := uuid.New()
	_, err := cascade.GetPlanner().
		PlanRemoveMember(tree.workspace.ID, tree.membership.UserID, &vanished)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
}
