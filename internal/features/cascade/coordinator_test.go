package cascade_test

import (
	"errors"
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

func Test_Apply_DeletesSubtreeAndDetachesParentList(t *testing.T) {
	tree := seedTree(t)
	db := storage.GetDb()

	plan, err := cascade.GetPlanner().PlanDeleteTask(tree.task.ID)
	require.NoError(t, err)

	summary, err := cascade.GetCoordinator().Apply(plan)
	require.NoError(t, err)

	// task, subtask and both comments are gone
	assert.Len(t, summary.Deleted, 4)
	assert.Empty(t, summary.Skipped)

	var count int64
	require.NoError(t, db.Model(&tasks_models.Task{}).
		Where("id = ?", tree.task.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, db.Model(&tasks_models.Comment{}).
		Where("parent_id IN ?", []uuid.UUID{tree.task.ID, tree.subtask.ID}).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var project projects_models.Project
	require.NoError(t, db.Where("id = ?", tree.project.ID).First(&project).Error)
	assert.NotContains(t, project.TaskIDs, tree.task.ID)
}

func Test_Apply_ReplayingDeletePlanRecordsSkips(t *testing.T) {
	tree := seedTree(t)

	plan, err := cascade.GetPlanner().PlanDeleteTask(tree.task.ID)
	require.NoError(t, err)

	_, err = cascade.GetCoordinator().Apply(plan)
	require.NoError(t, err)

	// deleting already absent rows is not an error
	summary, err := cascade.GetCoordinator().Apply(plan)
	require.NoError(t, err)

	assert.Empty(t, summary.Deleted)
	assert.Len(t, summary.Skipped, len(plan.Steps))
}

func Test_Apply_MissingUpdateTargetRollsBackEverything(t *testing.T) {
	tree := seedTree(t)
	db := storage.GetDb()

	plan := &cascade.CascadePlan{Intent: "RemoveMember"}
	plan.Steps = []cascade.Step{
		{Entity: tree.membership.ID, Type: cascade.EntityWorkspaceMembership, Op: cascade.OpDelete},
		{
			Entity: uuid.New(), // no such membership
			Type:   cascade.EntityWorkspaceMembership,
			Op:     cascade.OpUpdateField,
			Field:  "role",
			Value:  "ADMIN",
		},
	}

	_, err := cascade.GetCoordinator().Apply(plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, errors.Is(err, errs.ErrTransactionAborted))

	// the delete step that ran before the conflict was rolled back
	var count int64
	require.NoError(t, db.Model(&workspaces_models.WorkspaceMembership{}).
		Where("id = ?", tree.membership.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_Apply_DetachOnGoneParentIsSkipped(t *testing.T) {
	util_testing.EnsureTestDb()

	plan := &cascade.CascadePlan{Intent: "DeleteComment"}
	plan.Steps = []cascade.Step{
		{
			Entity:   uuid.New(), // parent task does not exist
			Type:     cascade.EntityTask,
			Op:       cascade.OpDetach,
			Field:    "comment_ids",
			DetachID: uuid.New(),
		},
	}

	summary, err := cascade.GetCoordinator().Apply(plan)
	require.NoError(t, err)

	assert.Len(t, summary.Skipped, 1)
	assert.Empty(t, summary.Updated)
}

func Test_Apply_PromotionStepUpdatesRole(t *testing.T) {
	tree := seedTree(t)
	db := storage.GetDb()

	member := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		WorkspaceID: tree.workspace.ID,
		Role:        users_enums.WorkspaceRoleMember,
		JoinedAt:    tree.membership.JoinedAt.Add(time.Second),
	}
	require.NoError(t, db.Create(member).Error)

	plan, err := cascade.GetPlanner().
		PlanRemoveMember(tree.workspace.ID, tree.membership.UserID, &member.UserID)
	require.NoError(t, err)

	summary, err := cascade.GetCoordinator().Apply(plan)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.Updated)

	var promoted workspaces_models.WorkspaceMembership
	require.NoError(t, db.Where("id = ?", member.ID).First(&promoted).Error)
	assert.True(t, promoted.IsAdmin())
}
