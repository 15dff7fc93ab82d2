package cascade

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskhive-backend/internal/errs"
	projects_models "taskhive-backend/internal/features/projects/models"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	users_models "taskhive-backend/internal/features/users/models"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coordinator applies a CascadePlan inside a single database transaction.
// Either every step lands or none do. Deleting a row that is already gone
// is recorded as skipped, a missing update target aborts with a conflict.
type Coordinator struct {
	logger *slog.Logger
}

func (c *Coordinator) Apply(plan *CascadePlan) (*AppliedSummary, error) {
	summary := &AppliedSummary{Intent: plan.Intent}

	startedAt := time.Now()

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		for _, step := range plan.Steps {
			if err := c.applyStep(tx, step, summary); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.logger.Error("cascade plan rolled back",
			"intent", plan.Intent, "steps", len(plan.Steps), "error", err)

		if errors.Is(err, errs.ErrConflict) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	c.logger.Info("cascade plan committed",
		"intent", plan.Intent,
		"deleted", len(summary.Deleted),
		"updated", len(summary.Updated),
		"skipped", len(summary.Skipped),
		"durationMs", time.Since(startedAt).Milliseconds())

	return summary, nil
}

func (c *Coordinator) applyStep(tx *gorm.DB, step Step, summary *AppliedSummary) error {
	ref := EntityRef{Type: step.Type, ID: step.Entity}

	switch step.Op {
	case OpSkip:
		summary.Skipped = append(summary.Skipped, ref)
		return nil

	case OpDelete:
		model, err := modelFor(step.Type)
		if err != nil {
			return err
		}

		result := tx.Where("id = ?", step.Entity).Delete(model)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			summary.Skipped = append(summary.Skipped, ref)
		} else {
			summary.Deleted = append(summary.Deleted, ref)
		}

		return nil

	case OpDetach:
		changed, err := c.applyDetach(tx, step)
		if err != nil {
			return err
		}

		if changed {
			summary.Updated = append(summary.Updated, ref)
		} else {
			summary.Skipped = append(summary.Skipped, ref)
		}

		return nil

	case OpUpdateField:
		model, err := modelFor(step.Type)
		if err != nil {
			return err
		}

		result := tx.Model(model).Where("id = ?", step.Entity).Update(step.Field, step.Value)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s %s vanished before update",
				errs.ErrConflict, step.Type, step.Entity)
		}

		summary.Updated = append(summary.Updated, ref)

		return nil

	default:
		return fmt.Errorf("unknown cascade op %q", step.Op)
	}
}

// applyDetach reloads the parent inside the transaction, drops DetachID
// from its id list and saves it back. A parent that is gone, or a list
// that never held the id, counts as skipped.
func (c *Coordinator) applyDetach(tx *gorm.DB, step Step) (bool, error) {
	switch step.Type {
	case EntityWorkspace:
		var workspace workspaces_models.Workspace
		if err := tx.Where("id = ?", step.Entity).First(&workspace).Error; err != nil {
			return skipIfNotFound(err)
		}

		list, changed := removeUUID(workspace.ProjectIDs, step.DetachID)
		if !changed {
			return false, nil
		}
		workspace.ProjectIDs = list

		return true, tx.Save(&workspace).Error

	case EntityProject:
		var project projects_models.Project
		if err := tx.Where("id = ?", step.Entity).First(&project).Error; err != nil {
			return skipIfNotFound(err)
		}

		list, changed := removeUUID(project.TaskIDs, step.DetachID)
		if !changed {
			return false, nil
		}
		project.TaskIDs = list

		return true, tx.Save(&project).Error

	case EntityTask:
		var task tasks_models.Task
		if err := tx.Where("id = ?", step.Entity).First(&task).Error; err != nil {
			return skipIfNotFound(err)
		}

		var changed bool
		switch step.Field {
		case FieldSubtaskIDs:
			task.SubtaskIDs, changed = removeUUID(task.SubtaskIDs, step.DetachID)
		case FieldCommentIDs:
			task.CommentIDs, changed = removeUUID(task.CommentIDs, step.DetachID)
		default:
			return false, fmt.Errorf("task has no detachable list %q", step.Field)
		}
		if !changed {
			return false, nil
		}

		return true, tx.Save(&task).Error

	case EntitySubtask:
		var subtask tasks_models.Subtask
		if err := tx.Where("id = ?", step.Entity).First(&subtask).Error; err != nil {
			return skipIfNotFound(err)
		}

		list, changed := removeUUID(subtask.CommentIDs, step.DetachID)
		if !changed {
			return false, nil
		}
		subtask.CommentIDs = list

		return true, tx.Save(&subtask).Error

	case EntityUser:
		var user users_models.User
		if err := tx.Where("id = ?", step.Entity).First(&user).Error; err != nil {
			return skipIfNotFound(err)
		}

		list, changed := removeUUID(user.WorkspaceIDs, step.DetachID)
		if !changed {
			return false, nil
		}
		user.WorkspaceIDs = list

		return true, tx.Save(&user).Error

	default:
		return false, fmt.Errorf("entity %s has no detachable lists", step.Type)
	}
}

func modelFor(entityType EntityType) (any, error) {
	switch entityType {
	case EntityWorkspace:
		return &workspaces_models.Workspace{}, nil
	case EntityProject:
		return &projects_models.Project{}, nil
	case EntityTask:
		return &tasks_models.Task{}, nil
	case EntitySubtask:
		return &tasks_models.Subtask{}, nil
	case EntityComment:
		return &tasks_models.Comment{}, nil
	case EntityUser:
		return &users_models.User{}, nil
	case EntityWorkspaceMembership:
		return &workspaces_models.WorkspaceMembership{}, nil
	case EntityProjectMembership:
		return &projects_models.ProjectMembership{}, nil
	case EntityWorkspaceInvitation:
		return &workspaces_models.WorkspaceInvitation{}, nil
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
}

func skipIfNotFound(err error) (bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	return false, err
}

func removeUUID(list []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	for i, candidate := range list {
		if candidate == id {
			return append(list[:i:i], list[i+1:]...), true
		}
	}

	return list, false
}
