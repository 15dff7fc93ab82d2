package janitor

import (
	"log/slog"
	"time"

	"taskhive-backend/internal/features/audit_logs"
	projects_models "taskhive-backend/internal/features/projects/models"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	"taskhive-backend/internal/storage"

	"github.com/robfig/cron/v3"
)

const auditLogRetention = 90 * 24 * time.Hour

// JanitorBackgroundService periodically removes rows whose parent row no
// longer exists. The cascade engine deletes children inside the same
// transaction as the parent, so orphans only appear after operator-level
// interventions (manual SQL, partial restores). The sweep keeps forward
// foreign keys authoritative without blocking any request path.
type JanitorBackgroundService struct {
	auditLogService *audit_logs.AuditLogService
	logger          *slog.Logger
}

func (s *JanitorBackgroundService) Run() {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", s.SweepOrphans); err != nil {
		s.logger.Error("Failed to schedule orphan sweep", "error", err)
		return
	}

	if _, err := c.AddFunc("@daily", s.sweepAuditLogs); err != nil {
		s.logger.Error("Failed to schedule audit log sweep", "error", err)
		return
	}

	c.Run()
}

// SweepOrphans deletes children whose parent row is gone, deepest entities
// first so a sweep never creates new orphans for the next pass.
func (s *JanitorBackgroundService) SweepOrphans() {
	db := storage.GetDb()

	taskIDs := db.Model(&tasks_models.Task{}).Select("id")
	subtaskIDs := db.Model(&tasks_models.Subtask{}).Select("id")
	projectIDs := db.Model(&projects_models.Project{}).Select("id")
	workspaceIDs := db.Model(&workspaces_models.Workspace{}).Select("id")

	sweeps := []struct {
		name  string
		sweep func() (int64, error)
	}{
		{"comments on deleted tasks", func() (int64, error) {
			result := db.
				Where("parent_type = ? AND parent_id NOT IN (?)", tasks_models.CommentParentTask, taskIDs).
				Delete(&tasks_models.Comment{})
			return result.RowsAffected, result.Error
		}},
		{"comments on deleted subtasks", func() (int64, error) {
			result := db.
				Where("parent_type = ? AND parent_id NOT IN (?)", tasks_models.CommentParentSubtask, subtaskIDs).
				Delete(&tasks_models.Comment{})
			return result.RowsAffected, result.Error
		}},
		{"subtasks of deleted tasks", func() (int64, error) {
			result := db.
				Where("task_id NOT IN (?)", taskIDs).
				Delete(&tasks_models.Subtask{})
			return result.RowsAffected, result.Error
		}},
		{"tasks of deleted projects", func() (int64, error) {
			result := db.
				Where("project_id NOT IN (?)", projectIDs).
				Delete(&tasks_models.Task{})
			return result.RowsAffected, result.Error
		}},
		{"memberships of deleted projects", func() (int64, error) {
			result := db.
				Where("project_id NOT IN (?)", projectIDs).
				Delete(&projects_models.ProjectMembership{})
			return result.RowsAffected, result.Error
		}},
		{"team projects of deleted workspaces", func() (int64, error) {
			result := db.
				Where("workspace_id IS NOT NULL AND workspace_id NOT IN (?)", workspaceIDs).
				Delete(&projects_models.Project{})
			return result.RowsAffected, result.Error
		}},
		{"memberships of deleted workspaces", func() (int64, error) {
			result := db.
				Where("workspace_id NOT IN (?)", workspaceIDs).
				Delete(&workspaces_models.WorkspaceMembership{})
			return result.RowsAffected, result.Error
		}},
		{"invitations of deleted workspaces", func() (int64, error) {
			result := db.
				Where("workspace_id NOT IN (?)", workspaceIDs).
				Delete(&workspaces_models.WorkspaceInvitation{})
			return result.RowsAffected, result.Error
		}},
	}

	var total int64
	for _, item := range sweeps {
		removed, err := item.sweep()
		if err != nil {
			s.logger.Error("Orphan sweep failed", "target", item.name, "error", err)
			continue
		}

		if removed > 0 {
			s.logger.Warn("Removed orphaned rows", "target", item.name, "count", removed)
			total += removed
		}
	}

	if total == 0 {
		s.logger.Info("Orphan sweep completed, nothing to remove")
	}
}

func (s *JanitorBackgroundService) sweepAuditLogs() {
	removed, err := s.auditLogService.DeleteLogsOlderThan(auditLogRetention)
	if err != nil {
		s.logger.Error("Audit log sweep failed", "error", err)
		return
	}

	if removed > 0 {
		s.logger.Info("Removed expired audit logs", "count", removed)
	}
}
