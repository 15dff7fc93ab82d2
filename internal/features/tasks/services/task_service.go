package tasks_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskhive-backend/internal/errs"
	"taskhive-backend/internal/features/cascade"
	projects_models "taskhive-backend/internal/features/projects/models"
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	tasks_dto "taskhive-backend/internal/features/tasks/dto"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	tasks_repositories "taskhive-backend/internal/features/tasks/repositories"
	users_interfaces "taskhive-backend/internal/features/users/interfaces"
	users_models "taskhive-backend/internal/features/users/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService owns the task, subtask and comment lifecycle. Creates fail
// hard when the referenced parent is gone, deletes run through the cascade
// planner so derived id lists stay consistent.
type TaskService struct {
	taskRepository              *tasks_repositories.TaskRepository
	subtaskRepository           *tasks_repositories.SubtaskRepository
	commentRepository           *tasks_repositories.CommentRepository
	projectRepository           *projects_repositories.ProjectRepository
	projectMembershipRepository *projects_repositories.ProjectMembershipRepository
	planner                     *cascade.Planner
	coordinator                 *cascade.Coordinator
	auditLogWriter              users_interfaces.AuditLogWriter
	notifier                    cascade.Notifier
	logger                      *slog.Logger
}

func (s *TaskService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *TaskService) SetNotifier(notifier cascade.Notifier) {
	s.notifier = notifier
}

func (s *TaskService) CreateTask(
	user *users_models.User,
	request *tasks_dto.CreateTaskRequest,
) (*tasks_models.Task, error) {
	project, err := s.projectRepository.GetProjectByID(request.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", errs.ErrDanglingReference, request.ProjectID)
		}

		return nil, err
	}

	if err := s.ensureProjectAccess(user, project); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignerID := user.ID

	task := &tasks_models.Task{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
		ProjectID:   project.ID,
		AssigneeID:  request.AssigneeID,
		AssignerID:  &assignerID,
		Tags:        request.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = tasks_models.TaskStatusToDo
	}
	if task.Priority == "" {
		task.Priority = tasks_models.TaskPriorityMedium
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		var freshProject projects_models.Project
		if err := tx.Where("id = ?", project.ID).First(&freshProject).Error; err != nil {
			return err
		}
		freshProject.TaskIDs = append(freshProject.TaskIDs, task.ID)

		return tx.Save(&freshProject).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	return task, nil
}

func (s *TaskService) GetTask(
	user *users_models.User,
	taskID uuid.UUID,
) (*tasks_models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) GetProjectTasks(
	user *users_models.User,
	projectID uuid.UUID,
) ([]*tasks_models.Task, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, projectID)
		}

		return nil, err
	}

	if err := s.ensureProjectAccess(user, project); err != nil {
		return nil, err
	}

	return s.taskRepository.GetTasksByProjectID(projectID)
}

func (s *TaskService) UpdateTask(
	user *users_models.User,
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequest,
) (*tasks_models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	task.Title = request.Title
	task.Description = request.Description
	if request.Status != "" {
		task.Status = request.Status
	}
	if request.Priority != "" {
		task.Priority = request.Priority
	}
	task.DueDate = request.DueDate
	task.AssigneeID = request.AssigneeID
	task.Tags = request.Tags
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes the task with its subtasks and comments and detaches
// it from the project's task list, all in one transaction.
func (s *TaskService) DeleteTask(
	user *users_models.User,
	taskID uuid.UUID,
) (*cascade.AppliedSummary, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	plan, err := s.planner.PlanDeleteTask(taskID)
	if err != nil {
		return nil, err
	}

	summary, err := s.coordinator.Apply(plan)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCascadeApplied(summary)
	}

	return summary, nil
}

func (s *TaskService) CreateSubtask(
	user *users_models.User,
	request *tasks_dto.CreateSubtaskRequest,
) (*tasks_models.Subtask, error) {
	task, err := s.taskRepository.GetTaskByID(request.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %s", errs.ErrDanglingReference, request.TaskID)
		}

		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignerID := user.ID

	subtask := &tasks_models.Subtask{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
		TaskID:      task.ID,
		AssigneeID:  request.AssigneeID,
		AssignerID:  &assignerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if subtask.Status == "" {
		subtask.Status = tasks_models.TaskStatusToDo
	}
	if subtask.Priority == "" {
		subtask.Priority = tasks_models.TaskPriorityMedium
	}

	if err := subtask.Validate(); err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subtask).Error; err != nil {
			return err
		}

		var freshTask tasks_models.Task
		if err := tx.Where("id = ?", task.ID).First(&freshTask).Error; err != nil {
			return err
		}
		freshTask.SubtaskIDs = append(freshTask.SubtaskIDs, subtask.ID)

		return tx.Save(&freshTask).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	return subtask, nil
}

// DeleteSubtask removes the subtask with its comments and detaches it from
// the parent task's subtask list.
func (s *TaskService) DeleteSubtask(
	user *users_models.User,
	subtaskID uuid.UUID,
) (*cascade.AppliedSummary, error) {
	subtask, err := s.subtaskRepository.GetSubtaskByID(subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subtask %s", errs.ErrNotFound, subtaskID)
		}

		return nil, err
	}

	task, err := s.loadTask(subtask.TaskID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	plan, err := s.planner.PlanDeleteSubtask(subtaskID)
	if err != nil {
		return nil, err
	}

	summary, err := s.coordinator.Apply(plan)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCascadeApplied(summary)
	}

	return summary, nil
}

func (s *TaskService) CreateComment(
	user *users_models.User,
	request *tasks_dto.CreateCommentRequest,
) (*tasks_models.Comment, error) {
	if !request.ParentType.IsValid() {
		return nil, errors.New("invalid comment parent type")
	}

	task, err := s.resolveCommentParentTask(request.ParentID, request.ParentType)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	comment := &tasks_models.Comment{
		ID:         uuid.New(),
		Content:    request.Content,
		AuthorID:   user.ID,
		ParentID:   request.ParentID,
		ParentType: request.ParentType,
		Mentions:   request.Mentions,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if request.ParentType == tasks_models.CommentParentSubtask {
			var subtask tasks_models.Subtask
			if err := tx.Where("id = ?", request.ParentID).First(&subtask).Error; err != nil {
				return err
			}
			subtask.CommentIDs = append(subtask.CommentIDs, comment.ID)

			return tx.Save(&subtask).Error
		}

		var freshTask tasks_models.Task
		if err := tx.Where("id = ?", request.ParentID).First(&freshTask).Error; err != nil {
			return err
		}
		freshTask.CommentIDs = append(freshTask.CommentIDs, comment.ID)

		return tx.Save(&freshTask).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	return comment, nil
}

func (s *TaskService) GetComments(
	user *users_models.User,
	parentID uuid.UUID,
	parentType tasks_models.CommentParentType,
) ([]*tasks_models.Comment, error) {
	if !parentType.IsValid() {
		return nil, errors.New("invalid comment parent type")
	}

	task, err := s.resolveCommentParentTask(parentID, parentType)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTaskAccess(user, task); err != nil {
		return nil, err
	}

	return s.commentRepository.GetCommentsByParent(parentID, parentType)
}

// DeleteComment is allowed for the comment's author and anyone who can
// manage the surrounding project.
func (s *TaskService) DeleteComment(
	user *users_models.User,
	commentID uuid.UUID,
) (*cascade.AppliedSummary, error) {
	comment, err := s.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %s", errs.ErrNotFound, commentID)
		}

		return nil, err
	}

	if comment.AuthorID != user.ID && !user.IsGlobalAdmin() {
		task, err := s.resolveCommentParentTask(comment.ParentID, comment.ParentType)
		if err != nil {
			return nil, err
		}

		if err := s.ensureTaskAccess(user, task); err != nil {
			return nil, err
		}
	}

	plan, err := s.planner.PlanDeleteComment(commentID)
	if err != nil {
		return nil, err
	}

	summary, err := s.coordinator.Apply(plan)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCascadeApplied(summary)
	}

	return summary, nil
}

func (s *TaskService) loadTask(taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %s", errs.ErrNotFound, taskID)
		}

		return nil, err
	}

	return task, nil
}

// resolveCommentParentTask follows the parent discriminator up to the task
// the comment lives under.
func (s *TaskService) resolveCommentParentTask(
	parentID uuid.UUID,
	parentType tasks_models.CommentParentType,
) (*tasks_models.Task, error) {
	if parentType == tasks_models.CommentParentSubtask {
		subtask, err := s.subtaskRepository.GetSubtaskByID(parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: subtask %s", errs.ErrDanglingReference, parentID)
			}

			return nil, err
		}

		return s.loadTask(subtask.TaskID)
	}

	task, err := s.taskRepository.GetTaskByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %s", errs.ErrDanglingReference, parentID)
		}

		return nil, err
	}

	return task, nil
}

func (s *TaskService) ensureTaskAccess(
	user *users_models.User,
	task *tasks_models.Task,
) error {
	project, err := s.projectRepository.GetProjectByID(task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: project %s", errs.ErrDanglingReference, task.ProjectID)
		}

		return err
	}

	return s.ensureProjectAccess(user, project)
}

func (s *TaskService) ensureProjectAccess(
	user *users_models.User,
	project *projects_models.Project,
) error {
	if user.IsGlobalAdmin() {
		return nil
	}

	if project.IsPersonal() {
		if project.OwnerUserID != nil && *project.OwnerUserID == user.ID {
			return nil
		}

		return fmt.Errorf("%w: project %s", errs.ErrPermissionDenied, project.ID)
	}

	membership, err := s.projectMembershipRepository.
		GetMembershipByUserAndProject(user.ID, project.ID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("%w: not a member of project %s", errs.ErrPermissionDenied, project.ID)
	}

	return nil
}
