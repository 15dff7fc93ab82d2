package tasks_dto

import (
	"time"

	tasks_models "taskhive-backend/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string                   `json:"title"     binding:"required"`
	Description string                   `json:"description"`
	Status      tasks_models.TaskStatus  `json:"status"`
	Priority    tasks_models.TaskPriority `json:"priority"`
	DueDate     *time.Time               `json:"dueDate"`
	ProjectID   uuid.UUID                `json:"projectId" binding:"required"`
	AssigneeID  *uuid.UUID               `json:"assigneeId"`
	Tags        []string                 `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       string                    `json:"title" binding:"required"`
	Description string                    `json:"description"`
	Status      tasks_models.TaskStatus   `json:"status"`
	Priority    tasks_models.TaskPriority `json:"priority"`
	DueDate     *time.Time                `json:"dueDate"`
	AssigneeID  *uuid.UUID                `json:"assigneeId"`
	Tags        []string                  `json:"tags"`
}

type CreateSubtaskRequest struct {
	Title       string                    `json:"title"  binding:"required"`
	Description string                    `json:"description"`
	Status      tasks_models.TaskStatus   `json:"status"`
	Priority    tasks_models.TaskPriority `json:"priority"`
	DueDate     *time.Time                `json:"dueDate"`
	TaskID      uuid.UUID                 `json:"taskId" binding:"required"`
	AssigneeID  *uuid.UUID                `json:"assigneeId"`
}

type CreateCommentRequest struct {
	Content    string                         `json:"content"    binding:"required"`
	ParentID   uuid.UUID                      `json:"parentId"   binding:"required"`
	ParentType tasks_models.CommentParentType `json:"parentType" binding:"required"`
	Mentions   []uuid.UUID                    `json:"mentions"`
}
