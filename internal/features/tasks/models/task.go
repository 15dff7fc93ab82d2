package tasks_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID    `json:"id"          gorm:"column:id;primaryKey"`
	Title       string       `json:"title"       gorm:"column:title;not null"`
	Description string       `json:"description" gorm:"column:description"`
	Status      TaskStatus   `json:"status"      gorm:"column:status;not null"`
	Priority    TaskPriority `json:"priority"    gorm:"column:priority;not null"`
	DueDate     *time.Time   `json:"dueDate"     gorm:"column:due_date"`

	ProjectID  uuid.UUID  `json:"projectId"  gorm:"column:project_id;not null;index"`
	AssigneeID *uuid.UUID `json:"assigneeId" gorm:"column:assignee_id"`
	AssignerID *uuid.UUID `json:"assignerId" gorm:"column:assigner_id"`

	// Derived child indexes; subtask.task_id and comment.parent_id are
	// authoritative.
	SubtaskIDs []uuid.UUID `json:"subtaskIds" gorm:"column:subtask_ids;serializer:json"`
	CommentIDs []uuid.UUID `json:"commentIds" gorm:"column:comment_ids;serializer:json"`

	Tags []string `json:"tags" gorm:"column:tags;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("task title is required")
	}

	if t.ProjectID == uuid.Nil {
		return errors.New("task must belong to a project")
	}

	if !t.Status.IsValid() {
		return errors.New("invalid task status")
	}

	if !t.Priority.IsValid() {
		return errors.New("invalid task priority")
	}

	return nil
}
