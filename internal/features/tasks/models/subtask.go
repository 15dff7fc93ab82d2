package tasks_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Subtask mirrors Task minus tags; it cannot own subtasks of its own.
type Subtask struct {
	ID          uuid.UUID    `json:"id"          gorm:"column:id;primaryKey"`
	Title       string       `json:"title"       gorm:"column:title;not null"`
	Description string       `json:"description" gorm:"column:description"`
	Status      TaskStatus   `json:"status"      gorm:"column:status;not null"`
	Priority    TaskPriority `json:"priority"    gorm:"column:priority;not null"`
	DueDate     *time.Time   `json:"dueDate"     gorm:"column:due_date"`

	TaskID     uuid.UUID  `json:"taskId"     gorm:"column:task_id;not null;index"`
	AssigneeID *uuid.UUID `json:"assigneeId" gorm:"column:assignee_id"`
	AssignerID *uuid.UUID `json:"assignerId" gorm:"column:assigner_id"`

	CommentIDs []uuid.UUID `json:"commentIds" gorm:"column:comment_ids;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Subtask) TableName() string {
	return "subtasks"
}

func (s *Subtask) Validate() error {
	if s.Title == "" {
		return errors.New("subtask title is required")
	}

	if s.TaskID == uuid.Nil {
		return errors.New("subtask must belong to a task")
	}

	if !s.Status.IsValid() {
		return errors.New("invalid subtask status")
	}

	if !s.Priority.IsValid() {
		return errors.New("invalid subtask priority")
	}

	return nil
}
