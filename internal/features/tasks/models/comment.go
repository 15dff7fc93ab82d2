package tasks_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID       uuid.UUID `json:"id"       gorm:"column:id;primaryKey"`
	Content  string    `json:"content"  gorm:"column:content;not null"`
	AuthorID uuid.UUID `json:"authorId" gorm:"column:author_id;not null"`

	ParentID   uuid.UUID         `json:"parentId"   gorm:"column:parent_id;not null;index"`
	ParentType CommentParentType `json:"parentType" gorm:"column:parent_type;not null"`

	Mentions []uuid.UUID `json:"mentions" gorm:"column:mentions;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) Validate() error {
	if c.Content == "" {
		return errors.New("comment content is required")
	}

	if c.ParentID == uuid.Nil {
		return errors.New("comment must belong to a task or subtask")
	}

	if !c.ParentType.IsValid() {
		return errors.New("invalid comment parent type")
	}

	return nil
}
