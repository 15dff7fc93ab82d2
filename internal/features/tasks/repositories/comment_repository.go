package tasks_repositories

import (
	"time"

	tasks_models "taskhive-backend/internal/features/tasks/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
)

type CommentRepository struct{}

func (r *CommentRepository) CreateComment(comment *tasks_models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	comment.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(comment).Error
}

func (r *CommentRepository) GetCommentByID(
	commentID uuid.UUID,
) (*tasks_models.Comment, error) {
	var comment tasks_models.Comment

	if err := storage.GetDb().Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *CommentRepository) GetCommentsByParent(
	parentID uuid.UUID,
	parentType tasks_models.CommentParentType,
) ([]*tasks_models.Comment, error) {
	var comments []*tasks_models.Comment

	err := storage.GetDb().
		Where("parent_id = ? AND parent_type = ?", parentID, parentType).
		Order("created_at ASC").
		Find(&comments).Error

	return comments, err
}
