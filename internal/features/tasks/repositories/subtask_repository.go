package tasks_repositories

import (
	"time"

	tasks_models "taskhive-backend/internal/features/tasks/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
)

type SubtaskRepository struct{}

func (r *SubtaskRepository) CreateSubtask(subtask *tasks_models.Subtask) error {
	if subtask.ID == uuid.Nil {
		subtask.ID = uuid.New()
	}

	if subtask.CreatedAt.IsZero() {
		subtask.CreatedAt = time.Now().UTC()
	}
	subtask.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(subtask).Error
}

func (r *SubtaskRepository) GetSubtaskByID(
	subtaskID uuid.UUID,
) (*tasks_models.Subtask, error) {
	var subtask tasks_models.Subtask

	if err := storage.GetDb().Where("id = ?", subtaskID).First(&subtask).Error; err != nil {
		return nil, err
	}

	return &subtask, nil
}

func (r *SubtaskRepository) UpdateSubtask(subtask *tasks_models.Subtask) error {
	return storage.GetDb().Save(subtask).Error
}

func (r *SubtaskRepository) GetSubtasksByTaskID(
	taskID uuid.UUID,
) ([]*tasks_models.Subtask, error) {
	var subtasks []*tasks_models.Subtask

	err := storage.GetDb().
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&subtasks).Error

	return subtasks, err
}
