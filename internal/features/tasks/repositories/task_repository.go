package tasks_repositories

import (
	"errors"
	"time"

	tasks_models "taskhive-backend/internal/features/tasks/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	if err := storage.GetDb().Where("id = ?", taskID).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) TaskExists(taskID uuid.UUID) (bool, error) {
	var task tasks_models.Task

	err := storage.GetDb().Select("id").Where("id = ?", taskID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	return storage.GetDb().Save(task).Error
}

func (r *TaskRepository) GetTasksByProjectID(
	projectID uuid.UUID,
) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error

	return tasks, err
}
