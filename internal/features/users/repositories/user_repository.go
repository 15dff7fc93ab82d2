package users_repositories

import (
	"errors"
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"
	users_models "taskhive-backend/internal/features/users/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail returns (nil, nil) when no user exists with this email.
func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	err := storage.GetDb().Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateUser(user *users_models.User) error {
	user.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(user).Error
}

func (r *UserRepository) UpdateUserStatus(
	userID uuid.UUID,
	status users_enums.UserStatus,
) error {
	return storage.GetDb().
		Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("status", status).Error
}
