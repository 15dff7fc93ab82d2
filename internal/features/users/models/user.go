package users_models

import (
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID              `json:"id"       gorm:"column:id;primaryKey"`
	Email    string                 `json:"email"    gorm:"column:email;uniqueIndex;not null"`
	Name     string                 `json:"name"     gorm:"column:name"`
	Password string                 `json:"-"        gorm:"column:password"`
	Role     users_enums.UserRole   `json:"role"     gorm:"column:role;not null"`
	Status   users_enums.UserStatus `json:"status"   gorm:"column:status;not null"`

	// WorkspaceIDs is a derived index over workspace memberships. The
	// membership rows are authoritative; the cascade coordinator keeps this
	// list in sync on workspace deletion.
	WorkspaceIDs []uuid.UUID `json:"workspaceIds" gorm:"column:workspace_ids;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsGlobalAdmin() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) HideSensitiveData() {
	u.Password = ""
}
