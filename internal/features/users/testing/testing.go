package users_testing

import (
	"fmt"

	users_dto "taskhive-backend/internal/features/users/dto"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_repositories "taskhive-backend/internal/features/users/repositories"
	users_services "taskhive-backend/internal/features/users/services"
	util_testing "taskhive-backend/internal/util/testing"

	"github.com/google/uuid"
)

const testPassword = "Password123!"

// CreateTestUser registers and signs in a fresh user, optionally elevated
// to global admin. Panics on failure, it is only for tests.
func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	util_testing.EnsureTestDb()

	userService := users_services.GetUserService()
	email := fmt.Sprintf("user-%s@test.local", uuid.New().String())

	err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: testPassword,
		Name:     "Test User",
	})
	if err != nil {
		panic("failed to sign up test user: " + err.Error())
	}

	if role == users_enums.UserRoleAdmin {
		user, err := userService.GetUserByEmail(email)
		if err != nil || user == nil {
			panic("failed to load test user")
		}

		user.Role = users_enums.UserRoleAdmin
		if err := users_repositories.GetUserRepository().UpdateUser(user); err != nil {
			panic("failed to elevate test user: " + err.Error())
		}
	}

	response, err := userService.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: testPassword,
	})
	if err != nil {
		panic("failed to sign in test user: " + err.Error())
	}

	return response
}
