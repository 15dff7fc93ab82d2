package users_services_test

import (
	"fmt"
	"testing"

	users_dto "taskhive-backend/internal/features/users/dto"
	users_services "taskhive-backend/internal/features/users/services"
	util_testing "taskhive-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUp(t *testing.T) (string, string) {
	util_testing.EnsureTestDb()

	email := fmt.Sprintf("user-%s@test.com", uuid.New())
	password := "correct-horse-battery"

	err := users_services.GetUserService().SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: password,
		Name:     "Test User",
	})
	require.NoError(t, err)

	return email, password
}

func Test_SignUp_DuplicateEmailIsRejected(t *testing.T) {
	email, password := signUp(t)

	err := users_services.GetUserService().SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: password,
		Name:     "Impostor",
	})
	require.Error(t, err)
}

func Test_SignIn_ReturnsResolvableToken(t *testing.T) {
	email, password := signUp(t)

	service := users_services.GetUserService()

	response, err := service.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)

	user, err := service.GetUserByToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.UserID, user.ID)
	assert.Equal(t, email, user.Email)
}

func Test_SignIn_WrongPasswordIsRejected(t *testing.T) {
	email, _ := signUp(t)

	_, err := users_services.GetUserService().SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: "not the password",
	})
	require.Error(t, err)
}

func Test_ChangeUserPasswordByEmail(t *testing.T) {
	email, oldPassword := signUp(t)

	service := users_services.GetUserService()

	err := service.ChangeUserPasswordByEmail(email, "a brand new password")
	require.NoError(t, err)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: oldPassword,
	})
	require.Error(t, err)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{
		Email:    email,
		Password: "a brand new password",
	})
	require.NoError(t, err)
}
