package users_services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskhive-backend/internal/config"
	users_dto "taskhive-backend/internal/features/users/dto"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_interfaces "taskhive-backend/internal/features/users/interfaces"
	users_models "taskhive-backend/internal/features/users/models"
	users_repositories "taskhive-backend/internal/features/users/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const tokenLifetime = 30 * 24 * time.Hour

type UserService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) error {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil && existingUser.Status != users_enums.UserStatusInvited {
		return errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// invited users complete registration instead of creating a new record
	if existingUser != nil {
		existingUser.Password = string(hashedPassword)
		existingUser.Name = request.Name
		existingUser.Status = users_enums.UserStatusActive

		if err := s.userRepository.UpdateUser(existingUser); err != nil {
			return fmt.Errorf("failed to activate invited user: %w", err)
		}

		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Invited user completed registration: %s", existingUser.Email),
			&existingUser.ID,
			nil,
		)

		return nil
	}

	user := &users_models.User{
		Email:    request.Email,
		Name:     request.Name,
		Password: string(hashedPassword),
		Role:     users_enums.UserRoleMember,
		Status:   users_enums.UserStatusActive,
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed up: %s", user.Email),
		&user.ID,
		nil,
	)

	return nil
}

func (s *UserService) SignIn(
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || user.Status != users_enums.UserStatusActive {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(request.Password),
	); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.GenerateAccessToken(user)
}

func (s *UserService) GenerateAccessToken(
	user *users_models.User,
) (*users_dto.SignInResponseDTO, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(config.GetEnv().JwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  signed,
	}, nil
}

func (s *UserService) GetUserByToken(tokenString string) (*users_models.User, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(config.GetEnv().JwtSecret), nil
		},
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) ChangeUserPasswordByEmail(email string, newPassword string) error {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		return errors.New("user not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashedPassword)
	user.Status = users_enums.UserStatusActive

	if err := s.userRepository.UpdateUser(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Password reset for user: %s", user.Email),
		&user.ID,
		nil,
	)

	return nil
}

func (s *UserService) GetUserByID(id uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(id)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

// InviteUser creates a placeholder account in INVITED status. The workspace
// membership itself is staged separately as an invitation record.
func (s *UserService) InviteUser(
	request *users_dto.InviteUserRequestDTO,
	invitedBy *users_models.User,
) (*users_dto.InviteUserResponseDTO, error) {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return &users_dto.InviteUserResponseDTO{
			ID:        existingUser.ID,
			Email:     existingUser.Email,
			CreatedAt: existingUser.CreatedAt,
		}, nil
	}

	user := &users_models.User{
		Email:  request.Email,
		Role:   users_enums.UserRoleMember,
		Status: users_enums.UserStatusInvited,
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create invited user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User invited: %s", user.Email),
		&invitedBy.ID,
		request.IntendedWorkspaceID,
	)

	return &users_dto.InviteUserResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

type oauthUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Login string `json:"login"`
}

func (s *UserService) OAuthCallback(
	provider string,
	request *users_dto.OAuthCallbackRequestDTO,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	env := config.GetEnv()

	var oauthConfig *oauth2.Config
	var userInfoURL string

	switch provider {
	case "github":
		oauthConfig = &oauth2.Config{
			ClientID:     env.GitHubClientID,
			ClientSecret: env.GitHubClientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  request.RedirectUri,
		}
		userInfoURL = "https://api.github.com/user"
	case "google":
		oauthConfig = &oauth2.Config{
			ClientID:     env.GoogleClientID,
			ClientSecret: env.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  request.RedirectUri,
		}
		userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	default:
		return nil, fmt.Errorf("unsupported oauth provider: %s", provider)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	token, err := oauthConfig.Exchange(ctx, request.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	info, err := fetchOAuthUserInfo(ctx, oauthConfig, token, userInfoURL)
	if err != nil {
		return nil, err
	}

	if info.Email == "" {
		return nil, errors.New("oauth provider returned no email")
	}

	user, err := s.userRepository.GetUserByEmail(info.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	isNewUser := false
	if user == nil {
		name := info.Name
		if name == "" {
			name = info.Login
		}

		user = &users_models.User{
			Email:  info.Email,
			Name:   name,
			Role:   users_enums.UserRoleMember,
			Status: users_enums.UserStatusActive,
		}

		if err := s.userRepository.CreateUser(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		isNewUser = true
	} else if user.Status == users_enums.UserStatusInvited {
		user.Status = users_enums.UserStatusActive
		if err := s.userRepository.UpdateUser(user); err != nil {
			return nil, fmt.Errorf("failed to activate invited user: %w", err)
		}
	}

	signInResponse, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &users_dto.OAuthCallbackResponseDTO{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     signInResponse.Token,
		IsNewUser: isNewUser,
	}, nil
}

func fetchOAuthUserInfo(
	ctx context.Context,
	oauthConfig *oauth2.Config,
	token *oauth2.Token,
	userInfoURL string,
) (*oauthUserInfo, error) {
	client := oauthConfig.Client(ctx, token)

	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oauth user info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("oauth user info returned status %d: %s", resp.StatusCode, body)
	}

	var info oauthUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode oauth user info: %w", err)
	}

	return &info, nil
}
