package projects_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskhive-backend/internal/errs"
	"taskhive-backend/internal/features/cascade"
	projects_dto "taskhive-backend/internal/features/projects/dto"
	projects_models "taskhive-backend/internal/features/projects/models"
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_interfaces "taskhive-backend/internal/features/users/interfaces"
	users_models "taskhive-backend/internal/features/users/models"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepository           *projects_repositories.ProjectRepository
	projectMembershipRepository *projects_repositories.ProjectMembershipRepository
	workspaceRepository         *workspaces_repositories.WorkspaceRepository
	membershipRepository        *workspaces_repositories.MembershipRepository
	planner                     *cascade.Planner
	coordinator                 *cascade.Coordinator
	auditLogWriter              users_interfaces.AuditLogWriter
	notifier                    cascade.Notifier
	logger                      *slog.Logger
}

func (s *ProjectService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ProjectService) SetNotifier(notifier cascade.Notifier) {
	s.notifier = notifier
}

// CreateProject creates a team or personal project. Team projects seed
// their membership list from the owning workspace's current members.
func (s *ProjectService) CreateProject(
	user *users_models.User,
	request *projects_dto.CreateProjectRequest,
) (*projects_models.Project, error) {
	now := time.Now().UTC()

	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
		Icon:        request.Icon,
		WorkspaceID: request.WorkspaceID,
		CreatorID:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if request.WorkspaceID == nil {
		ownerID := user.ID
		project.OwnerUserID = &ownerID
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if project.IsPersonal() {
		if err := s.projectRepository.CreateProject(project); err != nil {
			return nil, err
		}

		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Personal project created: %s", project.Name),
			&user.ID,
			nil,
		)

		return project, nil
	}

	exists, err := s.workspaceRepository.WorkspaceExists(*request.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: workspace %s", errs.ErrDanglingReference, *request.WorkspaceID)
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(*request.WorkspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if role == nil && !user.IsGlobalAdmin() {
		return nil, fmt.Errorf("%w: not a member of workspace %s",
			errs.ErrPermissionDenied, *request.WorkspaceID)
	}

	members, err := s.membershipRepository.GetWorkspaceMembers(*request.WorkspaceID)
	if err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		for _, member := range members {
			membership := &projects_models.ProjectMembership{
				ID:        uuid.New(),
				ProjectID: project.ID,
				UserID:    member.UserID,
				Role:      users_enums.FromWorkspaceRole(member.Role),
				JoinedAt:  now,
			}
			if err := tx.Create(membership).Error; err != nil {
				return err
			}
		}

		var workspace workspaces_models.Workspace
		if err := tx.Where("id = ?", *request.WorkspaceID).First(&workspace).Error; err != nil {
			return err
		}
		workspace.ProjectIDs = append(workspace.ProjectIDs, project.ID)

		return tx.Save(&workspace).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&user.ID,
		request.WorkspaceID,
	)

	return project, nil
}

func (s *ProjectService) GetProject(
	user *users_models.User,
	projectID uuid.UUID,
) (*projects_models.Project, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureProjectAccess(user, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) GetWorkspaceProjects(
	user *users_models.User,
	workspaceID uuid.UUID,
) ([]*projects_models.Project, error) {
	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if role == nil && !user.IsGlobalAdmin() {
		return nil, fmt.Errorf("%w: not a member of workspace %s",
			errs.ErrPermissionDenied, workspaceID)
	}

	return s.projectRepository.GetProjectsByWorkspaceID(workspaceID)
}

func (s *ProjectService) GetPersonalProjects(
	user *users_models.User,
) ([]*projects_models.Project, error) {
	return s.projectRepository.GetPersonalProjectsByUserID(user.ID)
}

func (s *ProjectService) UpdateProject(
	user *users_models.User,
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequest,
) (*projects_models.Project, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureProjectManage(user, project); err != nil {
		return nil, err
	}

	project.Name = request.Name
	project.Description = request.Description
	project.Color = request.Color
	project.Icon = request.Icon
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project with all of its tasks, subtasks and
// comments, and detaches it from the owning workspace's project list.
func (s *ProjectService) DeleteProject(
	user *users_models.User,
	projectID uuid.UUID,
) (*cascade.AppliedSummary, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureProjectManage(user, project); err != nil {
		return nil, err
	}

	plan, err := s.planner.PlanDeleteProject(projectID)
	if err != nil {
		return nil, err
	}

	summary, err := s.coordinator.Apply(plan)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCascadeApplied(summary)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		project.WorkspaceID,
	)

	return summary, nil
}

func (s *ProjectService) loadProject(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, projectID)
		}

		return nil, err
	}

	return project, nil
}

func (s *ProjectService) ensureProjectAccess(
	user *users_models.User,
	project *projects_models.Project,
) error {
	if user.IsGlobalAdmin() {
		return nil
	}

	if project.IsPersonal() {
		if project.OwnerUserID != nil && *project.OwnerUserID == user.ID {
			return nil
		}

		return fmt.Errorf("%w: project %s", errs.ErrPermissionDenied, project.ID)
	}

	membership, err := s.projectMembershipRepository.
		GetMembershipByUserAndProject(user.ID, project.ID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("%w: not a member of project %s", errs.ErrPermissionDenied, project.ID)
	}

	return nil
}

func (s *ProjectService) ensureProjectManage(
	user *users_models.User,
	project *projects_models.Project,
) error {
	if user.IsGlobalAdmin() {
		return nil
	}

	if project.IsPersonal() {
		if project.OwnerUserID != nil && *project.OwnerUserID == user.ID {
			return nil
		}

		return fmt.Errorf("%w: project %s", errs.ErrPermissionDenied, project.ID)
	}

	membership, err := s.projectMembershipRepository.
		GetMembershipByUserAndProject(user.ID, project.ID)
	if err != nil {
		return err
	}
	if membership != nil && membership.Role == users_enums.ProjectRoleAdmin {
		return nil
	}

	// workspace admins manage every team project in their workspace
	if project.WorkspaceID != nil {
		role, err := s.membershipRepository.GetUserWorkspaceRole(*project.WorkspaceID, user.ID)
		if err != nil {
			return err
		}
		if role != nil && *role == users_enums.WorkspaceRoleAdmin {
			return nil
		}
	}

	return fmt.Errorf("%w: admin role required for project %s",
		errs.ErrPermissionDenied, project.ID)
}
