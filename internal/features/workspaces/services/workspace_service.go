package workspaces_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskhive-backend/internal/errs"
	"taskhive-backend/internal/features/cascade"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_interfaces "taskhive-backend/internal/features/users/interfaces"
	users_models "taskhive-backend/internal/features/users/models"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	workspaceRepository  *workspaces_repositories.WorkspaceRepository
	membershipRepository *workspaces_repositories.MembershipRepository
	planner              *cascade.Planner
	coordinator          *cascade.Coordinator
	auditLogWriter       users_interfaces.AuditLogWriter
	notifier             cascade.Notifier
	logger               *slog.Logger
}

func (s *WorkspaceService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *WorkspaceService) SetNotifier(notifier cascade.Notifier) {
	s.notifier = notifier
}

// CreateWorkspace creates the workspace together with its first membership.
// The creator becomes admin, which establishes both invariants at birth.
func (s *WorkspaceService) CreateWorkspace(
	user *users_models.User,
	request *workspaces_dto.CreateWorkspaceRequest,
) (*workspaces_models.Workspace, error) {
	now := time.Now().UTC()

	workspace := &workspaces_models.Workspace{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		CreatorID:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	membership := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      user.ID,
		WorkspaceID: workspace.ID,
		Role:        users_enums.WorkspaceRoleAdmin,
		JoinedAt:    now,
	}

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}

		if err := tx.Create(membership).Error; err != nil {
			return err
		}

		var freshUser users_models.User
		if err := tx.Where("id = ?", user.ID).First(&freshUser).Error; err != nil {
			return err
		}
		freshUser.WorkspaceIDs = append(freshUser.WorkspaceIDs, workspace.ID)

		return tx.Save(&freshUser).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s", workspace.Name),
		&user.ID,
		&workspace.ID,
	)

	return workspace, nil
}

func (s *WorkspaceService) GetWorkspace(
	user *users_models.User,
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	if err := s.ensureMember(user, workspaceID); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: workspace %s", errs.ErrNotFound, workspaceID)
		}

		return nil, err
	}

	return workspace, nil
}

func (s *WorkspaceService) GetUserWorkspaces(
	user *users_models.User,
) ([]*workspaces_models.Workspace, error) {
	return s.membershipRepository.GetWorkspacesByUserID(user.ID)
}

func (s *WorkspaceService) UpdateWorkspace(
	user *users_models.User,
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequest,
) (*workspaces_models.Workspace, error) {
	if err := s.ensureAdmin(user, workspaceID); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: workspace %s", errs.ErrNotFound, workspaceID)
		}

		return nil, err
	}

	workspace.UpdateFromDTO(&workspaces_models.Workspace{
		Name:        request.Name,
		Description: request.Description,
	})

	if err := s.workspaceRepository.UpdateWorkspace(workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

// DeleteWorkspace tears down the whole subtree: projects, tasks, subtasks,
// comments, memberships and invitations, all in one transaction.
func (s *WorkspaceService) DeleteWorkspace(
	user *users_models.User,
	workspaceID uuid.UUID,
) (*cascade.AppliedSummary, error) {
	if err := s.ensureAdmin(user, workspaceID); err != nil {
		return nil, err
	}

	plan, err := s.planner.PlanDeleteWorkspace(workspaceID)
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
		fmt.Sprintf("Workspace deleted, %d entities removed", len(summary.Deleted)),
		&user.ID,
		&workspaceID,
	)

	return summary, nil
}

func (s *WorkspaceService) ensureMember(user *users_models.User, workspaceID uuid.UUID) error {
	if user.IsGlobalAdmin() {
		return nil
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, user.ID)
	if err != nil {
		return err
	}

	if role == nil {
		return fmt.Errorf("%w: not a member of workspace %s", errs.ErrPermissionDenied, workspaceID)
	}

	return nil
}

func (s *WorkspaceService) ensureAdmin(user *users_models.User, workspaceID uuid.UUID) error {
	if user.IsGlobalAdmin() {
		return nil
	}

	membership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(user.ID, workspaceID)
	if err != nil {
		return err
	}

	if membership == nil {
		return fmt.Errorf("%w: not a member of workspace %s", errs.ErrPermissionDenied, workspaceID)
	}

	if !membership.IsAdmin() {
		return fmt.Errorf("%w: admin role required for workspace %s",
			errs.ErrPermissionDenied, workspaceID)
	}

	return nil
}
