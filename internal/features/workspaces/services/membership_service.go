package workspaces_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskhive-backend/internal/errs"
	"taskhive-backend/internal/features/cascade"
	projects_models "taskhive-backend/internal/features/projects/models"
	users_dto "taskhive-backend/internal/features/users/dto"
	users_enums "taskhive-backend/internal/features/users/enums"
	users_interfaces "taskhive-backend/internal/features/users/interfaces"
	users_models "taskhive-backend/internal/features/users/models"
	users_repositories "taskhive-backend/internal/features/users/repositories"
	users_services "taskhive-backend/internal/features/users/services"
	workspaces_dto "taskhive-backend/internal/features/workspaces/dto"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipService guards the workspace membership invariants: every
// workspace keeps at least one admin and at least one member at all times.
// All destructive paths go through the cascade planner and coordinator.
type MembershipService struct {
	membershipRepository *workspaces_repositories.MembershipRepository
	invitationRepository *workspaces_repositories.InvitationRepository
	workspaceRepository  *workspaces_repositories.WorkspaceRepository
	userRepository       *users_repositories.UserRepository
	userService          *users_services.UserService
	planner              *cascade.Planner
	coordinator          *cascade.Coordinator
	auditLogWriter       users_interfaces.AuditLogWriter
	notifier             cascade.Notifier
	logger               *slog.Logger
}

func (s *MembershipService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *MembershipService) SetNotifier(notifier cascade.Notifier) {
	s.notifier = notifier
}

// AddMember stages an invitation. The membership itself only comes into
// existence when the invited user accepts.
func (s *MembershipService) AddMember(
	actor *users_models.User,
	workspaceID uuid.UUID,
	request *workspaces_dto.AddMemberRequest,
) (*workspaces_models.WorkspaceInvitation, error) {
	if !request.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown workspace role %q", errs.ErrInvariantViolation, request.Role)
	}

	if err := s.ensureWorkspaceAdmin(actor, workspaceID); err != nil {
		return nil, err
	}

	user, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		invited, err := s.userService.InviteUser(&users_dto.InviteUserRequestDTO{
			Email:               request.Email,
			IntendedWorkspaceID: &workspaceID,
		}, actor)
		if err != nil {
			return nil, err
		}

		user, err = s.userRepository.GetUserByID(invited.ID)
		if err != nil {
			return nil, err
		}
	}

	membership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(user.ID, workspaceID)
	if err != nil {
		return nil, err
	}
	if membership != nil {
		return nil, fmt.Errorf("%w: user %s is already a member", errs.ErrConflict, request.Email)
	}

	pending, err := s.invitationRepository.GetInvitationByUserAndWorkspace(user.ID, workspaceID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, fmt.Errorf("%w: user %s is already invited", errs.ErrConflict, request.Email)
	}

	invitation := &workspaces_models.WorkspaceInvitation{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		InvitedByID: actor.ID,
		Role:        request.Role,
	}

	if err := s.invitationRepository.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Member invited to workspace: %s", request.Email),
		&actor.ID,
		&workspaceID,
	)

	return invitation, nil
}

// AcceptInvitation turns a staged invitation into a real membership. The
// membership row, the user's workspace list and the invitation removal
// commit together.
func (s *MembershipService) AcceptInvitation(
	user *users_models.User,
	invitationID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	invitation, err := s.invitationRepository.GetInvitationByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invitation %s", errs.ErrNotFound, invitationID)
		}

		return nil, err
	}

	if invitation.UserID != user.ID {
		return nil, fmt.Errorf("%w: invitation belongs to another user", errs.ErrPermissionDenied)
	}

	existing, err := s.membershipRepository.
		GetMembershipByUserAndWorkspace(user.ID, invitation.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: already a member of workspace %s",
			errs.ErrConflict, invitation.WorkspaceID)
	}

	membership := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      user.ID,
		WorkspaceID: invitation.WorkspaceID,
		Role:        invitation.Role,
		JoinedAt:    time.Now().UTC(),
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(membership).Error; err != nil {
			return err
		}

		var freshUser users_models.User
		if err := tx.Where("id = ?", user.ID).First(&freshUser).Error; err != nil {
			return err
		}
		freshUser.WorkspaceIDs = append(freshUser.WorkspaceIDs, invitation.WorkspaceID)
		if err := tx.Save(&freshUser).Error; err != nil {
			return err
		}

		// team projects inherit workspace membership
		var projects []*projects_models.Project
		if err := tx.Where("workspace_id = ?", invitation.WorkspaceID).
			Find(&projects).Error; err != nil {
			return err
		}
		for _, project := range projects {
			projectMembership := &projects_models.ProjectMembership{
				ID:        uuid.New(),
				ProjectID: project.ID,
				UserID:    user.ID,
				Role:      users_enums.FromWorkspaceRole(invitation.Role),
				JoinedAt:  membership.JoinedAt,
			}
			if err := tx.Create(projectMembership).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", invitation.ID).
			Delete(&workspaces_models.WorkspaceInvitation{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransactionAborted, err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Invitation accepted by %s", user.Email),
		&user.ID,
		&invitation.WorkspaceID,
	)

	return membership, nil
}

func (s *MembershipService) GetUserInvitations(
	user *users_models.User,
) ([]*workspaces_dto.InvitationResponse, error) {
	var invitations []*workspaces_models.WorkspaceInvitation

	err := storage.GetDb().
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}

	responses := make([]*workspaces_dto.InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		workspace, err := s.workspaceRepository.GetWorkspaceByID(invitation.WorkspaceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			return nil, err
		}

		responses = append(responses, &workspaces_dto.InvitationResponse{
			ID:            invitation.ID,
			WorkspaceID:   invitation.WorkspaceID,
			WorkspaceName: workspace.Name,
			Role:          invitation.Role,
			InvitedByID:   invitation.InvitedByID,
			CreatedAt:     invitation.CreatedAt,
		})
	}

	return responses, nil
}

func (s *MembershipService) GetMembers(
	actor *users_models.User,
	workspaceID uuid.UUID,
) ([]*workspaces_dto.WorkspaceMemberResponse, error) {
	if err := s.ensureWorkspaceMember(actor, workspaceID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.GetWorkspaceMembers(workspaceID)
	if err != nil {
		return nil, err
	}

	responses := make([]*workspaces_dto.WorkspaceMemberResponse, 0, len(members))
	for _, member := range members {
		user, err := s.userRepository.GetUserByID(member.UserID)
		if err != nil {
			return nil, err
		}

		responses = append(responses, &workspaces_dto.WorkspaceMemberResponse{
			UserID:   user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		})
	}

	return responses, nil
}

// ChangeRole updates a member's workspace role in place. Demoting the last
// admin is rejected, there would be nobody left to manage the workspace.
func (s *MembershipService) ChangeRole(
	actor *users_models.User,
	workspaceID, targetUserID uuid.UUID,
	request *workspaces_dto.ChangeMemberRoleRequest,
) error {
	if !request.Role.IsValid() {
		return fmt.Errorf("%w: unknown workspace role %q", errs.ErrInvariantViolation, request.Role)
	}

	if err := s.ensureWorkspaceAdmin(actor, workspaceID); err != nil {
		return err
	}

	membership, err := s.membershipRepository.
		GetMembershipByUserAndWorkspace(targetUserID, workspaceID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("%w: user %s is not a member of workspace %s",
			errs.ErrNotFound, targetUserID, workspaceID)
	}

	if membership.Role == request.Role {
		return nil
	}

	if membership.IsAdmin() {
		members, err := s.membershipRepository.GetWorkspaceMembers(workspaceID)
		if err != nil {
			return err
		}

		if !CanDemote(members, targetUserID) {
			return fmt.Errorf("%w: cannot demote the only admin of workspace %s",
				errs.ErrInvariantViolation, workspaceID)
		}
	}

	if err := s.membershipRepository.UpdateMemberRole(targetUserID, workspaceID, request.Role); err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Member role changed to %s", request.Role),
		&actor.ID,
		&workspaceID,
	)

	return nil
}

// RemoveMember removes a user from a workspace. Depending on the membership
// state this is a plain removal, a removal with admin auto-promotion, or a
// dissolution of the whole workspace.
func (s *MembershipService) RemoveMember(
	actor *users_models.User,
	workspaceID, targetUserID uuid.UUID,
) (*workspaces_dto.RemoveMemberResponse, error) {
	isSelfRemoval := actor.ID == targetUserID

	if !isSelfRemoval {
		if err := s.ensureWorkspaceAdmin(actor, workspaceID); err != nil {
			return nil, err
		}
	} else if err := s.ensureWorkspaceMember(actor, workspaceID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.GetWorkspaceMembers(workspaceID)
	if err != nil {
		return nil, err
	}

	targetIsMember := false
	for _, member := range members {
		if member.UserID == targetUserID {
			targetIsMember = true
			break
		}
	}
	if !targetIsMember {
		return nil, fmt.Errorf("%w: user %s is not a member of workspace %s",
			errs.ErrNotFound, targetUserID, workspaceID)
	}

	decision := DecideRemoval(members, targetUserID, actor.ID)

	switch decision.Outcome {
	case RemovalOutcomeBlocked:
		return nil, fmt.Errorf(
			"%w: the only admin cannot leave workspace %s while other members remain",
			errs.ErrInvariantViolation, workspaceID)

	case RemovalOutcomeDissolve:
		s.logger.Info(
			"Last member is leaving, dissolving workspace",
			"workspaceId", workspaceID,
			"state", DeriveWorkspaceState(true, 0),
		)

		plan, err := s.planner.PlanDeleteWorkspace(workspaceID)
		if err != nil {
			return nil, err
		}

		summary, err := s.coordinator.Apply(plan)
		if err != nil {
			return nil, err
		}
		s.notifyApplied(summary)

		s.auditLogWriter.WriteAuditLog(
			"Workspace dissolved: last member left",
			&actor.ID,
			&workspaceID,
		)

		return &workspaces_dto.RemoveMemberResponse{
			Outcome:          string(RemovalOutcomeDissolve),
			WorkspaceDeleted: true,
		}, nil

	default:
		plan, err := s.planner.PlanRemoveMember(workspaceID, targetUserID, decision.SuccessorUserID)
		if err != nil {
			return nil, err
		}

		summary, err := s.coordinator.Apply(plan)
		if err != nil {
			return nil, err
		}
		s.notifyApplied(summary)

		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("Member %s removed from workspace", targetUserID),
			&actor.ID,
			&workspaceID,
		)

		if decision.SuccessorUserID != nil {
			s.logger.Info("admin auto-promoted",
				"workspaceId", workspaceID, "userId", *decision.SuccessorUserID)
		}

		return &workspaces_dto.RemoveMemberResponse{
			Outcome:        string(decision.Outcome),
			PromotedUserID: decision.SuccessorUserID,
		}, nil
	}
}

func (s *MembershipService) ensureWorkspaceAdmin(
	actor *users_models.User,
	workspaceID uuid.UUID,
) error {
	if actor.IsGlobalAdmin() {
		return nil
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, actor.ID)
	if err != nil {
		return err
	}

	if role == nil {
		return fmt.Errorf("%w: not a member of workspace %s", errs.ErrPermissionDenied, workspaceID)
	}

	if *role != users_enums.WorkspaceRoleAdmin {
		return fmt.Errorf("%w: admin role required for workspace %s",
			errs.ErrPermissionDenied, workspaceID)
	}

	return nil
}

func (s *MembershipService) ensureWorkspaceMember(
	actor *users_models.User,
	workspaceID uuid.UUID,
) error {
	if actor.IsGlobalAdmin() {
		return nil
	}

	role, err := s.membershipRepository.GetUserWorkspaceRole(workspaceID, actor.ID)
	if err != nil {
		return err
	}

	if role == nil {
		return fmt.Errorf("%w: not a member of workspace %s", errs.ErrPermissionDenied, workspaceID)
	}

	return nil
}

func (s *MembershipService) notifyApplied(summary *cascade.AppliedSummary) {
	if s.notifier != nil {
		s.notifier.NotifyCascadeApplied(summary)
	}
}
