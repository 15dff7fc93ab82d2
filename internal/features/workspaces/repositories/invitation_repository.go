package workspaces_repositories

import (
	"errors"
	"time"

	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	"taskhive-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(
	invitation *workspaces_models.WorkspaceInvitation,
) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invitation).Error
}

func (r *InvitationRepository) GetInvitationByID(
	invitationID uuid.UUID,
) (*workspaces_models.WorkspaceInvitation, error) {
	var invitation workspaces_models.WorkspaceInvitation

	if err := storage.GetDb().Where("id = ?", invitationID).First(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

// GetInvitationByUserAndWorkspace returns (nil, nil) when no invitation is
// pending.
func (r *InvitationRepository) GetInvitationByUserAndWorkspace(
	userID, workspaceID uuid.UUID,
) (*workspaces_models.WorkspaceInvitation, error) {
	var invitation workspaces_models.WorkspaceInvitation

	err := storage.GetDb().
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetWorkspaceInvitations(
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceInvitation, error) {
	var invitations []*workspaces_models.WorkspaceInvitation

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) DeleteInvitation(invitationID uuid.UUID) error {
	return storage.GetDb().
		Where("id = ?", invitationID).
		Delete(&workspaces_models.WorkspaceInvitation{}).Error
}
