package workspaces_services

import (
	users_enums "taskhive-backend/internal/features/users/enums"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

type RemovalOutcome string

const (
	// RemovalOutcomeRemoveOnly removes the membership, no other change.
	RemovalOutcomeRemoveOnly RemovalOutcome = "REMOVE_ONLY"
	// RemovalOutcomePromote removes the membership and promotes the
	// earliest-joined remaining member to admin in the same transaction.
	RemovalOutcomePromote RemovalOutcome = "PROMOTE_SUCCESSOR"
	// RemovalOutcomeDissolve deletes the whole workspace because its sole
	// member is leaving.
	RemovalOutcomeDissolve RemovalOutcome = "DISSOLVE_WORKSPACE"
	// RemovalOutcomeBlocked rejects the removal: the sole admin cannot
	// leave while other members remain.
	RemovalOutcomeBlocked RemovalOutcome = "BLOCKED"
)

type RemovalDecision struct {
	Outcome         RemovalOutcome
	SuccessorUserID *uuid.UUID
}

type WorkspaceState string

const (
	WorkspaceStateActive     WorkspaceState = "ACTIVE"
	WorkspaceStateDissolving WorkspaceState = "DISSOLVING"
	WorkspaceStateDestroyed  WorkspaceState = "DESTROYED"
)

// DeriveWorkspaceState classifies a workspace by whether its record still
// exists and how many memberships remain. Dissolving is the transient
// window while the last membership is being removed.
func DeriveWorkspaceState(exists bool, memberCount int) WorkspaceState {
	switch {
	case !exists:
		return WorkspaceStateDestroyed
	case memberCount == 0:
		return WorkspaceStateDissolving
	default:
		return WorkspaceStateActive
	}
}

// DecideRemoval resolves what removing targetUserID from a workspace must
// do to keep at least one admin alive. It is a pure function over the
// current membership list, which must be ordered by joined_at ascending
// with membership id as the tie break.
func DecideRemoval(
	members []*workspaces_models.WorkspaceMembership,
	targetUserID uuid.UUID,
	actorUserID uuid.UUID,
) RemovalDecision {
	if len(members) == 1 && members[0].UserID == targetUserID {
		return RemovalDecision{Outcome: RemovalOutcomeDissolve}
	}

	var target *workspaces_models.WorkspaceMembership
	adminRemains := false
	var successor *workspaces_models.WorkspaceMembership

	for _, member := range members {
		if member.UserID == targetUserID {
			target = member
			continue
		}

		if member.Role == users_enums.WorkspaceRoleAdmin {
			adminRemains = true
		}

		if successor == nil {
			successor = member
		}
	}

	if target == nil || adminRemains {
		return RemovalDecision{Outcome: RemovalOutcomeRemoveOnly}
	}

	// The target is the last admin and other members remain. Leaving
	// voluntarily is blocked, a forced removal promotes a successor.
	if actorUserID == targetUserID {
		return RemovalDecision{Outcome: RemovalOutcomeBlocked}
	}

	successorID := successor.UserID

	return RemovalDecision{
		Outcome:         RemovalOutcomePromote,
		SuccessorUserID: &successorID,
	}
}

// CanDemote reports whether targetUserID's admin role may be downgraded.
// Demoting the only admin would leave the workspace without one.
func CanDemote(
	members []*workspaces_models.WorkspaceMembership,
	targetUserID uuid.UUID,
) bool {
	for _, member := range members {
		if member.UserID == targetUserID {
			continue
		}

		if member.Role == users_enums.WorkspaceRoleAdmin {
			return true
		}
	}

	return false
}
