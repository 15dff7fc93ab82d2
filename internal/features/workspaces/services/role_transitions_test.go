package workspaces_services_test

import (
	"testing"
	"time"

	users_enums "taskhive-backend/internal/features/users/enums"
	workspaces_models "taskhive-backend/internal/features/workspaces/models"
	workspaces_services "taskhive-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func membership(
	userID uuid.UUID,
	role users_enums.WorkspaceRole,
	joinedAt time.Time,
) *workspaces_models.WorkspaceMembership {
	return &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: uuid.New(),
		Role:        role,
		JoinedAt:    joinedAt,
	}
}

func Test_DecideRemoval_RegularMemberLeaves(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()
	base := time.Now().UTC()

	members := []*workspaces_models.WorkspaceMembership{
		membership(admin, users_enums.WorkspaceRoleAdmin, base),
		membership(member, users_enums.WorkspaceRoleMember, base.Add(time.Hour)),
	}

	decision := workspaces_services.DecideRemoval(members, member, member)

	assert.Equal(t, workspaces_services.RemovalOutcomeRemoveOnly, decision.Outcome)
	assert.Nil(t, decision.SuccessorUserID)
}

func Test_DecideRemoval_AdminLeavesWhileAnotherAdminRemains(t *testing.T) {
	firstAdmin := uuid.New()
	secondAdmin := uuid.New()
	base := time.Now().UTC()

	members := []*workspaces_models.WorkspaceMembership{
		membership(firstAdmin, users_enums.WorkspaceRoleAdmin, base),
		membership(secondAdmin, users_enums.WorkspaceRoleAdmin, base.Add(time.Hour)),
	}

	decision := workspaces_services.DecideRemoval(members, firstAdmin, firstAdmin)

	assert.Equal(t, workspaces_services.RemovalOutcomeRemoveOnly, decision.Outcome)
}

func Test_DecideRemoval_LastAdminSelfRemovalIsBlocked(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()
	base := time.Now().UTC()

	members := []*workspaces_models.WorkspaceMembership{
		membership(admin, users_enums.WorkspaceRoleAdmin, base),
		membership(member, users_enums.WorkspaceRoleMember, base.Add(time.Hour)),
	}

	decision := workspaces_services.DecideRemoval(members, admin, admin)

	assert.Equal(t, workspaces_services.RemovalOutcomeBlocked, decision.Outcome)
}

func Test_DecideRemoval_ForcedLastAdminRemovalPromotesEarliestJoined(t *testing.T) {
	globalAdmin := uuid.New()
	admin := uuid.New()
	earliest := uuid.New()
	later := uuid.New()
	base := time.Now().UTC()

	// members arrive ordered by joined_at ascending
	members := []*workspaces_models.WorkspaceMembership{
		membership(admin, users_enums.WorkspaceRoleAdmin, base),
		membership(earliest, users_enums.WorkspaceRoleMember, base.Add(time.Hour)),
		membership(later, users_enums.WorkspaceRoleMember, base.Add(2*time.Hour)),
	}

	decision := workspaces_services.DecideRemoval(members, admin, globalAdmin)

	assert.Equal(t, workspaces_services.RemovalOutcomePromote, decision.Outcome)
	if assert.NotNil(t, decision.SuccessorUserID) {
		assert.Equal(t, earliest, *decision.SuccessorUserID)
	}
}

func Test_DecideRemoval_SuccessorChoiceIsDeterministic(t *testing.T) {
	globalAdmin := uuid.New()
	admin := uuid.New()
	earliest := uuid.New()
	later := uuid.New()
	base := time.Now().UTC()

	members := []*workspaces_models.WorkspaceMembership{
		membership(admin, users_enums.WorkspaceRoleAdmin, base),
		membership(earliest, users_enums.WorkspaceRoleMember, base.Add(time.Hour)),
		membership(later, users_enums.WorkspaceRoleMember, base.Add(2*time.Hour)),
	}

	first := workspaces_services.DecideRemoval(members, admin, globalAdmin)
	second := workspaces_services.DecideRemoval(members, admin, globalAdmin)

	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, *first.SuccessorUserID, *second.SuccessorUserID)
}

func Test_DecideRemoval_SoleMemberDissolvesWorkspace(t *testing.T) {
	admin := uuid.New()

	members := []*workspaces_models.WorkspaceMembership{
		membership(admin, users_enums.WorkspaceRoleAdmin, time.Now().UTC()),
	}

	decision := workspaces_services.DecideRemoval(members, admin, admin)

	assert.Equal(t, workspaces_services.RemovalOutcomeDissolve, decision.Outcome)
}

func Test_CanDemote_OnlyAdminCannotBeDemoted(t *testing.T) {
	admin := uuid.New()
	member := uuid.New()
	base := time.Now().UTC()

	members := []*workspaces_models.WorkspaceMembership{
		membership(admin, users_enums.WorkspaceRoleAdmin, base),
		membership(member, users_enums.WorkspaceRoleMember, base.Add(time.Hour)),
	}

	assert.False(t, workspaces_services.CanDemote(members, admin))
	assert.True(t, workspaces_services.CanDemote(members, member))
}

func Test_CanDemote_WithSecondAdmin(t *testing.T) {
	firstAdmin := uuid.New()
	secondAdmin := uuid.New()
	base := time.Now().UTC()

	members := []*workspaces_models.WorkspaceMembership{
		membership(firstAdmin, users_enums.WorkspaceRoleAdmin, base),
		membership(secondAdmin, users_enums.WorkspaceRoleAdmin, base.Add(time.Hour)),
	}

	assert.True(t, workspaces_services.CanDemote(members, firstAdmin))
	assert.True(t, workspaces_services.CanDemote(members, secondAdmin))
}

func Test_DeriveWorkspaceState(t *testing.T) {
	assert.Equal(t, workspaces_services.WorkspaceStateActive,
		workspaces_services.DeriveWorkspaceState(true, 3))
	assert.Equal(t, workspaces_services.WorkspaceStateDissolving,
		workspaces_services.DeriveWorkspaceState(true, 0))
	assert.Equal(t, workspaces_services.WorkspaceStateDestroyed,
		workspaces_services.DeriveWorkspaceState(false, 0))
}
