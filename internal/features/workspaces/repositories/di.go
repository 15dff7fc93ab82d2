package workspaces_repositories

var workspaceRepository = &WorkspaceRepository{}
var membershipRepository = &MembershipRepository{}
var invitationRepository = &InvitationRepository{}

func GetWorkspaceRepository() *WorkspaceRepository {
	return workspaceRepository
}

func GetMembershipRepository() *MembershipRepository {
	return membershipRepository
}

func GetInvitationRepository() *InvitationRepository {
	return invitationRepository
}
