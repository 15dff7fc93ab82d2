package projects_repositories

var projectRepository = &ProjectRepository{}
var projectMembershipRepository = &ProjectMembershipRepository{}

func GetProjectRepository() *ProjectRepository {
	return projectRepository
}

func GetProjectMembershipRepository() *ProjectMembershipRepository {
	return projectMembershipRepository
}
