package cascade

import (
	"errors"
	"fmt"

	"taskhive-backend/internal/errs"
	projects_models "taskhive-backend/internal/features/projects/models"
	projects_repositories "taskhive-backend/internal/features/projects/repositories"
	tasks_models "taskhive-backend/internal/features/tasks/models"
	tasks_repositories "taskhive-backend/internal/features/tasks/repositories"
	users_enums "taskhive-backend/internal/features/users/enums"
	workspaces_repositories "taskhive-backend/internal/features/workspaces/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FieldProjectIDs   = "project_ids"
	FieldTaskIDs      = "task_ids"
	FieldSubtaskIDs   = "subtask_ids"
	FieldCommentIDs   = "comment_ids"
	FieldWorkspaceIDs = "workspace_ids"
	FieldRole         = "role"
)

// Planner expands a destructive intent into a full CascadePlan by walking
// the forward ownership edges. Derived id lists on parents are only
// consulted to report dangling entries, never to drive deletion.
type Planner struct {
	workspaceRepository         *workspaces_repositories.WorkspaceRepository
	membershipRepository        *workspaces_repositories.MembershipRepository
	invitationRepository        *workspaces_repositories.InvitationRepository
	projectRepository           *projects_repositories.ProjectRepository
	projectMembershipRepository *projects_repositories.ProjectMembershipRepository
	taskRepository              *tasks_repositories.TaskRepository
	subtaskRepository           *tasks_repositories.SubtaskRepository
	commentRepository           *tasks_repositories.CommentRepository
}

func (p *Planner) PlanDeleteComment(commentID uuid.UUID) (*CascadePlan, error) {
	comment, err := p.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %s", errs.ErrNotFound, commentID)
		}

		return nil, err
	}

	plan := &CascadePlan{Intent: "DeleteComment"}
	plan.append(deleteStep(EntityComment, comment.ID))
	plan.append(p.commentDetach(comment))

	return plan, nil
}

func (p *Planner) PlanDeleteSubtask(subtaskID uuid.UUID) (*CascadePlan, error) {
	subtask, err := p.subtaskRepository.GetSubtaskByID(subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subtask %s", errs.ErrNotFound, subtaskID)
		}

		return nil, err
	}

	plan := &CascadePlan{Intent: "DeleteSubtask"}
	if err := p.expandSubtask(plan, subtask); err != nil {
		return nil, err
	}
	plan.append(detachStep(EntityTask, subtask.TaskID, FieldSubtaskIDs, subtask.ID))

	return plan, nil
}

func (p *Planner) PlanDeleteTask(taskID uuid.UUID) (*CascadePlan, error) {
	task, err := p.taskRepository.GetTaskByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %s", errs.ErrNotFound, taskID)
		}

		return nil, err
	}

	plan := &CascadePlan{Intent: "DeleteTask"}
	if err := p.expandTask(plan, task); err != nil {
		return nil, err
	}
	plan.append(detachStep(EntityProject, task.ProjectID, FieldTaskIDs, task.ID))

	return plan, nil
}

func (p *Planner) PlanDeleteProject(projectID uuid.UUID) (*CascadePlan, error) {
	project, err := p.projectRepository.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, projectID)
		}

		return nil, err
	}

	plan := &CascadePlan{Intent: "DeleteProject"}
	if err := p.expandProject(plan, project); err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Planner) PlanDeleteWorkspace(workspaceID uuid.UUID) (*CascadePlan, error) {
	workspace, err := p.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: workspace %s", errs.ErrNotFound, workspaceID)
		}

		return nil, err
	}

	plan := &CascadePlan{Intent: "DeleteWorkspace"}

	projects, err := p.projectRepository.GetProjectsByWorkspaceID(workspace.ID)
	if err != nil {
		return nil, err
	}

	present := make(map[uuid.UUID]bool, len(projects))
	for _, project := range projects {
		present[project.ID] = true

		if err := p.expandProject(plan, project); err != nil {
			return nil, err
		}
	}
	appendDanglingSkips(plan, EntityProject, workspace.ProjectIDs, present)

	members, err := p.membershipRepository.GetWorkspaceMembers(workspace.ID)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		plan.append(deleteStep(EntityWorkspaceMembership, member.ID))
	}

	invitations, err := p.invitationRepository.GetWorkspaceInvitations(workspace.ID)
	if err != nil {
		return nil, err
	}
	for _, invitation := range invitations {
		plan.append(deleteStep(EntityWorkspaceInvitation, invitation.ID))
	}

	plan.append(deleteStep(EntityWorkspace, workspace.ID))

	for _, member := range members {
		plan.append(detachStep(EntityUser, member.UserID, FieldWorkspaceIDs, workspace.ID))
	}

	return plan, nil
}

// PlanRemoveMember removes one user's workspace membership together with
// their memberships in the workspace's team projects. When promoteUserID is
// set the successor's membership is promoted to admin in the same plan, so
// the zero-admin window never becomes visible.
func (p *Planner) PlanRemoveMember(
	workspaceID, userID uuid.UUID,
	promoteUserID *uuid.UUID,
) (*CascadePlan, error) {
	membership, err := p.membershipRepository.GetMembershipByUserAndWorkspace(userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("%w: user %s is not a member of workspace %s",
			errs.ErrNotFound, userID, workspaceID)
	}

	plan := &CascadePlan{Intent: "RemoveMember"}

	projectMemberships, err := p.projectMembershipRepository.
		GetMembershipsByUserAndWorkspace(userID, workspaceID)
	if err != nil {
		return nil, err
	}
	for _, pm := range projectMemberships {
		plan.append(deleteStep(EntityProjectMembership, pm.ID))
	}

	plan.append(deleteStep(EntityWorkspaceMembership, membership.ID))
	plan.append(detachStep(EntityUser, userID, FieldWorkspaceIDs, workspaceID))

	if promoteUserID != nil {
		successor, err := p.membershipRepository.
			GetMembershipByUserAndWorkspace(*promoteUserID, workspaceID)
		if err != nil {
			return nil, err
		}
		if successor == nil {
			return nil, fmt.Errorf("%w: promotion target %s left workspace %s",
				errs.ErrConflict, *promoteUserID, workspaceID)
		}

		plan.append(Step{
			Entity: successor.ID,
			Type:   EntityWorkspaceMembership,
			Op:     OpUpdateField,
			Field:  FieldRole,
			Value:  string(users_enums.WorkspaceRoleAdmin),
		})
	}

	return plan, nil
}

func (p *Planner) expandProject(plan *CascadePlan, project *projects_models.Project) error {
	tasks, err := p.taskRepository.GetTasksByProjectID(project.ID)
	if err != nil {
		return err
	}

	present := make(map[uuid.UUID]bool, len(tasks))
	for _, task := range tasks {
		present[task.ID] = true

		if err := p.expandTask(plan, task); err != nil {
			return err
		}
	}
	appendDanglingSkips(plan, EntityTask, project.TaskIDs, present)

	members, err := p.projectMembershipRepository.GetProjectMembers(project.ID)
	if err != nil {
		return err
	}
	for _, member := range members {
		plan.append(deleteStep(EntityProjectMembership, member.ID))
	}

	plan.append(deleteStep(EntityProject, project.ID))

	if project.WorkspaceID != nil {
		plan.append(detachStep(EntityWorkspace, *project.WorkspaceID, FieldProjectIDs, project.ID))
	}

	return nil
}

func (p *Planner) expandTask(plan *CascadePlan, task *tasks_models.Task) error {
	comments, err := p.commentRepository.GetCommentsByParent(task.ID, tasks_models.CommentParentTask)
	if err != nil {
		return err
	}

	presentComments := make(map[uuid.UUID]bool, len(comments))
	for _, comment := range comments {
		presentComments[comment.ID] = true
		plan.append(deleteStep(EntityComment, comment.ID))
	}

	subtasks, err := p.subtaskRepository.GetSubtasksByTaskID(task.ID)
	if err != nil {
		return err
	}

	presentSubtasks := make(map[uuid.UUID]bool, len(subtasks))
	for _, subtask := range subtasks {
		presentSubtasks[subtask.ID] = true

		if err := p.expandSubtask(plan, subtask); err != nil {
			return err
		}
	}

	appendDanglingSkips(plan, EntityComment, task.CommentIDs, presentComments)
	appendDanglingSkips(plan, EntitySubtask, task.SubtaskIDs, presentSubtasks)

	plan.append(deleteStep(EntityTask, task.ID))

	return nil
}

func (p *Planner) expandSubtask(plan *CascadePlan, subtask *tasks_models.Subtask) error {
	comments, err := p.commentRepository.
		GetCommentsByParent(subtask.ID, tasks_models.CommentParentSubtask)
	if err != nil {
		return err
	}

	present := make(map[uuid.UUID]bool, len(comments))
	for _, comment := range comments {
		present[comment.ID] = true
		plan.append(deleteStep(EntityComment, comment.ID))
	}
	appendDanglingSkips(plan, EntityComment, subtask.CommentIDs, present)

	plan.append(deleteStep(EntitySubtask, subtask.ID))

	return nil
}

func (p *Planner) commentDetach(comment *tasks_models.Comment) Step {
	if comment.ParentType == tasks_models.CommentParentSubtask {
		return detachStep(EntitySubtask, comment.ParentID, FieldCommentIDs, comment.ID)
	}

	return detachStep(EntityTask, comment.ParentID, FieldCommentIDs, comment.ID)
}

// appendDanglingSkips records ids a parent still lists even though no row
// backs them. They are reported, not deleted.
func appendDanglingSkips(
	plan *CascadePlan,
	entityType EntityType,
	listed []uuid.UUID,
	present map[uuid.UUID]bool,
) {
	for _, id := range listed {
		if !present[id] {
			plan.append(skipStep(entityType, id))
		}
	}
}
