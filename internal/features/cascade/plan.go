package cascade

import (
	"github.com/google/uuid"
)

type EntityType string

const (
	EntityWorkspace           EntityType = "WORKSPACE"
	EntityProject             EntityType = "PROJECT"
	EntityTask                EntityType = "TASK"
	EntitySubtask             EntityType = "SUBTASK"
	EntityComment             EntityType = "COMMENT"
	EntityUser                EntityType = "USER"
	EntityWorkspaceMembership EntityType = "WORKSPACE_MEMBERSHIP"
	EntityProjectMembership   EntityType = "PROJECT_MEMBERSHIP"
	EntityWorkspaceInvitation EntityType = "WORKSPACE_INVITATION"
)

type Op string

const (
	// OpDelete removes the row. Deleting an already absent row is not an
	// error, the step is recorded as skipped.
	OpDelete Op = "DELETE"
	// OpDetach pulls DetachID out of the id list held in the Field column.
	OpDetach Op = "DETACH"
	// OpUpdateField sets the Field column to Value. The target must exist,
	// otherwise the whole plan aborts with a conflict.
	OpUpdateField Op = "UPDATE_FIELD"
	// OpSkip marks a dangling id that was listed by a parent but has no
	// backing row. Nothing is touched.
	OpSkip Op = "SKIP"
)

type Step struct {
	Entity   uuid.UUID  `json:"entityId"`
	Type     EntityType `json:"entityType"`
	Op       Op         `json:"op"`
	Field    string     `json:"field,omitempty"`
	Value    string     `json:"value,omitempty"`
	DetachID uuid.UUID  `json:"detachId,omitempty"`
}

// CascadePlan is an ordered list of steps closed over every entity a
// destructive intent touches. Children always precede their parents so
// that no step ever deletes a row that still has live descendants.
type CascadePlan struct {
	Intent string `json:"intent"`
	Steps  []Step `json:"steps"`
}

func (p *CascadePlan) append(steps ...Step) {
	p.Steps = append(p.Steps, steps...)
}

type EntityRef struct {
	Type EntityType `json:"entityType"`
	ID   uuid.UUID  `json:"entityId"`
}

// AppliedSummary reports what a committed plan actually did. Skipped
// entries are dangling ids or rows that were already gone.
type AppliedSummary struct {
	Intent  string      `json:"intent"`
	Deleted []EntityRef `json:"deleted"`
	Updated []EntityRef `json:"updated"`
	Skipped []EntityRef `json:"skipped"`
}

func deleteStep(entityType EntityType, id uuid.UUID) Step {
	return Step{Entity: id, Type: entityType, Op: OpDelete}
}

func detachStep(entityType EntityType, id uuid.UUID, field string, detachID uuid.UUID) Step {
	return Step{Entity: id, Type: entityType, Op: OpDetach, Field: field, DetachID: detachID}
}

func skipStep(entityType EntityType, id uuid.UUID) Step {
	return Step{Entity: id, Type: entityType, Op: OpSkip}
}
