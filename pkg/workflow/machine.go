// Package workflow implements the sourcing workflow state machine: which
// actions are legal at each step, best-effort repair of inconsistent
// persisted state, and the step-context guidance surface.
//
// Transitions themselves are monotonic and triggered by the action that
// owns them; this package never advances a step on its own.
package workflow

import (
	"log/slog"
	"slices"

	"github.com/procura-ai/procura/pkg/models"
)

// Action identifiers understood by the dispatch surface.
const (
	ActionCreateProject    = "create_project"
	ActionUpsertMilestones = "upsert_milestones"
	ActionFindSuppliers    = "find_suppliers"
	ActionSelectSuppliers  = "select_suppliers"
	ActionPublishProject   = "publish_project"
	ActionConfirmPublish   = "confirm_publish"
	ActionReset            = "reset"
	ActionStatus           = "status"
)

var legalActions = map[models.WorkflowStep][]string{
	models.StepProjectToBeCreated: {ActionCreateProject, ActionReset},
	models.StepProjectCreated:     {ActionUpsertMilestones, ActionReset},
	models.StepMilestonesCreated:  {ActionFindSuppliers, ActionReset},
	models.StepSuppliersFound:     {ActionSelectSuppliers, ActionReset},
	models.StepSuppliersSelected:  {ActionPublishProject, ActionConfirmPublish, ActionReset},
	models.StepPublished:          {ActionReset},
	models.StepError:              {ActionCreateProject, ActionReset},
}

// LegalActions returns the action identifiers allowed at the given step.
// Unknown steps fall back to the error-step actions.
func LegalActions(step models.WorkflowStep) []string {
	actions, ok := legalActions[step]
	if !ok {
		actions = legalActions[models.StepError]
	}

	return slices.Clone(actions)
}

// IsActionLegal reports whether the action may run at the given step.
// Status is read-only and allowed everywhere.
func IsActionLegal(step models.WorkflowStep, actionID string) bool {
	if actionID == ActionStatus {
		return true
	}

	return slices.Contains(LegalActions(step), actionID)
}

// stepsRequiringKeys are the steps whose progress depends on at least one
// correlating key (email ID or project ID) having survived persistence.
var stepsRequiringKeys = map[models.WorkflowStep]bool{
	models.StepProjectCreated:    true,
	models.StepMilestonesCreated: true,
	models.StepSuppliersSelected: true,
}

// ValidateAndRepair checks the loaded state for inconsistency before a turn
// runs. State lives in an external store and can be corrupted by format
// migrations or partial writes; the policy is deliberately conservative:
// reset only when neither correlating key survived, otherwise preserve
// progress and flag the gap. It never fabricates a missing field.
func ValidateAndRepair(state *models.UserWorkflowState, logger *slog.Logger) models.WorkflowStep {
	if !stepsRequiringKeys[state.CurrentStep] {
		return state.CurrentStep
	}

	switch {
	case state.EmailID == "" && state.ProjectID == "":
		logger.Warn("workflow state unrecoverable, resetting",
			"user_id", state.UserID,
			"step", state.CurrentStep)

		state.CurrentStep = models.StepProjectToBeCreated
		state.ProjectID = ""
		state.EngagementID = ""
		state.EmailID = ""
	case state.EmailID == "" || state.ProjectID == "":
		logger.Warn("workflow state partially inconsistent, preserving",
			"user_id", state.UserID,
			"step", state.CurrentStep,
			"has_email", state.EmailID != "",
			"has_project", state.ProjectID != "")
	}

	return state.CurrentStep
}

// Reset returns the state to its initial step, clearing all identifying and
// cached fields and starting a fresh session.
func Reset(state *models.UserWorkflowState) {
	state.CurrentStep = models.StepProjectToBeCreated
	state.EmailID = ""
	state.ProjectID = ""
	state.EngagementID = ""
	state.ProjectTitle = ""
	state.ProjectDescription = ""
	state.MilestonesJSON = ""
	state.SuppliersJSON = ""
	state.LastAPIResponse = ""
	state.LastError = ""
	state.StateID = models.NewStateID()
	state.Touch()
}
