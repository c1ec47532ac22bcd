// Package models defines the core domain models for the sourcing workflow assistant.
package models

import "fmt"

// WorkflowStep represents the current phase of the sourcing process for one user.
type WorkflowStep string

const (
	StepProjectToBeCreated WorkflowStep = "project_to_be_created" // Nothing created yet
	StepProjectCreated     WorkflowStep = "project_created"       // Sourcing project exists upstream
	StepMilestonesCreated  WorkflowStep = "milestones_created"    // Milestones attached to the project
	StepSuppliersFound     WorkflowStep = "suppliers_found"       // Supplier search results cached
	StepSuppliersSelected  WorkflowStep = "suppliers_selected"    // User picked suppliers by order ID
	StepPublished          WorkflowStep = "published"             // Project published upstream
	StepError              WorkflowStep = "error"                 // Terminal error, reset required
)

// stepOrder reflects workflow progress. StepError sits outside the
// progression and gets a negative ordinal.
var stepOrder = map[WorkflowStep]int{
	StepProjectToBeCreated: 0,
	StepProjectCreated:     1,
	StepMilestonesCreated:  2,
	StepSuppliersFound:     3,
	StepSuppliersSelected:  4,
	StepPublished:          5,
	StepError:              -1,
}

// Ord returns the progress ordinal of the step. Unknown steps report -1,
// same as StepError.
func (s WorkflowStep) Ord() int {
	ord, ok := stepOrder[s]
	if !ok {
		return -1
	}

	return ord
}

// IsValid reports whether the step is one of the known workflow steps.
func (s WorkflowStep) IsValid() bool {
	_, ok := stepOrder[s]

	return ok
}

// ParseWorkflowStep converts a persisted string into a WorkflowStep.
func ParseWorkflowStep(value string) (WorkflowStep, error) {
	step := WorkflowStep(value)
	if !step.IsValid() {
		return "", fmt.Errorf("unknown workflow step: %q", value)
	}

	return step, nil
}
