package workflow

import (
	"strings"
	"testing"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestWelcomeMessage_CoversAllSteps(t *testing.T) {
	for step := range legalActions {
		message := WelcomeMessage(step, "a@b.com", "P-1")
		assert.NotEmpty(t, message, "step %s", step)
	}
}

func TestWelcomeMessage_UnknownStepFallsBack(t *testing.T) {
	message := WelcomeMessage(models.WorkflowStep("bogus"), "", "")

	assert.Contains(t, message, "get started")
}

func TestWelcomeMessage_ProjectReference(t *testing.T) {
	withProject := WelcomeMessage(models.StepProjectCreated, "a@b.com", "P-9")
	assert.Contains(t, withProject, "P-9")

	withEmailOnly := WelcomeMessage(models.StepProjectCreated, "a@b.com", "")
	assert.Contains(t, withEmailOnly, "a@b.com")
}

func TestPlannerContext_ListsLegalActions(t *testing.T) {
	for step := range legalActions {
		context := PlannerContext(step)

		for _, action := range LegalActions(step) {
			assert.Contains(t, context, action, "step %s should mention %s", step, action)
		}
	}
}

func TestPlannerContext_UnknownStep(t *testing.T) {
	context := PlannerContext(models.WorkflowStep("bogus"))

	assert.True(t, strings.Contains(context, "unknown") || strings.Contains(context, "fresh"))
	assert.Contains(t, context, ActionReset)
}
