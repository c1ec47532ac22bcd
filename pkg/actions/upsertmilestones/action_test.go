package upsertmilestones

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/procura-ai/procura/pkg/mocks"
	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/protocol"
)

func stateWithProject() *models.UserWorkflowState {
	state := models.NewUserWorkflowState("user-1")
	state.CurrentStep = models.StepProjectCreated
	state.ProjectID = "PRJ-77"
	state.EmailID = "buyer@example.com"

	return state
}

func TestUpsertMilestones_Success(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("UpsertMilestones", mock.Anything, "PRJ-77", mock.AnythingOfType("[]models.ProjectMilestone")).
		Return(`{"ok":true}`, nil)

	state := stateWithProject()
	action := NewAction(client)

	turn := "- Ship laptops - due 2025-11-01\n- Install software - due 2025-12-01"

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: turn}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeOK, result.Outcome)
	assert.Contains(t, result.Message, "Ship laptops")
	assert.Contains(t, result.Message, "Install software")
	assert.Equal(t, models.StepMilestonesCreated, state.CurrentStep)
	assert.Contains(t, state.MilestonesJSON, "Ship laptops")
	client.AssertExpectations(t)
}

func TestUpsertMilestones_NoMilestonesFound(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := stateWithProject()
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "add some milestones please"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeValidationFailed, result.Outcome)
	assert.Equal(t, models.StepProjectCreated, state.CurrentStep)
	client.AssertNotCalled(t, "UpsertMilestones")
}

func TestUpsertMilestones_MissingProjectID(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := stateWithProject()
	state.ProjectID = ""
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "- Kickoff - due 2025-10-01"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeMissingKey, result.Outcome)
	client.AssertNotCalled(t, "UpsertMilestones")
}

func TestUpsertMilestones_BackendFailurePreservesStep(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("UpsertMilestones", mock.Anything, "PRJ-77", mock.Anything).
		Return("", errors.New("backend down"))

	state := stateWithProject()
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "- Kickoff - due 2025-10-01"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeBackendError, result.Outcome)
	assert.Equal(t, models.StepProjectCreated, state.CurrentStep)
	assert.Equal(t, "backend down", state.LastError)
	assert.Empty(t, state.MilestonesJSON)
}
