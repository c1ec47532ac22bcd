package createproject

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

const validTurn = `Create a project called "Widget Sourcing", description: we need 500 widgets, ` +
	`email: buyer@example.com, budget: $12,500.00`

func TestCreateProject_Success(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("CreateProject", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("models.ProjectDetails")).
		Return("PRJ-77", `{"id":"PRJ-77"}`, nil)

	state := models.NewUserWorkflowState("user-1")
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: validTurn}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeOK, result.Outcome)
	assert.Contains(t, result.Message, "Widget Sourcing")
	assert.Equal(t, models.StepProjectCreated, state.CurrentStep)
	assert.Equal(t, "PRJ-77", state.ProjectID)
	assert.Equal(t, "buyer@example.com", state.EmailID)
	assert.NotEmpty(t, state.EngagementID)
	assert.NotEmpty(t, state.StateID)
	assert.Empty(t, state.LastError)
	client.AssertExpectations(t)
}

func TestCreateProject_ValidationFailureListsEveryViolation(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := models.NewUserWorkflowState("user-1")
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "make me a project"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeValidationFailed, result.Outcome)
	assert.Contains(t, result.Message, "title is required")
	assert.Contains(t, result.Message, "description is required")
	assert.Contains(t, result.Message, "email address is required")
	assert.Contains(t, result.Message, "budget must be greater than zero")
	assert.Equal(t, models.StepProjectToBeCreated, state.CurrentStep)
	client.AssertNotCalled(t, "CreateProject")
}

func TestCreateProject_MalformedEmail(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := models.NewUserWorkflowState("user-1")
	action := NewAction(client)

	turn := `title: Widgets, description: bulk widgets, email: not-an-email, budget: 100`

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: turn}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeValidationFailed, result.Outcome)
	assert.Contains(t, result.Message, "not well-formed")
}

func TestCreateProject_StartMustPrecedeEnd(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := models.NewUserWorkflowState("user-1")
	action := NewAction(client)

	turn := `title: Widgets, description: bulk widgets, email: buyer@example.com, budget: 100, ` +
		`from 2026-03-01T00:00:00Z to 2026-01-01T00:00:00Z`

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: turn}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeValidationFailed, result.Outcome)
	assert.Contains(t, result.Message, "start date must be before the end date")
	client.AssertNotCalled(t, "CreateProject")
}

func TestCreateProject_BackendFailureEntersErrorStep(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("CreateProject", mock.Anything, mock.Anything, mock.Anything).
		Return("", "", errors.New("upstream timeout"))

	state := models.NewUserWorkflowState("user-1")
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: validTurn}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeBackendError, result.Outcome)
	assert.Equal(t, models.StepError, state.CurrentStep)
	assert.Equal(t, "upstream timeout", state.LastError)
	assert.Empty(t, state.ProjectID)
}
