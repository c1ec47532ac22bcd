package findsuppliers

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

func stateWithMilestones() *models.UserWorkflowState {
	state := models.NewUserWorkflowState("user-1")
	state.CurrentStep = models.StepMilestonesCreated
	state.ProjectID = "PRJ-77"
	state.EmailID = "buyer@example.com"

	return state
}

func TestFindSuppliers_Success(t *testing.T) {
	found := []models.SelectedSupplier{
		{OrderID: 1, VendorNumber: "V-100", CompanyCode: "1000", VendorName: "Acme Corp"},
		{OrderID: 2, VendorNumber: "V-200", CompanyCode: "1000", VendorName: "Globex"},
	}

	client := new(mocks.MockSourcingClient)
	client.On("FindSuppliers", mock.Anything, "PRJ-77").Return(found, `{"count":2}`, nil)

	state := stateWithMilestones()
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeOK, result.Outcome)
	assert.Contains(t, result.Message, "1. Acme Corp")
	assert.Contains(t, result.Message, "2. Globex")
	assert.Equal(t, models.StepSuppliersFound, state.CurrentStep)
	assert.Contains(t, state.SuppliersJSON, "Acme Corp")
	client.AssertExpectations(t)
}

func TestFindSuppliers_EmptyResultStaysOnStep(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("FindSuppliers", mock.Anything, "PRJ-77").
		Return([]models.SelectedSupplier{}, `{"count":0}`, nil)

	state := stateWithMilestones()
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeOK, result.Outcome)
	assert.Contains(t, result.Message, "No suppliers matched")
	assert.Equal(t, models.StepMilestonesCreated, state.CurrentStep)
	assert.Empty(t, state.SuppliersJSON)
}

func TestFindSuppliers_MissingProjectID(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := stateWithMilestones()
	state.ProjectID = ""
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeMissingKey, result.Outcome)
	client.AssertNotCalled(t, "FindSuppliers")
}

func TestFindSuppliers_BackendFailure(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("FindSuppliers", mock.Anything, "PRJ-77").
		Return(nil, "", errors.New("search unavailable"))

	state := stateWithMilestones()
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeBackendError, result.Outcome)
	assert.Equal(t, models.StepMilestonesCreated, state.CurrentStep)
	assert.Equal(t, "search unavailable", state.LastError)
}
