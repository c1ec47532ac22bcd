package selectsuppliers

import (
	"encoding/json"
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

func stateWithSearchResults(t *testing.T) *models.UserWorkflowState {
	t.Helper()

	found := []models.SelectedSupplier{
		{OrderID: 1, VendorNumber: "V-100", CompanyCode: "1000", VendorName: "Acme Corp"},
		{OrderID: 2, VendorNumber: "V-200", CompanyCode: "1000", VendorName: "Globex"},
		{OrderID: 3, VendorNumber: "V-300", CompanyCode: "2000", VendorName: "Initech"},
	}

	encoded, err := json.Marshal(found)
	require.NoError(t, err)

	state := models.NewUserWorkflowState("user-1")
	state.CurrentStep = models.StepSuppliersFound
	state.ProjectID = "PRJ-77"
	state.EmailID = "buyer@example.com"
	state.SuppliersJSON = string(encoded)

	return state
}

func TestSelectSuppliers_Success(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("SelectSuppliers", mock.Anything, "PRJ-77", mock.AnythingOfType("[]models.SelectedSupplier")).
		Return(`{"ok":true}`, nil)

	state := stateWithSearchResults(t)
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "1 and 3 please"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeOK, result.Outcome)
	assert.Contains(t, result.Message, "Acme Corp")
	assert.Contains(t, result.Message, "Initech")
	assert.NotContains(t, result.Message, "Globex")
	assert.Equal(t, models.StepSuppliersSelected, state.CurrentStep)

	var selected []models.SelectedSupplier
	require.NoError(t, json.Unmarshal([]byte(state.SuppliersJSON), &selected))
	require.Len(t, selected, 2)
	assert.Equal(t, "Acme Corp", selected[0].VendorName)
	assert.Equal(t, "Initech", selected[1].VendorName)
	client.AssertExpectations(t)
}

func TestSelectSuppliers_UnknownOrderID(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := stateWithSearchResults(t)
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "2 and 9"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeValidationFailed, result.Outcome)
	assert.Contains(t, result.Message, "9")
	assert.Equal(t, models.StepSuppliersFound, state.CurrentStep)
	client.AssertNotCalled(t, "SelectSuppliers")
}

func TestSelectSuppliers_NoNumbersInTurn(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := stateWithSearchResults(t)
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "the first one sounds good"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeValidationFailed, result.Outcome)
	client.AssertNotCalled(t, "SelectSuppliers")
}

func TestSelectSuppliers_NoCachedSearchResults(t *testing.T) {
	client := new(mocks.MockSourcingClient)

	state := stateWithSearchResults(t)
	state.SuppliersJSON = ""
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "1"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeMissingKey, result.Outcome)
	assert.Contains(t, result.Message, "find suppliers")
}

func TestSelectSuppliers_BackendFailure(t *testing.T) {
	client := new(mocks.MockSourcingClient)
	client.On("SelectSuppliers", mock.Anything, "PRJ-77", mock.Anything).
		Return("", errors.New("selection rejected"))

	state := stateWithSearchResults(t)
	action := NewAction(client)

	result, err := action.Execute(t.Context(), state, protocol.Input{Text: "1"}, slog.Default())
	require.NoError(t, err)

	assert.Equal(t, protocol.OutcomeBackendError, result.Outcome)
	assert.Equal(t, models.StepSuppliersFound, state.CurrentStep)
	assert.Equal(t, "selection rejected", state.LastError)
}
