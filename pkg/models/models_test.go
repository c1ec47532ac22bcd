package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowStep_Ord(t *testing.T) {
	ordered := []WorkflowStep{
		StepProjectToBeCreated,
		StepProjectCreated,
		StepMilestonesCreated,
		StepSuppliersFound,
		StepSuppliersSelected,
		StepPublished,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Ord(), ordered[i-1].Ord(),
			"%s should order after %s", ordered[i], ordered[i-1])
	}

	assert.Equal(t, -1, StepError.Ord())
	assert.Equal(t, -1, WorkflowStep("bogus").Ord())
}

func TestParseWorkflowStep(t *testing.T) {
	step, err := ParseWorkflowStep("suppliers_found")
	require.NoError(t, err)
	assert.Equal(t, StepSuppliersFound, step)

	_, err = ParseWorkflowStep("SuppliersFound")
	require.Error(t, err)

	_, err = ParseWorkflowStep("")
	require.Error(t, err)
}

// The step is persisted as a single string value, so the only defence
// against serialization drift is a round-trip check.
func TestUserWorkflowState_StepRoundTrip(t *testing.T) {
	for step := range stepOrder {
		state := NewUserWorkflowState("user-1")
		state.CurrentStep = step

		payload, err := json.Marshal(state)
		require.NoError(t, err)

		var restored UserWorkflowState

		require.NoError(t, json.Unmarshal(payload, &restored))
		assert.Equal(t, step, restored.CurrentStep)
		assert.True(t, restored.CurrentStep.IsValid())
	}
}

func TestNewUserWorkflowState(t *testing.T) {
	state := NewUserWorkflowState("user-42")

	assert.Equal(t, "user-42", state.UserID)
	assert.Equal(t, StepProjectToBeCreated, state.CurrentStep)
	assert.Empty(t, state.ProjectID)
	assert.Empty(t, state.EngagementID)
	assert.Empty(t, state.StateID)
	assert.False(t, state.LastActivityTime.IsZero())
}

func TestUserWorkflowState_EnsureStateID(t *testing.T) {
	state := NewUserWorkflowState("user-1")

	id := state.EnsureStateID()
	assert.NotEmpty(t, id)

	// Stable once generated.
	assert.Equal(t, id, state.EnsureStateID())
}
