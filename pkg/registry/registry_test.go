package registry_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/registry"
)

type stubAction struct {
	id     string
	schema map[string]any
}

func (a *stubAction) ID() string { return a.id }

func (a *stubAction) Execute(_ context.Context, _ *models.UserWorkflowState, _ protocol.Input, _ *slog.Logger) (*protocol.Result, error) {
	return &protocol.Result{Outcome: protocol.OutcomeOK}, nil
}

func (a *stubAction) InputSchema() map[string]any { return a.schema }

func TestRegistryResolve(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	require.NoError(t, reg.Register(&stubAction{id: "create_project"}))

	action, err := reg.Resolve("create_project")
	require.NoError(t, err)
	assert.Equal(t, "create_project", action.ID())
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	_, err := reg.Resolve("does_not_exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	require.NoError(t, reg.Register(&stubAction{id: "status"}))

	err := reg.Register(&stubAction{id: "status"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryValidateInput(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	require.NoError(t, reg.Register(&stubAction{
		id: "select_suppliers",
		schema: map[string]any{
			"type":     "object",
			"required": []string{"order_ids"},
			"properties": map[string]any{
				"order_ids": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
		},
	}))

	err := reg.ValidateInput("select_suppliers", map[string]any{"order_ids": []any{1, 3}})
	assert.NoError(t, err)

	err = reg.ValidateInput("select_suppliers", map[string]any{"order_ids": "not-an-array"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select_suppliers")
}

func TestRegistryValidateInputNoSchema(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	require.NoError(t, reg.Register(&stubAction{id: "reset"}))
	assert.NoError(t, reg.ValidateInput("reset", map[string]any{"anything": true}))
}

func TestRegistryActionIDs(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	require.NoError(t, reg.Register(&stubAction{id: "status"}))
	require.NoError(t, reg.Register(&stubAction{id: "reset"}))

	assert.Equal(t, []string{"reset", "status"}, reg.ActionIDs())
}
