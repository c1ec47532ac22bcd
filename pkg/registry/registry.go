// Package registry holds the statically linked workflow actions and their
// structured-input schemas. The bot runtime resolves actions by ID; there
// is no dynamic plugin loading.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/procura-ai/procura/pkg/protocol"
)

type Registry struct {
	logger  *slog.Logger
	actions map[string]protocol.Action
	schemas map[string]*gojsonschema.Schema
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:  logger,
		actions: make(map[string]protocol.Action),
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

// Register adds an action under its ID. Actions exposing an input schema
// get it compiled once here; a schema that fails to compile is a
// programming error and is rejected immediately.
func (r *Registry) Register(action protocol.Action) error {
	id := action.ID()
	if _, exists := r.actions[id]; exists {
		return fmt.Errorf("action %q already registered", id)
	}

	if provider, ok := action.(protocol.InputSchemaProvider); ok && provider.InputSchema() != nil {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(provider.InputSchema()))
		if err != nil {
			return fmt.Errorf("failed to compile input schema for action %q: %w", id, err)
		}

		r.schemas[id] = schema
	}

	r.actions[id] = action
	r.logger.Debug("Registered action", "action_id", id)

	return nil
}

// Resolve returns the action registered under the given ID.
func (r *Registry) Resolve(actionID string) (protocol.Action, error) {
	action, ok := r.actions[actionID]
	if !ok {
		return nil, fmt.Errorf("action %q not registered", actionID)
	}

	return action, nil
}

// ValidateInput checks a structured turn payload against the action's
// input schema. Actions without a schema accept any payload; free-text
// turns never reach this path.
func (r *Registry) ValidateInput(actionID string, payload map[string]any) error {
	schema, ok := r.schemas[actionID]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("failed to validate input for action %q: %w", actionID, err)
	}

	if !result.Valid() {
		msg := fmt.Sprintf("invalid input for action %q:", actionID)
		for _, desc := range result.Errors() {
			msg += fmt.Sprintf(" %s;", desc.String())
		}

		return fmt.Errorf("%s", msg)
	}

	return nil
}

// ActionIDs returns all registered action identifiers, sorted.
func (r *Registry) ActionIDs() []string {
	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
