// Package protocol defines the boundaries between the workflow core and its
// collaborators: the action dispatch surface and the upstream sourcing
// backend client.
package protocol

import (
	"context"
	"log/slog"

	"github.com/procura-ai/procura/pkg/models"
)

// Input carries one turn's user input into an action. The transport
// collaborator builds it from the raw chat payload; actions never inspect
// untyped maps.
type Input struct {
	// Text is the raw user utterance, free text or a JSON snippet.
	Text string `json:"text"`
}

// Result is the machine-readable outcome of an action plus the user-facing
// chat message the bot should render.
type Result struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

// Common outcome values shared across actions.
const (
	OutcomeOK               = "ok"
	OutcomeValidationFailed = "validation_failed"
	OutcomeMissingKey       = "missing_key"
	OutcomeBackendError     = "backend_error"
)

// Action is one workflow operation (create project, upsert milestones, ...).
// Execute mutates the supplied state on success, including advancing the
// current step; the caller only persists afterwards. Expected business
// conditions (missing fields, empty selections) are reported through
// Result.Outcome, not through the error return.
type Action interface {
	ID() string
	Execute(ctx context.Context, state *models.UserWorkflowState, input Input, logger *slog.Logger) (*Result, error)
}

// InputSchemaProvider is implemented by actions whose structured (JSON)
// input form can be schema-checked before dispatch.
type InputSchemaProvider interface {
	InputSchema() map[string]any
}
