// Package publishproject implements the two-turn publish flow: the
// publish_project action shows a summary and asks for confirmation, and the
// confirm_publish action performs the actual publish on the sourcing
// backend. Publishing is the one irreversible workflow step, so it never
// happens on a single turn.
package publishproject

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/workflow"
)

// PublishAction prepares the publish: it summarizes what is about to go out
// and asks the user to confirm. It never touches the backend.
type PublishAction struct{}

func NewPublishAction() *PublishAction {
	return &PublishAction{}
}

func (a *PublishAction) ID() string {
	return workflow.ActionPublishProject
}

func (a *PublishAction) Execute(_ context.Context, state *models.UserWorkflowState, _ protocol.Input, logger *slog.Logger) (*protocol.Result, error) {
	logger.With("action", a.ID(), "user_id", state.UserID).Info("Publish requested, awaiting confirmation")

	if state.ProjectID == "" {
		return &protocol.Result{
			Outcome: protocol.OutcomeMissingKey,
			Message: "I lost track of your project. Please create it again or say \"reset\" to start over.",
		}, nil
	}

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: summarize(state),
	}, nil
}

// ConfirmAction performs the publish after the user confirmed.
type ConfirmAction struct {
	client protocol.SourcingClient
}

func NewConfirmAction(client protocol.SourcingClient) *ConfirmAction {
	return &ConfirmAction{client: client}
}

func (a *ConfirmAction) ID() string {
	return workflow.ActionConfirmPublish
}

func (a *ConfirmAction) Execute(ctx context.Context, state *models.UserWorkflowState, _ protocol.Input, logger *slog.Logger) (*protocol.Result, error) {
	logger = logger.With("action", a.ID(), "user_id", state.UserID)

	if state.ProjectID == "" {
		return &protocol.Result{
			Outcome: protocol.OutcomeMissingKey,
			Message: "I lost track of your project. Please create it again or say \"reset\" to start over.",
		}, nil
	}

	raw, err := a.client.PublishProject(ctx, state.ProjectID)
	if err != nil {
		logger.Error("Failed to publish project", "error", err, "project_id", state.ProjectID)

		state.LastError = err.Error()

		return &protocol.Result{
			Outcome: protocol.OutcomeBackendError,
			Message: "Sorry, publishing failed. Your selections are safe; please try again in a moment.",
		}, nil
	}

	state.LastAPIResponse = raw
	state.LastError = ""
	state.CurrentStep = models.StepPublished

	logger.Info("Project published", "project_id", state.ProjectID)

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: fmt.Sprintf("Your project %s is published. Suppliers will be notified. "+
			"Say \"reset\" to start a new sourcing project.", state.ProjectID),
	}, nil
}

func summarize(state *models.UserWorkflowState) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "You're about to publish %q (ID %s)", state.ProjectTitle, state.ProjectID)

	var selected []models.SelectedSupplier
	if state.SuppliersJSON != "" && json.Unmarshal([]byte(state.SuppliersJSON), &selected) == nil && len(selected) > 0 {
		names := make([]string, 0, len(selected))
		for _, supplier := range selected {
			names = append(names, supplier.VendorName)
		}

		fmt.Fprintf(&builder, " to %s", strings.Join(names, ", "))
	}

	builder.WriteString(". Publishing is final. Say \"confirm\" to proceed or \"reset\" to abandon.")

	return builder.String()
}
