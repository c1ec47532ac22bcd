// Package findsuppliers implements the find_suppliers action: it asks the
// sourcing backend for vendors matching the project and caches the results
// on the state so a later turn can select from them by number.
package findsuppliers

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

type Action struct {
	client protocol.SourcingClient
}

func NewAction(client protocol.SourcingClient) *Action {
	return &Action{client: client}
}

func (a *Action) ID() string {
	return workflow.ActionFindSuppliers
}

func (a *Action) Execute(ctx context.Context, state *models.UserWorkflowState, input protocol.Input, logger *slog.Logger) (*protocol.Result, error) {
	logger = logger.With("action", a.ID(), "user_id", state.UserID)

	if state.ProjectID == "" {
		logger.Warn("No project ID on state, cannot search suppliers")

		return &protocol.Result{
			Outcome: protocol.OutcomeMissingKey,
			Message: "I lost track of your project. Please create it again or say \"reset\" to start over.",
		}, nil
	}

	suppliers, raw, err := a.client.FindSuppliers(ctx, state.ProjectID)
	if err != nil {
		logger.Error("Supplier search failed", "error", err, "project_id", state.ProjectID)

		state.LastError = err.Error()

		return &protocol.Result{
			Outcome: protocol.OutcomeBackendError,
			Message: "Sorry, the supplier search failed. Please try again in a moment.",
		}, nil
	}

	if len(suppliers) == 0 {
		// Stay on the current step so the search stays legal.
		return &protocol.Result{
			Outcome: protocol.OutcomeOK,
			Message: "No suppliers matched your project yet. You can adjust the milestones and search again.",
		}, nil
	}

	encoded, err := json.Marshal(suppliers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode suppliers: %w", err)
	}

	state.SuppliersJSON = string(encoded)
	state.LastAPIResponse = raw
	state.LastError = ""
	state.CurrentStep = models.StepSuppliersFound

	logger.Info("Suppliers found", "project_id", state.ProjectID, "count", len(suppliers))

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: summarize(suppliers),
	}, nil
}

func summarize(suppliers []models.SelectedSupplier) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "I found %d supplier(s):\n", len(suppliers))

	for _, supplier := range suppliers {
		fmt.Fprintf(&builder, "%d. %s\n", supplier.OrderID, supplier.VendorName)
	}

	builder.WriteString("Pick the ones you want by their numbers, for example: \"1 and 3\".")

	return builder.String()
}
