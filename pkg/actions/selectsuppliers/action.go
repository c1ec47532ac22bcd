// Package selectsuppliers implements the select_suppliers action: it reads
// the user's order-number picks, resolves them against the cached search
// results, and records the selection on the sourcing backend.
package selectsuppliers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/procura-ai/procura/pkg/extract"
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
	return workflow.ActionSelectSuppliers
}

func (a *Action) InputSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text": map[string]any{"type": "string", "minLength": 1},
		},
	}
}

func (a *Action) Execute(ctx context.Context, state *models.UserWorkflowState, input protocol.Input, logger *slog.Logger) (*protocol.Result, error) {
	logger = logger.With("action", a.ID(), "user_id", state.UserID)

	if state.ProjectID == "" {
		logger.Warn("No project ID on state, cannot select suppliers")

		return &protocol.Result{
			Outcome: protocol.OutcomeMissingKey,
			Message: "I lost track of your project. Please create it again or say \"reset\" to start over.",
		}, nil
	}

	var found []models.SelectedSupplier
	if state.SuppliersJSON != "" {
		if err := json.Unmarshal([]byte(state.SuppliersJSON), &found); err != nil {
			return nil, fmt.Errorf("failed to decode cached suppliers: %w", err)
		}
	}

	if len(found) == 0 {
		return &protocol.Result{
			Outcome: protocol.OutcomeMissingKey,
			Message: "There are no supplier search results to pick from. Say \"find suppliers\" first.",
		}, nil
	}

	orderIDs := extract.OrderSelections(input.Text)
	if len(orderIDs) == 0 {
		return &protocol.Result{
			Outcome: protocol.OutcomeValidationFailed,
			Message: "Tell me which suppliers you want by their numbers, for example: \"1 and 3\".",
		}, nil
	}

	selected, unknown := resolve(found, orderIDs)
	if len(unknown) > 0 {
		return &protocol.Result{
			Outcome: protocol.OutcomeValidationFailed,
			Message: fmt.Sprintf("I don't have suppliers numbered %s in the last search. "+
				"Pick numbers between 1 and %d.", joinInts(unknown), len(found)),
		}, nil
	}

	raw, err := a.client.SelectSuppliers(ctx, state.ProjectID, selected)
	if err != nil {
		logger.Error("Failed to select suppliers", "error", err, "project_id", state.ProjectID)

		state.LastError = err.Error()

		return &protocol.Result{
			Outcome: protocol.OutcomeBackendError,
			Message: "Sorry, I couldn't record the selection right now. Please try again in a moment.",
		}, nil
	}

	encoded, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("failed to encode selected suppliers: %w", err)
	}

	state.SuppliersJSON = string(encoded)
	state.LastAPIResponse = raw
	state.LastError = ""
	state.CurrentStep = models.StepSuppliersSelected

	logger.Info("Suppliers selected", "project_id", state.ProjectID, "count", len(selected))

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: summarize(selected),
	}, nil
}

// resolve maps order numbers to the cached search results, preserving the
// order the user gave them in.
func resolve(found []models.SelectedSupplier, orderIDs []int) (selected []models.SelectedSupplier, unknown []int) {
	byOrderID := make(map[int]models.SelectedSupplier, len(found))
	for _, supplier := range found {
		byOrderID[supplier.OrderID] = supplier
	}

	for _, orderID := range orderIDs {
		supplier, ok := byOrderID[orderID]
		if !ok {
			unknown = append(unknown, orderID)

			continue
		}

		selected = append(selected, supplier)
	}

	return selected, unknown
}

func summarize(selected []models.SelectedSupplier) string {
	names := make([]string, 0, len(selected))
	for _, supplier := range selected {
		names = append(names, supplier.VendorName)
	}

	return fmt.Sprintf("Selected %d supplier(s): %s. Say \"publish\" when you're ready to publish the project.",
		len(selected), strings.Join(names, ", "))
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, strconv.Itoa(value))
	}

	return strings.Join(parts, ", ")
}
