// Package upsertmilestones implements the upsert_milestones action: it
// parses milestones from the user's turn and attaches them to the project
// on the sourcing backend.
package upsertmilestones

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
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
	return workflow.ActionUpsertMilestones
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
		logger.Warn("No project ID on state, cannot upsert milestones")

		return &protocol.Result{
			Outcome: protocol.OutcomeMissingKey,
			Message: "I lost track of your project. Please create it again or say \"reset\" to start over.",
		}, nil
	}

	milestones := extract.Milestones(input.Text)
	if len(milestones) == 0 {
		return &protocol.Result{
			Outcome: protocol.OutcomeValidationFailed,
			Message: "I couldn't find any milestones in that. List each one with a delivery date, " +
				"for example: \"- Ship laptops - due 2025-11-01\".",
		}, nil
	}

	raw, err := a.client.UpsertMilestones(ctx, state.ProjectID, milestones)
	if err != nil {
		logger.Error("Failed to upsert milestones", "error", err, "project_id", state.ProjectID)

		state.LastError = err.Error()

		return &protocol.Result{
			Outcome: protocol.OutcomeBackendError,
			Message: "Sorry, I couldn't save the milestones right now. Please try again in a moment.",
		}, nil
	}

	encoded, err := json.Marshal(milestones)
	if err != nil {
		return nil, fmt.Errorf("failed to encode milestones: %w", err)
	}

	state.MilestonesJSON = string(encoded)
	state.LastAPIResponse = raw
	state.LastError = ""
	state.CurrentStep = models.StepMilestonesCreated

	logger.Info("Milestones upserted", "project_id", state.ProjectID, "count", len(milestones))

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: summarize(milestones),
	}, nil
}

func summarize(milestones []models.ProjectMilestone) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Saved %d milestone(s):\n", len(milestones))

	for _, milestone := range milestones {
		fmt.Fprintf(&builder, "- %s (due %s)\n", milestone.Title, milestone.DeliveryDate.Format("2006-01-02"))
	}

	builder.WriteString("Say \"find suppliers\" when you're ready to search for vendors.")

	return builder.String()
}
