// Package session implements the session-management actions: reset (start a
// fresh workflow) and status (read-only progress report, legal at every
// step).
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/workflow"
)

type ResetAction struct{}

func NewResetAction() *ResetAction {
	return &ResetAction{}
}

func (a *ResetAction) ID() string {
	return workflow.ActionReset
}

func (a *ResetAction) Execute(_ context.Context, state *models.UserWorkflowState, _ protocol.Input, logger *slog.Logger) (*protocol.Result, error) {
	logger.With("action", a.ID(), "user_id", state.UserID).Info("Resetting workflow", "from_step", state.CurrentStep)

	workflow.Reset(state)

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: workflow.WelcomeMessage(state.CurrentStep, state.EmailID, state.ProjectID),
	}, nil
}

type StatusAction struct{}

func NewStatusAction() *StatusAction {
	return &StatusAction{}
}

func (a *StatusAction) ID() string {
	return workflow.ActionStatus
}

func (a *StatusAction) Execute(_ context.Context, state *models.UserWorkflowState, _ protocol.Input, _ *slog.Logger) (*protocol.Result, error) {
	var builder strings.Builder

	fmt.Fprintf(&builder, "You're at step %s.", state.CurrentStep)

	if state.ProjectTitle != "" {
		fmt.Fprintf(&builder, " Project: %q", state.ProjectTitle)

		if state.ProjectID != "" {
			fmt.Fprintf(&builder, " (ID %s)", state.ProjectID)
		}

		builder.WriteString(".")
	}

	if state.LastError != "" {
		fmt.Fprintf(&builder, " Last error: %s.", state.LastError)
	}

	builder.WriteString("\n")
	builder.WriteString(workflow.WelcomeMessage(state.CurrentStep, state.EmailID, state.ProjectID))

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: builder.String(),
	}, nil
}
