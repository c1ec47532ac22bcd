// Package createproject implements the create_project action: it extracts
// project details from the user's turn, validates them, creates the project
// on the sourcing backend, and advances the workflow.
package createproject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/procura-ai/procura/pkg/extract"
	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/workflow"
)

type Action struct {
	client   protocol.SourcingClient
	validate *validator.Validate
}

func NewAction(client protocol.SourcingClient) *Action {
	return &Action{
		client:   client,
		validate: validator.New(),
	}
}

func (a *Action) ID() string {
	return workflow.ActionCreateProject
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

	details := extract.ProjectDetails(input.Text)

	if violations := a.validateDetails(details); len(violations) > 0 {
		logger.Info("Project details incomplete", "violations", len(violations))

		return &protocol.Result{
			Outcome: protocol.OutcomeValidationFailed,
			Message: "I can't create the project yet:\n- " + strings.Join(violations, "\n- "),
		}, nil
	}

	engagementID := models.NewEngagementID()

	projectID, raw, err := a.client.CreateProject(ctx, engagementID, details)
	if err != nil {
		logger.Error("Failed to create project", "error", err)

		// No project exists yet, so there is no progress to preserve.
		state.CurrentStep = models.StepError
		state.LastError = err.Error()

		return &protocol.Result{
			Outcome: protocol.OutcomeBackendError,
			Message: "Sorry, I couldn't reach the sourcing backend to create your project. Please try again in a moment.",
		}, nil
	}

	state.EnsureStateID()
	state.EngagementID = engagementID
	state.ProjectID = projectID
	state.EmailID = details.Email
	state.ProjectTitle = details.Title
	state.ProjectDescription = details.Description
	state.LastAPIResponse = raw
	state.LastError = ""
	state.CurrentStep = models.StepProjectCreated

	logger.Info("Project created", "project_id", projectID, "engagement_id", engagementID)

	return &protocol.Result{
		Outcome: protocol.OutcomeOK,
		Message: fmt.Sprintf("Project %q created (ID %s). Next, list the milestones with their delivery dates.",
			details.Title, projectID),
	}, nil
}

// validateDetails returns one human-readable violation per problem so the
// user can fix everything in a single follow-up message.
func (a *Action) validateDetails(details models.ProjectDetails) []string {
	var violations []string

	if err := a.validate.Struct(details); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldError := range fieldErrors {
				violations = append(violations, describeViolation(fieldError))
			}
		} else {
			violations = append(violations, err.Error())
		}
	}

	if details.StartDate != nil && details.EndDate != nil && !details.StartDate.Before(*details.EndDate) {
		violations = append(violations, "the start date must be before the end date")
	}

	return violations
}

func describeViolation(fieldError validator.FieldError) string {
	switch fieldError.Field() {
	case "Title":
		return "a project title is required"
	case "Description":
		return "a project description is required"
	case "Email":
		if fieldError.Tag() == "email" {
			return "the email address is not well-formed"
		}

		return "an email address is required"
	case "Budget":
		return "the budget must be greater than zero"
	default:
		return fmt.Sprintf("%s is invalid", strings.ToLower(fieldError.Field()))
	}
}
