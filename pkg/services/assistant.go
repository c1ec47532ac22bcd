package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/procura-ai/procura/pkg/eventbus"
	"github.com/procura-ai/procura/pkg/events"
	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/otelhelper"
	"github.com/procura-ai/procura/pkg/persistence"
	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/registry"
	"github.com/procura-ai/procura/pkg/workflow"
)

// Assistant drives one chat turn at a time. State is loaded fresh from
// persistence at the start of every turn and saved at the end; nothing is
// cached across turns.
type Assistant struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	publisher   eventbus.EventPublisher
	tracer      trace.Tracer
}

// WithTracer enables per-turn tracing spans.
func (a *Assistant) WithTracer(tracer trace.Tracer) *Assistant {
	a.tracer = tracer

	return a
}

func NewAssistant(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	publisher eventbus.EventPublisher,
) *Assistant {
	return &Assistant{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		publisher:   publisher,
	}
}

// HealthCheck checks the health of the persistence layer.
func (a *Assistant) HealthCheck(ctx context.Context) (string, bool) {
	if a.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := a.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// HandleTurn runs one action for one user: load (or create) the state,
// repair it, gate the action against the current step, execute, persist,
// and publish the lifecycle event. Expected business conditions come back
// inside the Result; errors are reserved for infrastructure and
// programming faults.
func (a *Assistant) HandleTurn(ctx context.Context, userID, actionID string, input protocol.Input) (*protocol.Result, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	if actionID == "" {
		return nil, ErrEmptyActionID
	}

	var span trace.Span
	if a.tracer != nil {
		ctx, span = otelhelper.StartSpan(ctx, a.tracer, "workflow.turn",
			attribute.String(otelhelper.UserIDKey, userID),
			attribute.String(otelhelper.ActionIDKey, actionID))
		defer span.End()
	}

	action, err := a.registry.Resolve(actionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}

	state, err := a.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	workflow.ValidateAndRepair(state, a.logger)

	if !workflow.IsActionLegal(state.CurrentStep, actionID) {
		return nil, fmt.Errorf("%w: %q at step %q", ErrActionNotAllowed, actionID, state.CurrentStep)
	}

	result, err := action.Execute(ctx, state, input, a.logger)
	if err != nil {
		// Programming-class fault inside the action. The user still gets
		// an apology and the state records what happened.
		a.logger.Error("Action failed", "action_id", actionID, "user_id", userID, "error", err)

		state.LastError = err.Error()
		result = &protocol.Result{
			Outcome: protocol.OutcomeBackendError,
			Message: "Sorry, something went wrong on my side. Please try again.",
		}
	}

	state.Touch()

	if err := a.persistence.StateRepository().Save(ctx, state); err != nil {
		if span != nil {
			otelhelper.SetError(span, err, attribute.String(otelhelper.StepKey, string(state.CurrentStep)))
		}

		return nil, fmt.Errorf("failed to save state for user %s: %w", userID, err)
	}

	if span != nil {
		span.SetAttributes(attribute.String(otelhelper.StepKey, string(state.CurrentStep)))
	}

	if result.Outcome == protocol.OutcomeOK {
		a.publishLifecycleEvent(ctx, actionID, state)
	}

	return result, nil
}

// State returns the persisted workflow state for a user.
func (a *Assistant) State(ctx context.Context, userID string) (*models.UserWorkflowState, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	state, err := a.persistence.StateRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for user %s: %w", userID, err)
	}

	if state == nil {
		return nil, fmt.Errorf("%w: user %s", ErrStateNotFound, userID)
	}

	return state, nil
}

// StepContext describes what the user and the upstream planner should do
// next. New users get the initial-step context rather than a not-found.
type StepContext struct {
	Step           models.WorkflowStep `json:"step"`
	WelcomeMessage string              `json:"welcome_message"`
	PlannerContext string              `json:"planner_context"`
	LegalActions   []string            `json:"legal_actions"`
}

func (a *Assistant) StepContext(ctx context.Context, userID string) (*StepContext, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	state, err := a.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	workflow.ValidateAndRepair(state, a.logger)

	return &StepContext{
		Step:           state.CurrentStep,
		WelcomeMessage: workflow.WelcomeMessage(state.CurrentStep, state.EmailID, state.ProjectID),
		PlannerContext: workflow.PlannerContext(state.CurrentStep),
		LegalActions:   workflow.LegalActions(state.CurrentStep),
	}, nil
}

func (a *Assistant) loadOrCreate(ctx context.Context, userID string) (*models.UserWorkflowState, error) {
	state, err := a.persistence.StateRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for user %s: %w", userID, err)
	}

	if state == nil {
		state = models.NewUserWorkflowState(userID)
		state.EnsureStateID()
	}

	return state, nil
}

// publishLifecycleEvent emits the event matching a successfully completed
// action. Publishing is best-effort: a bus failure is logged, never
// surfaced to the user.
func (a *Assistant) publishLifecycleEvent(ctx context.Context, actionID string, state *models.UserWorkflowState) {
	if a.publisher == nil {
		return
	}

	event := a.eventFor(actionID, state)
	if event == nil {
		return
	}

	if err := a.publisher.Publish(ctx, state.UserID, event); err != nil {
		a.logger.Error("Failed to publish lifecycle event", "action_id", actionID, "user_id", state.UserID, "error", err)
	}
}

func (a *Assistant) eventFor(actionID string, state *models.UserWorkflowState) eventbus.Event {
	switch actionID {
	case workflow.ActionCreateProject:
		return events.ProjectCreated{
			BaseEvent:    events.NewBaseEvent(events.ProjectCreatedEvent, state.UserID, state.CurrentStep),
			ProjectID:    state.ProjectID,
			EngagementID: state.EngagementID,
			ProjectTitle: state.ProjectTitle,
		}
	case workflow.ActionUpsertMilestones:
		if state.CurrentStep != models.StepMilestonesCreated {
			return nil
		}

		return events.MilestonesUpserted{
			BaseEvent:      events.NewBaseEvent(events.MilestonesUpsertedEvent, state.UserID, state.CurrentStep),
			ProjectID:      state.ProjectID,
			MilestoneCount: countJSONItems(state.MilestonesJSON),
		}
	case workflow.ActionFindSuppliers:
		// An empty search leaves the step untouched and emits nothing.
		if state.CurrentStep != models.StepSuppliersFound {
			return nil
		}

		return events.SuppliersFound{
			BaseEvent:     events.NewBaseEvent(events.SuppliersFoundEvent, state.UserID, state.CurrentStep),
			ProjectID:     state.ProjectID,
			SupplierCount: countJSONItems(state.SuppliersJSON),
		}
	case workflow.ActionSelectSuppliers:
		if state.CurrentStep != models.StepSuppliersSelected {
			return nil
		}

		return events.SuppliersSelected{
			BaseEvent: events.NewBaseEvent(events.SuppliersSelectedEvent, state.UserID, state.CurrentStep),
			ProjectID: state.ProjectID,
			OrderIDs:  selectedOrderIDs(state.SuppliersJSON),
		}
	case workflow.ActionConfirmPublish:
		if state.CurrentStep != models.StepPublished {
			return nil
		}

		return events.ProjectPublished{
			BaseEvent: events.NewBaseEvent(events.ProjectPublishedEvent, state.UserID, state.CurrentStep),
			ProjectID: state.ProjectID,
		}
	case workflow.ActionReset:
		return events.WorkflowReset{
			BaseEvent: events.NewBaseEvent(events.WorkflowResetEvent, state.UserID, state.CurrentStep),
			StateID:   state.StateID,
		}
	default:
		return nil
	}
}

func countJSONItems(encoded string) int {
	if encoded == "" {
		return 0
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return 0
	}

	return len(items)
}

func selectedOrderIDs(encoded string) []int {
	if encoded == "" {
		return nil
	}

	var selected []models.SelectedSupplier
	if err := json.Unmarshal([]byte(encoded), &selected); err != nil {
		return nil
	}

	orderIDs := make([]int, 0, len(selected))
	for _, supplier := range selected {
		orderIDs = append(orderIDs, supplier.OrderID)
	}

	return orderIDs
}
