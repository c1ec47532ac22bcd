// Package events defines event types for sourcing workflow lifecycle
// notifications consumed by downstream systems (bot transport, analytics).
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/procura-ai/procura/pkg/models"
)

type EventType string

// Topic is the event bus topic for workflow lifecycle events.
const Topic = "procura.workflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ProjectCreatedEvent     EventType = "project.created"
	MilestonesUpsertedEvent EventType = "milestones.upserted"
	SuppliersFoundEvent     EventType = "suppliers.found"
	SuppliersSelectedEvent  EventType = "suppliers.selected"
	ProjectPublishedEvent   EventType = "project.published"
	WorkflowResetEvent      EventType = "workflow.reset"
	SessionStaleEvent       EventType = "session.stale"
)

type BaseEvent struct {
	ID        string              `json:"id"`
	Type      EventType           `json:"type"`
	Timestamp time.Time           `json:"timestamp"`
	UserID    string              `json:"user_id"`
	Step      models.WorkflowStep `json:"step"`
	Metadata  map[string]any      `json:"metadata,omitempty"`
}

// NewBaseEvent fills the shared envelope for a workflow event.
func NewBaseEvent(eventType EventType, userID string, step models.WorkflowStep) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Step:      step,
	}
}

type ProjectCreated struct {
	BaseEvent

	ProjectID    string `json:"project_id"`
	EngagementID string `json:"engagement_id"`
	ProjectTitle string `json:"project_title"`
}

func (e ProjectCreated) GetType() EventType {
	return ProjectCreatedEvent
}

type MilestonesUpserted struct {
	BaseEvent

	ProjectID      string `json:"project_id"`
	MilestoneCount int    `json:"milestone_count"`
}

func (e MilestonesUpserted) GetType() EventType {
	return MilestonesUpsertedEvent
}

type SuppliersFound struct {
	BaseEvent

	ProjectID     string `json:"project_id"`
	SupplierCount int    `json:"supplier_count"`
}

func (e SuppliersFound) GetType() EventType {
	return SuppliersFoundEvent
}

type SuppliersSelected struct {
	BaseEvent

	ProjectID string `json:"project_id"`
	OrderIDs  []int  `json:"order_ids"`
}

func (e SuppliersSelected) GetType() EventType {
	return SuppliersSelectedEvent
}

type ProjectPublished struct {
	BaseEvent

	ProjectID string `json:"project_id"`
}

func (e ProjectPublished) GetType() EventType {
	return ProjectPublishedEvent
}

type WorkflowReset struct {
	BaseEvent

	StateID string `json:"state_id"`
}

func (e WorkflowReset) GetType() EventType {
	return WorkflowResetEvent
}

// SessionStale is published by the reminder sweep for users idle beyond the
// configured threshold at a non-terminal step.
type SessionStale struct {
	BaseEvent

	IdleSince time.Time `json:"idle_since"`
}

func (e SessionStale) GetType() EventType {
	return SessionStaleEvent
}
