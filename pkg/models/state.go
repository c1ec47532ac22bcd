package models

import (
	"strconv"
	"time"
)

// UserWorkflowState is the long-lived per-user record tracking sourcing
// workflow progress. It is loaded at the start of a chat turn, mutated in
// memory by exactly one action, and saved at the end of the turn. The
// persistence layer is the source of truth; nothing in this process caches
// it across turns.
type UserWorkflowState struct {
	UserID             string       `json:"user_id"             validate:"required"`
	CurrentStep        WorkflowStep `json:"current_step"`
	EmailID            string       `json:"email_id"`
	ProjectID          string       `json:"project_id"`
	EngagementID       string       `json:"engagement_id"`
	ProjectTitle       string       `json:"project_title"`
	ProjectDescription string       `json:"project_description"`

	// Opaque serialized blobs owned by the upstream sourcing backend.
	MilestonesJSON  string `json:"milestones_json"`
	SuppliersJSON   string `json:"suppliers_json"`
	LastAPIResponse string `json:"last_api_response"`

	LastError        string    `json:"last_error"`
	LastActivityTime time.Time `json:"last_activity_time"`
	StateID          string    `json:"state_id"`
}

// NewUserWorkflowState creates the default state for a user's first interaction.
func NewUserWorkflowState(userID string) *UserWorkflowState {
	return &UserWorkflowState{
		UserID:           userID,
		CurrentStep:      StepProjectToBeCreated,
		LastActivityTime: time.Now().UTC(),
	}
}

// EnsureStateID generates the timestamp-derived session identifier if the
// state does not carry one yet, and returns it.
func (s *UserWorkflowState) EnsureStateID() string {
	if s.StateID == "" {
		s.StateID = NewStateID()
	}

	return s.StateID
}

// Touch updates the last-activity timestamp.
func (s *UserWorkflowState) Touch() {
	s.LastActivityTime = time.Now().UTC()
}

// NewStateID builds a session identifier from the current time.
func NewStateID() string {
	return strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
}

// NewEngagementID builds a client-side engagement correlation identifier.
// The sourcing backend echoes it back on project creation.
func NewEngagementID() string {
	return strconv.FormatInt(time.Now().UTC().UnixMilli(), 10)
}
