// Package persistence provides the storage abstraction for per-user
// workflow state records.
package persistence

import (
	"context"

	"github.com/procura-ai/procura/pkg/models"
)

// StateRepository stores one UserWorkflowState per user. GetByUser returns
// (nil, nil) when no record exists; callers create the default state for a
// first interaction themselves.
type StateRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.UserWorkflowState, error)
	Save(ctx context.Context, state *models.UserWorkflowState) error
	Delete(ctx context.Context, userID string) error

	// ListUserIDs returns the IDs of every user with a persisted state.
	// Used by the reminder sweep; not a hot path.
	ListUserIDs(ctx context.Context) ([]string, error)
}

type Persistence interface {
	StateRepository() StateRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
