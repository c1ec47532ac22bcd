package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/persistence"
)

// StateRepository handles workflow-state operations on PostgreSQL. The
// record is stored as one JSONB document per user; the schema carries no
// knowledge of individual fields beyond the key.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new state repository.
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// GetByUser retrieves a user's workflow state. Returns (nil, nil) when no
// record exists.
func (sr *StateRepository) GetByUser(ctx context.Context, userID string) (*models.UserWorkflowState, error) {
	if userID == "" {
		return nil, persistence.NewStateError("GetByUser", userID, persistence.ErrMissingUserID)
	}

	var body []byte

	err := sr.db.QueryRowContext(ctx,
		"SELECT state FROM user_workflow_states WHERE user_id = $1", userID,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, persistence.NewStateError("GetByUser", userID, err)
	}

	var state models.UserWorkflowState

	err = json.Unmarshal(body, &state)
	if err != nil {
		return nil, persistence.NewStateError("GetByUser", userID,
			fmt.Errorf("%w: %w", persistence.ErrInvalidState, err))
	}

	return &state, nil
}

// Save upserts a user's workflow state.
func (sr *StateRepository) Save(ctx context.Context, state *models.UserWorkflowState) error {
	if state.UserID == "" {
		return persistence.NewStateError("Save", "", persistence.ErrMissingUserID)
	}

	body, err := json.Marshal(state)
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	_, err = sr.db.ExecContext(ctx, `
		INSERT INTO user_workflow_states (user_id, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET state = $2, updated_at = $3
	`, state.UserID, body, time.Now().UTC())
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	return nil
}

// Delete removes a user's workflow state. Deleting a missing state is not
// an error.
func (sr *StateRepository) Delete(ctx context.Context, userID string) error {
	_, err := sr.db.ExecContext(ctx,
		"DELETE FROM user_workflow_states WHERE user_id = $1", userID)
	if err != nil {
		return persistence.NewStateError("Delete", userID, err)
	}

	return nil
}

// ListUserIDs returns every user with a persisted state.
func (sr *StateRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := sr.db.QueryContext(ctx, "SELECT user_id FROM user_workflow_states")
	if err != nil {
		return nil, fmt.Errorf("failed to list state users: %w", err)
	}
	defer rows.Close()

	userIDs := make([]string, 0)

	for rows.Next() {
		var userID string

		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user ID: %w", err)
		}

		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate state users: %w", err)
	}

	return userIDs, nil
}
