package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/persistence"
)

const statesDir = "states"

// StateRepository handles workflow-state file operations.
type StateRepository struct {
	root string
}

// NewStateRepository creates a new state repository.
func NewStateRepository(root string) *StateRepository {
	return &StateRepository{root: root}
}

// GetByUser retrieves a user's workflow state from the file system.
// Returns (nil, nil) when no record exists.
func (sr *StateRepository) GetByUser(_ context.Context, userID string) (*models.UserWorkflowState, error) {
	if userID == "" {
		return nil, persistence.NewStateError("GetByUser", userID, persistence.ErrMissingUserID)
	}

	filePath := filepath.Clean(path.Join(sr.root, statesDir, userID+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
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

// Save writes a user's workflow state to the file system.
func (sr *StateRepository) Save(_ context.Context, state *models.UserWorkflowState) error {
	if state.UserID == "" {
		return persistence.NewStateError("Save", "", persistence.ErrMissingUserID)
	}

	err := os.MkdirAll(path.Join(sr.root, statesDir), 0750)
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	filePath := path.Join(sr.root, statesDir, state.UserID+".json")

	err = os.WriteFile(filePath, data, 0600)
	if err != nil {
		return persistence.NewStateError("Save", state.UserID, err)
	}

	return nil
}

// Delete removes a user's workflow state. Deleting a missing state is not
// an error.
func (sr *StateRepository) Delete(_ context.Context, userID string) error {
	filePath := path.Join(sr.root, statesDir, userID+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return persistence.NewStateError("Delete", userID, err)
	}

	return nil
}

// ListUserIDs returns every user with a persisted state.
func (sr *StateRepository) ListUserIDs(_ context.Context) ([]string, error) {
	root := os.DirFS(path.Join(sr.root, statesDir))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list state files: %w", err)
	}

	userIDs := make([]string, 0, len(jsonFiles))
	for _, file := range jsonFiles {
		userIDs = append(userIDs, strings.TrimSuffix(file, ".json"))
	}

	return userIDs, nil
}
